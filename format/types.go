// Package format defines the payload layouts that can be selected for a
// snapshot archive.
package format

type (
	// EncodingType selects how the timestamp column of a trace is laid out.
	EncodingType uint8
	// CompressionType selects the codec applied to a whole payload.
	CompressionType uint8
)

const (
	TypeRaw   EncodingType = 0x1 // TypeRaw stores every timestamp as a fixed 8-byte integer.
	TypeDelta EncodingType = 0x2 // TypeDelta stores delta-of-delta zigzag varints.

	CompressionNone CompressionType = 0x1 // CompressionNone leaves payloads as encoded.
	CompressionZstd CompressionType = 0x2 // CompressionZstd applies Zstandard.
	CompressionS2   CompressionType = 0x3 // CompressionS2 applies S2 (Snappy-compatible).
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 applies LZ4 block compression.
)

// Valid reports whether e is a known timestamp layout.
func (e EncodingType) Valid() bool {
	return e == TypeRaw || e == TypeDelta
}

func (e EncodingType) String() string {
	switch e {
	case TypeRaw:
		return "Raw"
	case TypeDelta:
		return "Delta"
	default:
		return "Unknown"
	}
}

// Valid reports whether c is a known codec.
func (c CompressionType) Valid() bool {
	return c >= CompressionNone && c <= CompressionLZ4
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
