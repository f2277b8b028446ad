package compress

import (
	"fmt"

	"github.com/arloliu/wavepeek/format"
)

// Compressor compresses one encoded snapshot payload (names, timestamps or
// values). The returned slice is owned by the caller; the input is not modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor. Corrupt
// input or input from another algorithm returns an error.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec compresses and decompresses with one algorithm. Built-in codecs are
// stateless values and safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

// Stats describes the effect of compressing one payload.
type Stats struct {
	Payload        string
	Algorithm      format.CompressionType
	OriginalSize   int
	CompressedSize int
}

// Ratio returns compressed size / original size, 0 for an empty payload.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the saved share of the original size in percent.
func (s Stats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0
	}

	return (1 - s.Ratio()) * 100
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the built-in codec for a compression type.
func GetCodec(ct format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[ct]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", ct)
}

// CompressWithStats compresses data with the codec for ct and reports the sizes
// under the given payload label.
func CompressWithStats(ct format.CompressionType, payload string, data []byte) ([]byte, Stats, error) {
	codec, err := GetCodec(ct)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%s payload: %w", payload, err)
	}

	out, err := codec.Compress(data)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("compress %s payload: %w", payload, err)
	}

	return out, Stats{Payload: payload, Algorithm: ct, OriginalSize: len(data), CompressedSize: len(out)}, nil
}
