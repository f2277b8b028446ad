// Package compress provides the payload codecs of a snapshot archive.
//
// A snapshot holds three payloads (trace names, timestamps and values). Each is
// first laid out by the encoding package and then passed through one of these
// codecs, selected per payload:
//
//   - format.CompressionNone: NoOpCompressor, payload stored as encoded
//   - format.CompressionZstd: ZstdCompressor, best ratio
//   - format.CompressionS2: S2Compressor, fast with a fair ratio
//   - format.CompressionLZ4: LZ4Compressor, fastest decompression
//
// Typical use goes through GetCodec:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//		return err
//	}
//	packed, err := codec.Compress(payload)
//
// # Zstd backends
//
// The default Zstd backend is the pure-Go github.com/klauspost/compress/zstd.
// Building with cgo enabled and the gozstd tag uses github.com/valyala/gozstd
// instead:
//
//	go build -tags gozstd ./...
//
// Both produce standard Zstandard frames, so snapshots written by one backend
// are readable by the other.
package compress
