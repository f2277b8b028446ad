//go:build cgo && gozstd

package compress

import "github.com/valyala/gozstd"

const gozstdLevel = 3

// Compress encodes data as one Zstandard frame with libzstd.
func (ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, gozstdLevel), nil
}

// Decompress decodes one Zstandard frame with libzstd.
func (ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
