package compress

// ZstdCompressor applies Zstandard, the best ratio of the built-in codecs. The
// default build uses the pure-Go klauspost/compress implementation; building with
// cgo and the gozstd tag switches to the libzstd bindings.
type ZstdCompressor struct{}

var _ Codec = ZstdCompressor{}

// NewZstdCompressor creates a Zstandard codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
