package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// Largest decoded size accepted from an LZ4 frame header.
const lz4MaxDecodedSize = 256 * 1024 * 1024

var errLZ4Frame = errors.New("lz4: malformed payload header")

var lz4CompressorPool = sync.Pool{
	New: func() any { return &lz4.Compressor{} },
}

// LZ4Compressor applies LZ4 block compression.
//
// Raw LZ4 blocks do not carry their decoded size, so each payload starts with a
// uvarint holding (decodedSize << 1 | compressed). Incompressible payloads are
// stored as-is with the low bit cleared.
type LZ4Compressor struct{}

var _ Codec = LZ4Compressor{}

// NewLZ4Compressor creates an LZ4 block codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses data into a size-prefixed LZ4 block. An empty input
// yields an empty payload.
func (LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var head [binary.MaxVarintLen64]byte
	dst := make([]byte, binary.MaxVarintLen64+lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	n, err := lc.CompressBlock(data, dst[binary.MaxVarintLen64:])
	lz4CompressorPool.Put(lc)
	if err != nil {
		return nil, err
	}

	if n == 0 || n >= len(data) {
		hn := binary.PutUvarint(head[:], uint64(len(data))<<1)
		out := make([]byte, 0, hn+len(data))
		out = append(out, head[:hn]...)

		return append(out, data...), nil
	}

	hn := binary.PutUvarint(head[:], uint64(len(data))<<1|1)
	out := make([]byte, 0, hn+n)
	out = append(out, head[:hn]...)

	return append(out, dst[binary.MaxVarintLen64:binary.MaxVarintLen64+n]...), nil
}

// Decompress restores a payload written by Compress. It rejects headers whose
// decoded size exceeds 256 MiB or does not match the block.
func (LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	header, hn := binary.Uvarint(data)
	if hn <= 0 {
		return nil, errLZ4Frame
	}
	size := header >> 1
	if size > lz4MaxDecodedSize {
		return nil, fmt.Errorf("%w: decoded size %d", errLZ4Frame, size)
	}
	body := data[hn:]

	if header&1 == 0 {
		if uint64(len(body)) != size {
			return nil, fmt.Errorf("%w: stored size %d, have %d", errLZ4Frame, size, len(body))
		}

		return append([]byte(nil), body...), nil
	}

	out := make([]byte, size)
	n, err := lz4.UncompressBlock(body, out)
	if err != nil {
		return nil, err
	}
	if uint64(n) != size {
		return nil, fmt.Errorf("%w: decoded %d of %d bytes", errLZ4Frame, n, size)
	}

	return out, nil
}
