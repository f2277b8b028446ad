package encoding

import (
	"encoding/binary"
	"iter"

	"github.com/arloliu/wavepeek/internal/pool"
)

// VarStringEncoder writes strings as a uvarint byte length followed by the bytes.
// It holds the trace-name payload of a snapshot.
type VarStringEncoder struct {
	temp  [binary.MaxVarintLen64]byte
	buf   *pool.ByteBuffer
	count int
}

var _ ColumnarEncoder[string] = (*VarStringEncoder)(nil)

// NewVarStringEncoder creates a length-prefixed string encoder.
func NewVarStringEncoder() *VarStringEncoder {
	return &VarStringEncoder{buf: pool.GetPayloadBuffer()}
}

// Write appends one string.
func (e *VarStringEncoder) Write(s string) {
	n := binary.PutUvarint(e.temp[:], uint64(len(s)))
	e.buf.Grow(n + len(s))
	e.buf.MustWrite(e.temp[:n])
	e.buf.B = append(e.buf.B, s...)
	e.count++
}

// WriteSlice appends every string of ss.
func (e *VarStringEncoder) WriteSlice(ss []string) {
	for _, s := range ss {
		e.Write(s)
	}
}

// Bytes returns the encoded payload. The slice is owned by the encoder and is
// invalid after Finish.
func (e *VarStringEncoder) Bytes() []byte { return e.buf.Bytes() }

// Len returns the number of values written.
func (e *VarStringEncoder) Len() int { return e.count }

// Size returns the payload size in bytes.
func (e *VarStringEncoder) Size() int { return e.buf.Len() }

// Reset is a no-op: every value is encoded independently.
func (e *VarStringEncoder) Reset() {}

// Finish returns the buffer to the pool. The encoder must not be used afterwards.
func (e *VarStringEncoder) Finish() {
	pool.PutPayloadBuffer(e.buf)
	e.buf = nil
	e.count = 0
}

// VarStringDecoder reads columns written by VarStringEncoder.
type VarStringDecoder struct{}

var _ ColumnarDecoder[string] = VarStringDecoder{}

// NewVarStringDecoder creates a length-prefixed string decoder.
func NewVarStringDecoder() VarStringDecoder {
	return VarStringDecoder{}
}

// All iterates over the first count strings in data. It stops early when a
// length runs past the end of data.
func (d VarStringDecoder) All(data []byte, count int) iter.Seq[string] {
	return func(yield func(string) bool) {
		offset := 0
		for range count {
			s, n, ok := readVarString(data[offset:])
			if !ok {
				return
			}
			offset += n
			if !yield(s) {
				return
			}
		}
	}
}

// At returns the string at index, scanning the payload from the start.
func (d VarStringDecoder) At(data []byte, index int, count int) (string, bool) {
	if index < 0 || index >= count {
		return "", false
	}

	offset := 0
	for i := 0; ; i++ {
		s, n, ok := readVarString(data[offset:])
		if !ok {
			return "", false
		}
		if i == index {
			return s, true
		}
		offset += n
	}
}

// readVarString returns the string at the start of data and the bytes consumed.
func readVarString(data []byte) (string, int, bool) {
	length, n := binary.Uvarint(data)
	if n <= 0 || length > uint64(len(data)-n) {
		return "", 0, false
	}
	end := n + int(length) //nolint:gosec

	return string(data[n:end]), end, true
}
