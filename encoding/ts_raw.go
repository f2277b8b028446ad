package encoding

import (
	"iter"

	"github.com/arloliu/wavepeek/endian"
	"github.com/arloliu/wavepeek/internal/pool"
)

const rawTimestampSize = 8

// TimestampRawEncoder writes every timestamp as a fixed 8-byte integer. It costs
// more space than TimestampDeltaEncoder but supports O(1) random access.
type TimestampRawEncoder struct {
	engine endian.EndianEngine
	buf    *pool.ByteBuffer
	count  int
}

var _ ColumnarEncoder[int64] = (*TimestampRawEncoder)(nil)

// NewTimestampRawEncoder creates a raw timestamp encoder using engine's byte order.
func NewTimestampRawEncoder(engine endian.EndianEngine) *TimestampRawEncoder {
	return &TimestampRawEncoder{engine: engine, buf: pool.GetPayloadBuffer()}
}

// Write appends one timestamp.
func (e *TimestampRawEncoder) Write(ts int64) {
	e.count++
	e.buf.B = e.engine.AppendUint64(e.buf.B, uint64(ts)) //nolint:gosec
}

// WriteSlice appends every timestamp of tss with a single buffer grow.
func (e *TimestampRawEncoder) WriteSlice(tss []int64) {
	e.buf.Grow(len(tss) * rawTimestampSize)
	for _, ts := range tss {
		e.buf.B = e.engine.AppendUint64(e.buf.B, uint64(ts)) //nolint:gosec
	}
	e.count += len(tss)
}

// Bytes returns the encoded payload. The slice is owned by the encoder and is
// invalid after Finish.
func (e *TimestampRawEncoder) Bytes() []byte { return e.buf.Bytes() }

// Len returns the number of values written.
func (e *TimestampRawEncoder) Len() int { return e.count }

// Size returns the payload size in bytes.
func (e *TimestampRawEncoder) Size() int { return e.buf.Len() }

// Reset is a no-op: raw timestamps carry no running state.
func (e *TimestampRawEncoder) Reset() {}

// Finish returns the buffer to the pool. The encoder must not be used afterwards.
func (e *TimestampRawEncoder) Finish() {
	pool.PutPayloadBuffer(e.buf)
	e.buf = nil
	e.count = 0
}

// TimestampRawDecoder reads columns written by TimestampRawEncoder.
type TimestampRawDecoder struct {
	engine endian.EndianEngine
}

var _ ColumnarDecoder[int64] = TimestampRawDecoder{}

// NewTimestampRawDecoder creates a decoder for payloads written with the same engine.
func NewTimestampRawDecoder(engine endian.EndianEngine) TimestampRawDecoder {
	return TimestampRawDecoder{engine: engine}
}

// All iterates over the first count timestamps in data, or fewer when data is short.
func (d TimestampRawDecoder) All(data []byte, count int) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		n := min(count, len(data)/rawTimestampSize)
		for i := range n {
			off := i * rawTimestampSize
			if !yield(int64(d.engine.Uint64(data[off : off+rawTimestampSize]))) { //nolint:gosec
				return
			}
		}
	}
}

// At returns the timestamp at index by direct offset.
func (d TimestampRawDecoder) At(data []byte, index int, count int) (int64, bool) {
	off := index * rawTimestampSize
	if index < 0 || index >= count || off+rawTimestampSize > len(data) {
		return 0, false
	}

	return int64(d.engine.Uint64(data[off : off+rawTimestampSize])), true //nolint:gosec
}
