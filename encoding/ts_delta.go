package encoding

import (
	"encoding/binary"
	"iter"

	"github.com/arloliu/wavepeek/internal/pool"
)

// TimestampDeltaEncoder writes timestamps as delta-of-delta zigzag varints.
//
// Layout of one sequence:
//   - first timestamp: zigzag varint of the value
//   - second timestamp: zigzag varint of the delta from the first
//   - the rest: zigzag varint of (delta - previous delta)
//
// Simulation traces sampled on a regular clock compress to about one byte per
// sample. Decoding is sequential.
type TimestampDeltaEncoder struct {
	prevTS    int64
	prevDelta int64
	seqLen    int // samples written since the last Reset
	temp      [binary.MaxVarintLen64]byte
	buf       *pool.ByteBuffer
	count     int
}

var _ ColumnarEncoder[int64] = (*TimestampDeltaEncoder)(nil)

// NewTimestampDeltaEncoder creates a delta-of-delta timestamp encoder.
func NewTimestampDeltaEncoder() *TimestampDeltaEncoder {
	return &TimestampDeltaEncoder{buf: pool.GetPayloadBuffer()}
}

// Write appends one timestamp to the current sequence.
//
// The first timestamp after NewTimestampDeltaEncoder or Reset is written in full,
// the second as a delta and every later one as the change of delta. Each value is
// zigzag encoded so small negative numbers stay short, then written as a uvarint.
func (e *TimestampDeltaEncoder) Write(ts int64) {
	var v int64
	switch e.seqLen {
	case 0:
		v = ts
	case 1:
		e.prevDelta = ts - e.prevTS
		v = e.prevDelta
	default:
		delta := ts - e.prevTS
		v = delta - e.prevDelta
		e.prevDelta = delta
	}

	n := binary.PutUvarint(e.temp[:], zigzag(v))
	e.buf.MustWrite(e.temp[:n])

	e.prevTS = ts
	e.seqLen++
	e.count++
}

// WriteSlice appends every timestamp of tss to the current sequence.
//
// Regular intervals encode to one byte per timestamp, so the buffer is grown by
// two bytes per element up front.
func (e *TimestampDeltaEncoder) WriteSlice(tss []int64) {
	e.buf.Grow(len(tss) * 2)
	for _, ts := range tss {
		e.Write(ts)
	}
}

// Bytes returns the encoded payload. The slice is owned by the encoder and is
// invalid after Finish.
func (e *TimestampDeltaEncoder) Bytes() []byte { return e.buf.Bytes() }

// Len returns the number of timestamps written since the encoder was created.
func (e *TimestampDeltaEncoder) Len() int { return e.count }

// Size returns the payload size in bytes.
func (e *TimestampDeltaEncoder) Size() int { return e.buf.Len() }

// Reset starts a new sequence; the next timestamp is written in full.
func (e *TimestampDeltaEncoder) Reset() {
	e.prevTS = 0
	e.prevDelta = 0
	e.seqLen = 0
}

// Finish returns the buffer to the pool. The encoder must not be used afterwards.
func (e *TimestampDeltaEncoder) Finish() {
	pool.PutPayloadBuffer(e.buf)
	e.buf = nil
	e.Reset()
	e.count = 0
}

// TimestampDeltaDecoder reads one sequence written by TimestampDeltaEncoder.
type TimestampDeltaDecoder struct{}

var _ ColumnarDecoder[int64] = TimestampDeltaDecoder{}

// NewTimestampDeltaDecoder creates a delta-of-delta timestamp decoder.
func NewTimestampDeltaDecoder() TimestampDeltaDecoder {
	return TimestampDeltaDecoder{}
}

// All iterates over the first count timestamps of one sequence in data.
//
// Iteration stops early when data ends before count values were read; callers
// compare the number of yielded values with count to detect truncation.
func (d TimestampDeltaDecoder) All(data []byte, count int) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		var cur, delta int64
		offset := 0
		for i := range count {
			raw, n := binary.Uvarint(data[offset:])
			if n <= 0 {
				return
			}
			offset += n

			v := unzigzag(raw)
			switch i {
			case 0:
				cur = v
			case 1:
				delta = v
				cur += delta
			default:
				delta += v
				cur += delta
			}

			if !yield(cur) {
				return
			}
		}
	}
}

// At returns the timestamp at index within a sequence of count values.
//
// Delta-of-delta values depend on every value before them, so At decodes the
// sequence from the start. It returns false for an out-of-range index or a
// truncated payload.
func (d TimestampDeltaDecoder) At(data []byte, index int, count int) (int64, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	i := 0
	for ts := range d.All(data, index+1) {
		if i == index {
			return ts, true
		}
		i++
	}

	return 0, false
}

// zigzag maps signed values onto unsigned ones: 0, -1, 1, -2 become 0, 1, 2, 3.
func zigzag(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63)) //nolint:gosec
}

func unzigzag(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1) //nolint:gosec
}
