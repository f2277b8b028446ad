package encoding

import (
	"encoding/binary"
	"iter"
	"math"

	"github.com/arloliu/wavepeek/endian"
	"github.com/arloliu/wavepeek/internal/pool"
	"github.com/arloliu/wavepeek/trace"
)

// Value tags written before each encoded value.
const (
	valueTagInt    byte = 0x1
	valueTagFloat  byte = 0x2
	valueTagString byte = 0x3
)

// ValueEncoder writes trace values as a kind tag followed by the payload:
// zigzag varint for integers, 8 bytes in engine order for floats, and a uvarint
// length plus bytes for strings. Invalid values are skipped; callers only hold
// valid samples.
type ValueEncoder struct {
	engine endian.EndianEngine
	temp   [binary.MaxVarintLen64]byte
	buf    *pool.ByteBuffer
	count  int
}

var _ ColumnarEncoder[trace.Value] = (*ValueEncoder)(nil)

// NewValueEncoder creates a value encoder writing floats in engine byte order.
func NewValueEncoder(engine endian.EndianEngine) *ValueEncoder {
	return &ValueEncoder{engine: engine, buf: pool.GetPayloadBuffer()}
}

// Write appends one value. Invalid values are dropped and not counted.
func (e *ValueEncoder) Write(v trace.Value) {
	switch v.Kind() {
	case trace.KindInt:
		i, _ := v.AsInt()
		n := binary.PutUvarint(e.temp[:], zigzag(i))
		e.buf.Grow(1 + n)
		_ = e.buf.WriteByte(valueTagInt)
		e.buf.MustWrite(e.temp[:n])
	case trace.KindFloat:
		f, _ := v.AsFloat()
		e.buf.Grow(9)
		_ = e.buf.WriteByte(valueTagFloat)
		e.buf.B = e.engine.AppendUint64(e.buf.B, math.Float64bits(f))
	case trace.KindString:
		s := v.String()
		n := binary.PutUvarint(e.temp[:], uint64(len(s)))
		e.buf.Grow(1 + n + len(s))
		_ = e.buf.WriteByte(valueTagString)
		e.buf.MustWrite(e.temp[:n])
		e.buf.B = append(e.buf.B, s...)
	default:
		return
	}
	e.count++
}

// WriteSlice appends every value of vs.
func (e *ValueEncoder) WriteSlice(vs []trace.Value) {
	for _, v := range vs {
		e.Write(v)
	}
}

// Bytes returns the encoded payload. The slice is owned by the encoder and is
// invalid after Finish.
func (e *ValueEncoder) Bytes() []byte { return e.buf.Bytes() }

// Len returns the number of values written.
func (e *ValueEncoder) Len() int { return e.count }

// Size returns the payload size in bytes.
func (e *ValueEncoder) Size() int { return e.buf.Len() }

// Reset is a no-op: every value is encoded independently.
func (e *ValueEncoder) Reset() {}

// Finish returns the buffer to the pool. The encoder must not be used afterwards.
func (e *ValueEncoder) Finish() {
	pool.PutPayloadBuffer(e.buf)
	e.buf = nil
	e.count = 0
}

// ValueDecoder reads columns written by ValueEncoder.
type ValueDecoder struct {
	engine endian.EndianEngine
}

var _ ColumnarDecoder[trace.Value] = ValueDecoder{}

// NewValueDecoder creates a decoder for payloads written with the same engine.
func NewValueDecoder(engine endian.EndianEngine) ValueDecoder {
	return ValueDecoder{engine: engine}
}

// All iterates over the first count values in data. It stops early at an unknown
// tag or a truncated value.
func (d ValueDecoder) All(data []byte, count int) iter.Seq[trace.Value] {
	return func(yield func(trace.Value) bool) {
		offset := 0
		for range count {
			v, n, ok := d.read(data[offset:])
			if !ok {
				return
			}
			offset += n
			if !yield(v) {
				return
			}
		}
	}
}

// At returns the value at index. Values have variable length, so the payload is
// scanned from the start.
func (d ValueDecoder) At(data []byte, index int, count int) (trace.Value, bool) {
	if index < 0 || index >= count {
		return trace.Value{}, false
	}

	offset := 0
	for i := 0; ; i++ {
		v, n, ok := d.read(data[offset:])
		if !ok {
			return trace.Value{}, false
		}
		if i == index {
			return v, true
		}
		offset += n
	}
}

func (d ValueDecoder) read(data []byte) (trace.Value, int, bool) {
	if len(data) == 0 {
		return trace.Value{}, 0, false
	}

	switch data[0] {
	case valueTagInt:
		raw, n := binary.Uvarint(data[1:])
		if n <= 0 {
			return trace.Value{}, 0, false
		}

		return trace.Int(unzigzag(raw)), 1 + n, true
	case valueTagFloat:
		if len(data) < 9 {
			return trace.Value{}, 0, false
		}

		return trace.Float(math.Float64frombits(d.engine.Uint64(data[1:9]))), 9, true
	case valueTagString:
		s, n, ok := readVarString(data[1:])
		if !ok {
			return trace.Value{}, 0, false
		}

		return trace.Str(s), 1 + n, true
	default:
		return trace.Value{}, 0, false
	}
}
