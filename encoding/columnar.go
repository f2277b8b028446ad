package encoding

import "iter"

// ColumnarEncoder appends values of one column to an internal buffer.
type ColumnarEncoder[T comparable] interface {
	// Bytes returns the encoded column. The slice is valid until the next write
	// or Finish and must not be modified.
	Bytes() []byte

	// Len returns the number of values written.
	Len() int

	// Size returns the encoded size in bytes.
	Size() int

	// Reset clears the running state (previous timestamp, previous delta) but keeps
	// the written bytes, so several sequences can share one payload.
	Reset()

	// Finish returns the buffer to the pool. The encoder must not be used
	// afterwards; copy Bytes first.
	Finish()

	Write(v T)
	WriteSlice(vs []T)
}

// ColumnarDecoder reads a column written by the matching ColumnarEncoder.
type ColumnarDecoder[T comparable] interface {
	// All yields up to count decoded values. Malformed data ends the sequence
	// early, so callers that need exactly count values must check.
	All(data []byte, count int) iter.Seq[T]

	// At decodes the value at index. It reports false when index is outside
	// [0, count) or the data is malformed.
	At(data []byte, index int, count int) (T, bool)
}

// Collect drains a decoder into a slice and fails with errInvalid when the data
// holds fewer than count values.
func Collect[T comparable](dec ColumnarDecoder[T], data []byte, count int, errInvalid error) ([]T, error) {
	out := make([]T, 0, count)
	for v := range dec.All(data, count) {
		out = append(out, v)
	}
	if len(out) != count {
		return nil, errInvalid
	}

	return out, nil
}
