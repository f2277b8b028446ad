// Package encoding lays out the columns of a snapshot archive.
//
// Every column type implements the generic ColumnarEncoder and ColumnarDecoder
// interfaces:
//
// Timestamps (int64 simulation time):
//   - TimestampRawEncoder/Decoder: fixed 8 bytes per timestamp, random access
//   - TimestampDeltaEncoder/Decoder: delta-of-delta zigzag varints, about one
//     byte per sample on a regular clock
//
// Values (trace.Value):
//   - ValueEncoder/Decoder: kind tag plus varint, float bits or length-prefixed
//     string
//
// Names (string):
//   - VarStringEncoder/Decoder: uvarint length plus bytes
//
// Encoders borrow their buffer from the internal payload pool; call Finish once
// the bytes have been copied out:
//
//	enc := encoding.NewTimestampDeltaEncoder()
//	defer enc.Finish()
//	enc.WriteSlice(times)
//	payload = append(payload, enc.Bytes()...)
//
// Decoders are stateless values. All yields lazily; Collect checks that a
// column holds exactly the expected number of values.
package encoding
