package archive

import (
	"bytes"
	"fmt"

	"github.com/arloliu/wavepeek/compress"
	"github.com/arloliu/wavepeek/encoding"
	"github.com/arloliu/wavepeek/endian"
	"github.com/arloliu/wavepeek/errs"
	"github.com/arloliu/wavepeek/format"
	"github.com/arloliu/wavepeek/internal/hash"
	"github.com/arloliu/wavepeek/section"
	"github.com/arloliu/wavepeek/trace"
)

// Decoder reads traces back from a snapshot.
//
// NewDecoder validates the layout and decompresses the payloads once; traces
// are decoded on demand. A Decoder is safe for concurrent reads.
type Decoder struct {
	header     section.Header
	engine     endian.EndianEngine
	entries    []section.IndexEntry
	names      []string
	byID       map[uint64]int
	byName     map[string]int
	timestamps []byte
	values     []byte
	tsDec      encoding.ColumnarDecoder[int64]
	valDec     encoding.ValueDecoder
}

// NewDecoder parses a snapshot produced by Encoder.Finish.
//
// The decoder keeps its own copy of every payload, so data may be reused or
// modified once NewDecoder returns.
//
// Returns header errors (ErrInvalidHeaderSize, ErrInvalidMagicNumber,
// ErrInvalidHeaderFlags), ErrInvalidIndexOffset for inconsistent offsets and
// ErrInvalid*Payload when a payload cannot be decompressed or decoded.
func NewDecoder(data []byte) (*Decoder, error) {
	h, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}
	if err := h.ValidateOffsets(len(data)); err != nil {
		return nil, err
	}

	d := &Decoder{
		header: h,
		engine: h.Flag.EndianEngine(),
		byID:   make(map[uint64]int, h.TraceCount),
		byName: make(map[string]int, h.TraceCount),
	}
	d.valDec = encoding.NewValueDecoder(d.engine)
	if h.Flag.TimestampEncoding() == format.TypeRaw {
		d.tsDec = encoding.NewTimestampRawDecoder(d.engine)
	} else {
		d.tsDec = encoding.NewTimestampDeltaDecoder()
	}

	d.entries = make([]section.IndexEntry, h.TraceCount)
	for i := range d.entries {
		off := section.IndexOffset + i*section.IndexEntrySize
		if d.entries[i], err = section.ParseIndexEntry(data[off:], d.engine); err != nil {
			return nil, err
		}
	}

	namesRaw, err := decompress(h.Flag.NamesCompression(), data[h.NamesPayloadOffset:h.TimestampPayloadOffset], errs.ErrInvalidNamesPayload)
	if err != nil {
		return nil, err
	}
	if d.names, err = encoding.Collect(encoding.NewVarStringDecoder(), namesRaw, len(d.entries), errs.ErrInvalidNamesPayload); err != nil {
		return nil, err
	}

	if d.timestamps, err = decompress(h.Flag.TimestampCompression(), data[h.TimestampPayloadOffset:h.ValuePayloadOffset], errs.ErrInvalidTimestampPayload); err != nil {
		return nil, err
	}
	if d.values, err = decompress(h.Flag.ValueCompression(), data[h.ValuePayloadOffset:], errs.ErrInvalidValuePayload); err != nil {
		return nil, err
	}

	for i, entry := range d.entries {
		if _, end := entry.TimestampRange(); end > len(d.timestamps) {
			return nil, fmt.Errorf("%w: trace %d out of range", errs.ErrInvalidTimestampPayload, i)
		}
		if _, end := entry.ValueRange(); end > len(d.values) {
			return nil, fmt.Errorf("%w: trace %d out of range", errs.ErrInvalidValuePayload, i)
		}
		// Every timestamp takes at least one byte and every value at least two.
		if entry.Count > entry.TimestampLength {
			return nil, fmt.Errorf("%w: trace %d claims %d samples in %d bytes",
				errs.ErrInvalidTimestampPayload, i, entry.Count, entry.TimestampLength)
		}
		if entry.Count > entry.ValueLength/2 {
			return nil, fmt.Errorf("%w: trace %d claims %d samples in %d bytes",
				errs.ErrInvalidValuePayload, i, entry.Count, entry.ValueLength)
		}
		d.byID[entry.TraceID] = i
		d.byName[d.names[i]] = i
	}

	return d, nil
}

func decompress(ct format.CompressionType, data []byte, errInvalid error) ([]byte, error) {
	codec, err := compress.GetCodec(ct)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalid, err)
	}
	out, err := codec.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalid, err)
	}
	if ct == format.CompressionNone {
		out = bytes.Clone(out)
	}

	return out, nil
}

// Header returns the parsed snapshot header.
func (d *Decoder) Header() section.Header {
	return d.header
}

// Len returns the number of traces in the snapshot.
func (d *Decoder) Len() int {
	return len(d.entries)
}

// Names returns the trace names in the order they were added.
func (d *Decoder) Names() []string {
	return append([]string(nil), d.names...)
}

// UnitTime returns the recorded unit time, 0 when unknown.
func (d *Decoder) UnitTime() int64 {
	return d.header.UnitTime
}

// HasHashCollision reports whether two names share a trace ID. Lookups then go
// through the names payload instead of the ID table.
func (d *Decoder) HasHashCollision() bool {
	return d.header.Flag.HasHashCollision()
}

// Trace decodes the trace stored under name.
func (d *Decoder) Trace(name string) (*trace.Trace, error) {
	idx, ok := d.lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrTraceNotFound, name)
	}

	return d.TraceAt(idx)
}

func (d *Decoder) lookup(name string) (int, bool) {
	if d.HasHashCollision() {
		idx, ok := d.byName[name]
		return idx, ok
	}

	idx, ok := d.byID[hash.TraceID(name)]
	if !ok || d.names[idx] != name {
		return 0, false
	}

	return idx, true
}

// TraceAt decodes the i-th trace in insertion order.
func (d *Decoder) TraceAt(i int) (*trace.Trace, error) {
	if i < 0 || i >= len(d.entries) {
		return nil, fmt.Errorf("%w: index %d", errs.ErrTraceNotFound, i)
	}
	entry := d.entries[i]
	count := int(entry.Count)

	tsStart, tsEnd := entry.TimestampRange()
	times, err := encoding.Collect(d.tsDec, d.timestamps[tsStart:tsEnd], count, errs.ErrInvalidTimestampPayload)
	if err != nil {
		return nil, fmt.Errorf("trace %q: %w", d.names[i], err)
	}
	valStart, valEnd := entry.ValueRange()
	values, err := encoding.Collect[trace.Value](d.valDec, d.values[valStart:valEnd], count, errs.ErrInvalidValuePayload)
	if err != nil {
		return nil, fmt.Errorf("trace %q: %w", d.names[i], err)
	}

	tr := trace.New(d.names[i], int(entry.BitWidth))
	for j, tm := range times {
		if j > 0 && tm < times[j-1] {
			return nil, fmt.Errorf("%w: trace %q is not time ordered", errs.ErrInvalidTimestampPayload, d.names[i])
		}
		tr.StoreSample(values[j], tm)
	}

	return tr, nil
}

// Traces decodes every trace in insertion order.
func (d *Decoder) Traces() ([]*trace.Trace, error) {
	out := make([]*trace.Trace, len(d.entries))
	for i := range d.entries {
		tr, err := d.TraceAt(i)
		if err != nil {
			return nil, err
		}
		out[i] = tr
	}

	return out, nil
}

// Decode is a shortcut that decodes every trace of a snapshot.
func Decode(data []byte) ([]*trace.Trace, error) {
	d, err := NewDecoder(data)
	if err != nil {
		return nil, err
	}

	return d.Traces()
}
