package archive

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/arloliu/wavepeek/compress"
	"github.com/arloliu/wavepeek/encoding"
	"github.com/arloliu/wavepeek/endian"
	"github.com/arloliu/wavepeek/errs"
	"github.com/arloliu/wavepeek/format"
	"github.com/arloliu/wavepeek/internal/collision"
	"github.com/arloliu/wavepeek/internal/hash"
	"github.com/arloliu/wavepeek/internal/options"
	"github.com/arloliu/wavepeek/section"
	"github.com/arloliu/wavepeek/trace"
)

// Encoder builds a snapshot from a set of traces.
//
// Traces are appended with Add and the snapshot bytes are produced by Finish.
// An Encoder is single-use and not safe for concurrent use.
type Encoder struct {
	cfg      *EncoderConfig
	header   *section.Header
	tracker  *collision.Tracker
	entries  []section.IndexEntry
	tsEnc    encoding.ColumnarEncoder[int64]
	valEnc   *encoding.ValueEncoder
	namesEnc *encoding.VarStringEncoder
	stats    []compress.Stats
	finished bool
}

// NewEncoder creates a snapshot encoder.
//
// Parameters:
//   - opts: byte order, timestamp encoding, payload compression and unit time
//
// Returns:
//   - *Encoder: encoder ready for Add
//   - error: invalid option
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	cfg := newEncoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	h := section.NewHeader()
	h.Flag.SetBigEndian(endian.IsBig(cfg.engine))
	h.Flag.SetTimestampEncoding(cfg.timestampEncoding)
	h.Flag.SetTimestampCompression(cfg.timestampCompression)
	h.Flag.SetValueCompression(cfg.valueCompression)
	h.Flag.SetNamesCompression(cfg.namesCompression)
	h.UnitTime = cfg.unitTime

	e := &Encoder{
		cfg:      cfg,
		header:   h,
		tracker:  collision.NewTracker(),
		valEnc:   encoding.NewValueEncoder(cfg.engine),
		namesEnc: encoding.NewVarStringEncoder(),
	}
	if cfg.timestampEncoding == format.TypeRaw {
		e.tsEnc = encoding.NewTimestampRawEncoder(cfg.engine)
	} else {
		e.tsEnc = encoding.NewTimestampDeltaEncoder()
	}

	return e, nil
}

// SetUnitTime records the unit time in the header. Zero means unknown.
func (e *Encoder) SetUnitTime(unit int64) {
	e.header.UnitTime = max(unit, 0)
}

// Len returns the number of traces added.
func (e *Encoder) Len() int {
	return len(e.entries)
}

// Add appends one trace under its current name.
//
// Returns ErrNilTrace, ErrInvalidTraceName for an unnamed trace,
// ErrDuplicateTraceName when the name was already added, ErrUnsupportedValue for
// a sample without a value, and ErrSnapshotTooLarge when a payload outgrows the
// 32-bit offsets.
func (e *Encoder) Add(tr *trace.Trace) error {
	if e.finished {
		return errs.ErrEncoderFinished
	}
	if tr == nil {
		return errs.ErrNilTrace
	}

	for s := range tr.All() {
		if !s.Value.IsValid() {
			return fmt.Errorf("%w: trace %q at time %d", errs.ErrUnsupportedValue, tr.Name(), s.Time)
		}
	}

	name := tr.Name()
	entry := section.IndexEntry{TraceID: hash.TraceID(name)}
	var err error
	if entry.BitWidth, err = safecast.Conv[uint32](tr.BitWidth()); err != nil {
		return fmt.Errorf("%w: bit width of %q: %w", errs.ErrSnapshotTooLarge, name, err)
	}
	if entry.Count, err = safecast.Conv[uint32](tr.Len()); err != nil {
		return fmt.Errorf("%w: sample count of %q: %w", errs.ErrSnapshotTooLarge, name, err)
	}
	if err := e.tracker.Track(name, entry.TraceID); err != nil {
		return err
	}

	tsStart, valStart := e.tsEnc.Size(), e.valEnc.Size()
	e.tsEnc.Reset()
	for s := range tr.All() {
		e.tsEnc.Write(s.Time)
		e.valEnc.Write(s.Value)
	}
	e.namesEnc.Write(name)

	if entry.TimestampOffset, entry.TimestampLength, err = span(tsStart, e.tsEnc.Size()); err != nil {
		e.abort()
		return fmt.Errorf("%w: timestamps of %q", err, name)
	}
	if entry.ValueOffset, entry.ValueLength, err = span(valStart, e.valEnc.Size()); err != nil {
		e.abort()
		return fmt.Errorf("%w: values of %q", err, name)
	}
	e.entries = append(e.entries, entry)

	return nil
}

func span(start, end int) (uint32, uint32, error) {
	off, err := safecast.Conv[uint32](start)
	if err != nil {
		return 0, 0, errs.ErrSnapshotTooLarge
	}
	length, err := safecast.Conv[uint32](end - start)
	if err != nil {
		return 0, 0, errs.ErrSnapshotTooLarge
	}

	return off, length, nil
}

// Finish compresses the payloads and returns the snapshot bytes. The encoder
// releases its buffers and cannot be reused.
func (e *Encoder) Finish() ([]byte, error) {
	if e.finished {
		return nil, errs.ErrEncoderFinished
	}
	e.finished = true
	defer e.release()

	names, err := e.compress("names", e.cfg.namesCompression, e.namesEnc.Bytes())
	if err != nil {
		return nil, err
	}
	timestamps, err := e.compress("timestamps", e.cfg.timestampCompression, e.tsEnc.Bytes())
	if err != nil {
		return nil, err
	}
	values, err := e.compress("values", e.cfg.valueCompression, e.valEnc.Bytes())
	if err != nil {
		return nil, err
	}

	h := e.header
	h.Flag.SetHashCollision(e.tracker.HasCollision())
	if h.TraceCount, err = safecast.Conv[uint32](len(e.entries)); err != nil {
		return nil, fmt.Errorf("%w: trace count", errs.ErrSnapshotTooLarge)
	}

	indexEnd := section.IndexOffset + len(e.entries)*section.IndexEntrySize
	total := indexEnd + len(names) + len(timestamps) + len(values)
	if uint64(total) > section.MaxOffset {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrSnapshotTooLarge, total)
	}
	h.NamesPayloadOffset = uint32(indexEnd)                                   //nolint:gosec
	h.TimestampPayloadOffset = h.NamesPayloadOffset + uint32(len(names))      //nolint:gosec
	h.ValuePayloadOffset = h.TimestampPayloadOffset + uint32(len(timestamps)) //nolint:gosec

	out := make([]byte, 0, total)
	out = append(out, h.Bytes()...)
	for _, entry := range e.entries {
		out = entry.AppendTo(out, e.cfg.engine)
	}
	out = append(out, names...)
	out = append(out, timestamps...)
	out = append(out, values...)

	return out, nil
}

func (e *Encoder) compress(payload string, ct format.CompressionType, data []byte) ([]byte, error) {
	out, stats, err := compress.CompressWithStats(ct, payload, data)
	if err != nil {
		return nil, err
	}
	e.stats = append(e.stats, stats)

	return out, nil
}

// abort releases the buffers of an encoder whose payloads no longer match its
// index.
func (e *Encoder) abort() {
	e.finished = true
	e.release()
}

func (e *Encoder) release() {
	e.tsEnc.Finish()
	e.valEnc.Finish()
	e.namesEnc.Finish()
}

// Stats reports the size of each payload before and after compression. It is
// filled by Finish.
func (e *Encoder) Stats() []compress.Stats {
	return e.stats
}

// Encode is a shortcut that adds every trace to a new encoder and finishes it.
func Encode(traces []*trace.Trace, opts ...EncoderOption) ([]byte, error) {
	enc, err := NewEncoder(opts...)
	if err != nil {
		return nil, err
	}
	for _, tr := range traces {
		if err := enc.Add(tr); err != nil {
			if !enc.finished {
				enc.abort()
			}

			return nil, err
		}
	}

	return enc.Finish()
}
