package trace

import (
	"fmt"
	"iter"
	"slices"
	"sort"

	"github.com/arloliu/wavepeek/errs"
)

// Sample is a value observed at a simulation time.
type Sample struct {
	Time  int64
	Value Value
}

// Trace is the time-ordered sample history of one monitored signal.
//
// Samples are kept in non-decreasing time order. Several samples may share a time;
// the later one wins for every query. A Trace is written by exactly one signal
// source while the simulation runs and is read-only afterwards. No method of Trace
// that returns a derived trace modifies the receiver.
type Trace struct {
	name     string
	bitWidth int
	samples  []Sample
}

// New creates an empty trace. bitWidth controls rendering: widths above 1 are drawn
// as bus envelopes, anything else as a binary level.
func New(name string, bitWidth int) *Trace {
	return &Trace{name: name, bitWidth: max(bitWidth, 0)}
}

// FromSamples creates an unnamed trace from samples. The samples are stably sorted
// by time so callers may pass them in any order.
func FromSamples(samples ...Sample) *Trace {
	s := slices.Clone(samples)
	sort.SliceStable(s, func(i, j int) bool { return s[i].Time < s[j].Time })

	return &Trace{samples: s}
}

// Constant creates a single-sample trace holding v from time 0.
func Constant(v Value) *Trace {
	return &Trace{samples: []Sample{{Time: 0, Value: v}}}
}

// Name returns the display name of the trace.
func (t *Trace) Name() string { return t.name }

// SetName changes the display name. Registries use it to keep the trace name in
// step with its binding.
func (t *Trace) SetName(name string) { t.name = name }

// BitWidth returns the display width of the trace.
func (t *Trace) BitWidth() int { return t.bitWidth }

// SetBitWidth changes the display width. Negative widths are stored as 0.
func (t *Trace) SetBitWidth(width int) { t.bitWidth = max(width, 0) }

// Len returns the number of samples.
func (t *Trace) Len() int { return len(t.samples) }

// At returns the i-th sample. It panics if i is out of range.
func (t *Trace) At(i int) Sample { return t.samples[i] }

// Samples returns a copy of the samples.
func (t *Trace) Samples() []Sample { return slices.Clone(t.samples) }

// All iterates over the samples in time order.
func (t *Trace) All() iter.Seq[Sample] {
	return func(yield func(Sample) bool) {
		for _, s := range t.samples {
			if !yield(s) {
				return
			}
		}
	}
}

// StoreSample appends a sample. The caller guarantees that time is not earlier
// than the time of the previously stored sample.
func (t *Trace) StoreSample(v Value, time int64) {
	t.samples = append(t.samples, Sample{Time: time, Value: v})
}

// InsertSample inserts s after every sample with the same or an earlier time.
// It is meant for working copies; live traces are only appended to.
func (t *Trace) InsertSample(s Sample) {
	t.samples = slices.Insert(t.samples, t.Index(s.Time), s)
}

// Clear drops every sample but keeps name and width.
func (t *Trace) Clear() {
	t.samples = t.samples[:0]
}

// Index returns the position of the first sample whose time is greater than time,
// or Len() if there is none.
func (t *Trace) Index(time int64) int {
	return sort.Search(len(t.samples), func(i int) bool { return t.samples[i].Time > time })
}

// Value returns the value of the trace at time: the latest sample at or before
// time. Times before the first sample hold the first value and times after the
// last sample hold the last value.
func (t *Trace) Value(time int64) (Value, error) {
	if len(t.samples) == 0 {
		return Value{}, t.emptyErr()
	}

	return t.samples[max(t.Index(time)-1, 0)].Value, nil
}

// StartTime returns the time of the first sample.
func (t *Trace) StartTime() (int64, error) {
	if len(t.samples) == 0 {
		return 0, t.emptyErr()
	}

	return t.samples[0].Time, nil
}

// StopTime returns the time of the last sample.
func (t *Trace) StopTime() (int64, error) {
	if len(t.samples) == 0 {
		return 0, t.emptyErr()
	}

	return t.samples[len(t.samples)-1].Time, nil
}

func (t *Trace) emptyErr() error {
	if t.name == "" {
		return errs.ErrEmptyTrace
	}

	return fmt.Errorf("%s: %w", t.name, errs.ErrEmptyTrace)
}

// SampleTimes returns the times of the samples that fall in [start, stop].
func (t *Trace) SampleTimes(start, stop int64) []int64 {
	times := make([]int64, 0, len(t.samples))
	for _, s := range t.samples {
		if s.Time >= start && s.Time <= stop {
			times = append(times, s.Time)
		}
	}

	return times
}

// Clone returns a deep copy of the trace, metadata included.
func (t *Trace) Clone() *Trace {
	return &Trace{name: t.name, bitWidth: t.bitWidth, samples: slices.Clone(t.samples)}
}

// WithName returns a copy of the trace carrying a different name.
func (t *Trace) WithName(name string) *Trace {
	c := t.Clone()
	c.name = name

	return c
}

// WithBitWidth returns a copy of the trace with a different display width.
func (t *Trace) WithBitWidth(width int) *Trace {
	c := t.Clone()
	c.SetBitWidth(width)

	return c
}

// ExtendDuration returns a copy that covers [start, stop]: the first value is held
// back to start and the last value forward to stop when the trace does not already
// reach them.
func (t *Trace) ExtendDuration(start, stop int64) (*Trace, error) {
	if len(t.samples) == 0 {
		return nil, t.emptyErr()
	}

	c := t.Clone()
	if first := c.samples[0]; start < first.Time {
		c.samples = slices.Insert(c.samples, 0, Sample{Time: start, Value: first.Value})
	}
	if last := c.samples[len(c.samples)-1]; stop > last.Time {
		c.samples = append(c.samples, Sample{Time: stop, Value: last.Value})
	}

	return c, nil
}

// Delay returns a copy with every sample shifted by delta. Name and width are kept.
func (t *Trace) Delay(delta int64) *Trace {
	c := t.Clone()
	for i := range c.samples {
		c.samples[i].Time += delta
	}

	return c
}

// CollapseTimeRepeats returns a copy keeping only the last sample at each time.
func (t *Trace) CollapseTimeRepeats() *Trace {
	c := &Trace{name: t.name, bitWidth: t.bitWidth, samples: make([]Sample, 0, len(t.samples))}
	for i, s := range t.samples {
		if i+1 < len(t.samples) && t.samples[i+1].Time == s.Time {
			continue
		}
		c.samples = append(c.samples, s)
	}

	return c
}

// CollapseValueRepeats returns a copy that drops samples repeating the value of
// the previous kept sample.
func (t *Trace) CollapseValueRepeats() *Trace {
	c := &Trace{name: t.name, bitWidth: t.bitWidth, samples: make([]Sample, 0, len(t.samples))}
	for _, s := range t.samples {
		if n := len(c.samples); n > 0 && c.samples[n-1].Value.Equal(s.Value) {
			continue
		}
		c.samples = append(c.samples, s)
	}

	return c
}

// TrigTimes returns the times of every sample whose value is truthy.
func (t *Trace) TrigTimes() []int64 {
	var times []int64
	for _, s := range t.samples {
		if s.Value.Truthy() {
			times = append(times, s.Time)
		}
	}

	return times
}
