package wavepeek

import (
	"fmt"
	"reflect"

	"github.com/arloliu/wavepeek/trace"
)

// Peeker is the ingestion handle of one monitored signal. The simulation adapter
// calls Store whenever the signal changes; times must not decrease.
//
// A Peeker has a single writer and no locking. Because it exposes Trace, a Peeker
// can be passed directly as an operand to the trace algebra.
type Peeker struct {
	tr *trace.Trace
}

// Name returns the current display name, e.g. "clk[0]" before cleanup and "clk"
// after.
func (p *Peeker) Name() string {
	return p.tr.Name()
}

// Trace returns the recorded trace.
func (p *Peeker) Trace() *trace.Trace {
	return p.tr
}

// Store records v at time.
func (p *Peeker) Store(v trace.Value, time int64) {
	p.tr.StoreSample(v, time)
}

// StoreAny converts a Go value with trace.ValueOf and records it at time.
func (p *Peeker) StoreAny(v any, time int64) error {
	val, err := trace.ValueOf(v)
	if err != nil {
		return fmt.Errorf("peeker %q: %w", p.Name(), err)
	}
	p.tr.StoreSample(val, time)

	return nil
}

// BitWidthOf infers a display width from a sample value: 1 for booleans, 2 for
// strings and fmt.Stringer values so they render as a bus, and 32 for integers,
// floats and anything else.
func BitWidthOf(v any) int {
	switch x := v.(type) {
	case trace.Value:
		if x.Kind() == trace.KindString {
			return 2
		}

		return 32
	case bool:
		return 1
	case string, fmt.Stringer:
		return 2
	}

	if v != nil && reflect.TypeOf(v).Kind() == reflect.Bool {
		return 1
	}

	return 32
}
