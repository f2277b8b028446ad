package wave

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/arloliu/wavepeek/errs"
	"github.com/arloliu/wavepeek/trace"
)

// Wave characters understood by WaveDrom.
const (
	charHold     = '.'
	charEnvelope = '='
	charHigh     = '1'
	charLow      = '0'
)

// Signal is one WaveJSON lane. A zero Signal marshals to {} and renders as a
// blank lane.
type Signal struct {
	Name string   `json:"name,omitempty"`
	Wave string   `json:"wave,omitempty"`
	Data []string `json:"data,omitempty"`
}

// encoderState is everything the encoder may have to roll back when a later
// sample lands on the same time as the previous one.
type encoderState struct {
	hasEmitted bool
	wave       []byte
	data       []string
	prevTime   int64
	prevValue  trace.Value
}

func (s encoderState) snapshot() encoderState {
	s.wave = slices.Clone(s.wave)
	s.data = slices.Clone(s.data)

	return s
}

// Encode renders tr over the closed window [start, stop] as a run-length wave
// string with one character per unit time.
//
// Traces wider than one bit are drawn as envelopes ('=') whose values are listed
// in Data; narrower traces are drawn as '0'/'1' levels. '.' continues the previous
// character. Samples sharing a time are resolved in favor of the later one.
//
// Parameters:
//   - tr: trace to encode (not modified)
//   - start, stop: window bounds, start <= stop
//   - unit: simulation time per wave character, > 0
//
// Returns:
//   - Signal: lane named after the trace, Data omitted for binary traces
//   - error: ErrEmptyTrace, ErrInvalidWindow or ErrInvalidUnitTime
func Encode(tr *trace.Trace, start, stop, unit int64) (Signal, error) {
	if unit <= 0 {
		return Signal{}, fmt.Errorf("%w: %d", errs.ErrInvalidUnitTime, unit)
	}
	if start > stop {
		return Signal{}, fmt.Errorf("%w: [%d, %d]", errs.ErrInvalidWindow, start, stop)
	}

	startValue, err := tr.Value(start)
	if err != nil {
		return Signal{}, err
	}
	stopValue, _ := tr.Value(stop)

	bounded := tr.Clone()
	bounded.InsertSample(trace.Sample{Time: start, Value: startValue})
	bounded.InsertSample(trace.Sample{Time: stop, Value: stopValue})

	bus := tr.BitWidth() > 1
	cur := encoderState{prevTime: start}
	saved := cur.snapshot()

	for s := range bounded.All() {
		if s.Time < start {
			continue
		}
		if s.Time > stop {
			break
		}
		if s.Time == cur.prevTime {
			cur = saved.snapshot()
		}
		saved = cur.snapshot()

		if n := ticks(s.Time-cur.prevTime, unit) - 1; n > 0 {
			cur.wave = append(cur.wave, strings.Repeat(string(charHold), n)...)
		}

		switch {
		case cur.hasEmitted && s.Value.Equal(cur.prevValue):
			cur.wave = append(cur.wave, charHold)
		case bus:
			cur.wave = append(cur.wave, charEnvelope)
			cur.data = append(cur.data, s.Value.String())
		case s.Value.Truthy():
			cur.wave = append(cur.wave, charHigh)
		default:
			cur.wave = append(cur.wave, charLow)
		}

		cur.hasEmitted = true
		cur.prevTime = s.Time
		cur.prevValue = s.Value
	}

	sig := Signal{Name: tr.Name(), Wave: string(cur.wave)}
	if len(cur.data) > 0 {
		sig.Data = cur.data
	}

	return sig, nil
}

// ticks converts a time span into wave characters, rounding half to even.
func ticks(span, unit int64) int {
	return int(math.RoundToEven(float64(span) / float64(unit)))
}
