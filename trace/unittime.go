package trace

import (
	"fmt"
	"math"

	"github.com/arloliu/wavepeek/errs"
	"github.com/arloliu/wavepeek/internal/options"
)

// DefaultUnitTimeTolerance is the largest distance from an integer accepted for
// interval ratios during unit-time inference.
const DefaultUnitTimeTolerance = 0.01

type inferConfig struct {
	tolerance float64
}

// InferOption configures InferUnitTime.
type InferOption = options.Option[*inferConfig]

// WithTolerance sets how far an interval ratio may be from an integer and still be
// accepted as a whole multiple of the unit time.
func WithTolerance(tol float64) InferOption {
	return options.New(func(c *inferConfig) error {
		if tol < 0 || tol >= 0.5 || math.IsNaN(tol) {
			return fmt.Errorf("%w: %v", errs.ErrInvalidTolerance, tol)
		}
		c.tolerance = tol

		return nil
	})
}

// InferUnitTime infers the sampling granularity shared by a set of traces.
//
// Each trace is reduced to its distinct transitions (same-time repeats keep the
// last sample, then consecutive equal values are dropped) and the intervals between
// consecutive transition times are counted across all traces. The smallest interval
// is returned when the most frequent interval and every other observed interval are
// whole multiples of it within the tolerance. Otherwise, or when no interval exists
// at all, the result is ErrAmbiguousUnitTime and the caller must supply the unit.
//
// Nil and empty traces are ignored.
func InferUnitTime(traces []*Trace, opts ...InferOption) (int64, error) {
	cfg := &inferConfig{tolerance: DefaultUnitTimeTolerance}
	if err := options.Apply(cfg, opts...); err != nil {
		return 0, err
	}

	counts := make(map[int64]int)
	var order []int64
	for _, tr := range traces {
		if tr == nil || tr.Len() == 0 {
			continue
		}
		reduced := tr.CollapseTimeRepeats().CollapseValueRepeats()
		for i := 1; i < len(reduced.samples); i++ {
			d := reduced.samples[i].Time - reduced.samples[i-1].Time
			if d <= 0 {
				continue
			}
			if counts[d] == 0 {
				order = append(order, d)
			}
			counts[d]++
		}
	}

	if len(order) == 0 {
		return 0, fmt.Errorf("%w: no sample intervals", errs.ErrAmbiguousUnitTime)
	}

	mostCommon, minInterval := order[0], order[0]
	for _, d := range order[1:] {
		if counts[d] > counts[mostCommon] {
			mostCommon = d
		}
		minInterval = min(minInterval, d)
	}

	if !isWholeMultiple(mostCommon, minInterval, cfg.tolerance) {
		return 0, fmt.Errorf("%w: dominant interval %d is not a multiple of %d",
			errs.ErrAmbiguousUnitTime, mostCommon, minInterval)
	}
	for _, d := range order {
		if !isWholeMultiple(d, minInterval, cfg.tolerance) {
			return 0, fmt.Errorf("%w: interval %d is not a multiple of %d",
				errs.ErrAmbiguousUnitTime, d, minInterval)
		}
	}

	return minInterval, nil
}

func isWholeMultiple(d, unit int64, tol float64) bool {
	ratio := float64(d) / float64(unit)
	return math.Abs(math.Round(ratio)-ratio) <= tol
}
