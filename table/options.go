package table

import (
	"fmt"

	"github.com/arloliu/wavepeek/errs"
	"github.com/arloliu/wavepeek/internal/options"
	"github.com/arloliu/wavepeek/trace"
)

// Formatter renders one cell value.
type Formatter func(trace.Value) string

type config struct {
	start  *int64
	stop   *int64
	step   int64
	format Formatter
}

func newConfig() *config {
	return &config{format: trace.Value.String}
}

// Option configures Export.
type Option = options.Option[*config]

// WithStart sets the earliest exported time.
func WithStart(start int64) Option {
	return options.NoError(func(c *config) { c.start = &start })
}

// WithStop sets the latest exported time.
func WithStop(stop int64) Option {
	return options.NoError(func(c *config) { c.stop = &stop })
}

// WithStep adds a row every step time units between the bounds. Zero disables the
// grid.
func WithStep(step int64) Option {
	return options.New(func(c *config) error {
		if step < 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidStep, step)
		}
		c.step = step

		return nil
	})
}

// WithFormatter replaces the default cell formatter (Value.String). A nil
// formatter restores the default.
func WithFormatter(f Formatter) Option {
	return options.NoError(func(c *config) {
		if f == nil {
			f = trace.Value.String
		}
		c.format = f
	})
}
