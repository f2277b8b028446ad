package wave

import (
	"fmt"

	"github.com/arloliu/wavepeek/errs"
	"github.com/arloliu/wavepeek/internal/options"
	"github.com/arloliu/wavepeek/trace"
)

// RenderConfig holds the settings used by Render.
type RenderConfig struct {
	Start    *int64 // left edge of the window; earliest trace start when nil
	Stop     *int64 // right edge of the window; latest trace stop when nil
	UnitTime int64  // time per wave character; inferred from the traces when 0
	Title    string
	Caption  string
	Tick     bool // label tick marks with cycle numbers
	Tock     bool // label the spans between tick marks with cycle numbers

	inferOpts []trace.InferOption
}

// RenderOption configures Render.
type RenderOption = options.Option[*RenderConfig]

// WithStart sets the left edge of the window.
func WithStart(start int64) RenderOption {
	return options.NoError(func(c *RenderConfig) { c.Start = &start })
}

// WithStop sets the right edge of the window.
func WithStop(stop int64) RenderOption {
	return options.NoError(func(c *RenderConfig) { c.Stop = &stop })
}

// WithWindow sets both window edges.
func WithWindow(start, stop int64) RenderOption {
	return options.New(func(c *RenderConfig) error {
		if start > stop {
			return fmt.Errorf("%w: [%d, %d]", errs.ErrInvalidWindow, start, stop)
		}
		c.Start, c.Stop = &start, &stop

		return nil
	})
}

// WithUnitTime fixes the time per wave character instead of inferring it.
func WithUnitTime(unit int64) RenderOption {
	return options.New(func(c *RenderConfig) error {
		if unit <= 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidUnitTime, unit)
		}
		c.UnitTime = unit

		return nil
	})
}

// WithTolerance is passed to trace.InferUnitTime when the unit time is inferred.
func WithTolerance(tol float64) RenderOption {
	return options.NoError(func(c *RenderConfig) {
		c.inferOpts = append(c.inferOpts, trace.WithTolerance(tol))
	})
}

// WithTitle places title across the top of the waveform.
func WithTitle(title string) RenderOption {
	return options.NoError(func(c *RenderConfig) { c.Title = title })
}

// WithCaption places caption across the bottom of the waveform.
func WithCaption(caption string) RenderOption {
	return options.NoError(func(c *RenderConfig) { c.Caption = caption })
}

// WithTick labels each tick mark with its cycle number.
func WithTick(enabled bool) RenderOption {
	return options.NoError(func(c *RenderConfig) { c.Tick = enabled })
}

// WithTock labels the span between tick marks with its cycle number.
func WithTock(enabled bool) RenderOption {
	return options.NoError(func(c *RenderConfig) { c.Tock = enabled })
}
