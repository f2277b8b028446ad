package wavepeek

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/wavepeek/errs"
	"github.com/arloliu/wavepeek/internal/options"
	"github.com/arloliu/wavepeek/trace"
)

type sessionConfig struct {
	logger    *slog.Logger
	unitTime  int64
	inferOpts []trace.InferOption
}

// SessionOption configures NewSession and LoadSnapshot.
type SessionOption = options.Option[*sessionConfig]

// WithLogger sets the logger used for debug records. A nil logger selects
// slog.Default().
func WithLogger(logger *slog.Logger) SessionOption {
	return options.NoError(func(c *sessionConfig) { c.logger = logger })
}

// WithUnitTime fixes the session unit time instead of inferring it from the traces.
func WithUnitTime(unit int64) SessionOption {
	return options.New(func(c *sessionConfig) error {
		if unit <= 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidUnitTime, unit)
		}
		c.unitTime = unit

		return nil
	})
}

// WithTolerance sets the tolerance used when the unit time is inferred.
func WithTolerance(tol float64) SessionOption {
	return options.NoError(func(c *sessionConfig) {
		c.inferOpts = append(c.inferOpts, trace.WithTolerance(tol))
	})
}
