package fisher

import (
	"fmt"
	"math"

	"github.com/refmetry/uncert/errs"
	"github.com/refmetry/uncert/internal/options"
)

const (
	// DefaultRelativeStep is the default finite-difference step as a fraction
	// of each parameter's magnitude. A 0.5% step is the usual choice for
	// reflectivity models, whose curves are smooth on that scale.
	DefaultRelativeStep = 5e-3

	// DefaultMinStep is the minimum absolute step substituted when a
	// near-zero parameter value would otherwise underflow the relative step
	// into a degenerate zero-derivative column.
	DefaultMinStep = 1e-8
)

type config struct {
	relStep float64
	minStep float64
	steps   []float64
}

func defaultConfig() *config {
	return &config{
		relStep: DefaultRelativeStep,
		minStep: DefaultMinStep,
	}
}

// Option is a functional option for the finite-difference configuration.
type Option = options.Option[*config]

// WithRelativeStep sets the per-parameter step to rel*|value|.
// rel must be positive and finite.
func WithRelativeStep(rel float64) Option {
	return options.New(func(cfg *config) error {
		if !(rel > 0) || math.IsInf(rel, 0) {
			return fmt.Errorf("%w: relative step %v", errs.ErrInvalidStepSize, rel)
		}
		cfg.relStep = rel

		return nil
	})
}

// WithMinStep sets the minimum absolute step substituted for near-zero
// parameter values. min must be positive and finite.
func WithMinStep(min float64) Option {
	return options.New(func(cfg *config) error {
		if !(min > 0) || math.IsInf(min, 0) {
			return fmt.Errorf("%w: minimum step %v", errs.ErrInvalidStepSize, min)
		}
		cfg.minStep = min

		return nil
	})
}

// WithStepSizes sets explicit per-parameter absolute steps, overriding the
// relative-step policy. The slice length must match the parameter count of
// the model being differentiated; each entry must be positive and finite.
func WithStepSizes(steps []float64) Option {
	return options.New(func(cfg *config) error {
		for i, h := range steps {
			if !(h > 0) || math.IsInf(h, 0) {
				return fmt.Errorf("%w: steps[%d]=%v", errs.ErrInvalidStepSize, i, h)
			}
		}
		cfg.steps = steps

		return nil
	})
}

// step returns the finite-difference step for parameter k at value v.
func (cfg *config) step(k int, v float64) float64 {
	if cfg.steps != nil {
		return cfg.steps[k]
	}

	h := cfg.relStep * math.Abs(v)
	if h < cfg.minStep {
		h = cfg.minStep
	}

	return h
}
