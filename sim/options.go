package sim

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/refmetry/uncert/errs"
	"github.com/refmetry/uncert/internal/options"
)

// Defaults match the canonical reflectometry simulation setup: 300 points
// over q ∈ [0.005, 0.3] Å⁻¹ with a 5e5 noise constant.
const (
	DefaultPoints        = 300
	DefaultQMin          = 0.005
	DefaultQMax          = 0.3
	DefaultNoiseConstant = 5e5
	DefaultBkgRate       = 5e-7
)

type genConfig struct {
	points        int
	qMin, qMax    float64
	noiseConstant float64
	bkgRate       float64
	src           rand.Source
}

func defaultGenConfig() *genConfig {
	return &genConfig{
		points:        DefaultPoints,
		qMin:          DefaultQMin,
		qMax:          DefaultQMax,
		noiseConstant: DefaultNoiseConstant,
		bkgRate:       DefaultBkgRate,
	}
}

// Option is a functional option for Generate.
type Option = options.Option[*genConfig]

func applyOptions(cfg *genConfig, opts []Option) error {
	return options.Apply(cfg, opts...)
}

// WithPoints sets the number of q points.
func WithPoints(n int) Option {
	return options.New(func(cfg *genConfig) error {
		if n < 1 {
			return fmt.Errorf("%w: point count %d", errs.ErrLengthMismatch, n)
		}
		cfg.points = n

		return nil
	})
}

// WithQRange sets the momentum transfer range of the log-spaced grid.
func WithQRange(qMin, qMax float64) Option {
	return options.New(func(cfg *genConfig) error {
		if !(qMin > 0) || !(qMax > qMin) || math.IsInf(qMax, 0) {
			return fmt.Errorf("%w: q range [%v, %v]", errs.ErrNonFiniteValue, qMin, qMax)
		}
		cfg.qMin, cfg.qMax = qMin, qMax

		return nil
	})
}

// WithNoiseConstant sets the counting-time scale k. Larger k means more
// counts and smaller error bars.
func WithNoiseConstant(k float64) Option {
	return options.New(func(cfg *genConfig) error {
		if !(k > 0) || math.IsInf(k, 0) {
			return fmt.Errorf("%w: noise constant %v", errs.ErrNonFiniteValue, k)
		}
		cfg.noiseConstant = k

		return nil
	})
}

// WithBackgroundRate sets the mean additive background rate.
func WithBackgroundRate(rate float64) Option {
	return options.New(func(cfg *genConfig) error {
		if rate < 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
			return fmt.Errorf("%w: background rate %v", errs.ErrNonFiniteValue, rate)
		}
		cfg.bkgRate = rate

		return nil
	})
}

// WithRand sets the random source, making the simulation deterministic.
// Without it the global source is used.
func WithRand(src rand.Source) Option {
	return options.NoError(func(cfg *genConfig) {
		cfg.src = src
	})
}
