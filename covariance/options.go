package covariance

import (
	"fmt"
	"math"

	"github.com/refmetry/uncert/errs"
	"github.com/refmetry/uncert/internal/options"
)

// DefaultConditionLimit is the condition-number threshold above which a
// Fisher matrix is treated as numerically singular. Beyond roughly 1e12 the
// inverse of a float64 matrix carries no trustworthy digits.
const DefaultConditionLimit = 1e12

type config struct {
	condLimit float64
	source    Source
	sourceSet bool
}

func defaultConfig() *config {
	return &config{condLimit: DefaultConditionLimit}
}

// Option is a functional option for covariance estimation.
type Option = options.Option[*config]

// WithConditionLimit sets the condition-number threshold for FromFisher.
// limit must be at least 1.
func WithConditionLimit(limit float64) Option {
	return options.New(func(cfg *config) error {
		if !(limit >= 1) || math.IsInf(limit, 0) {
			return fmt.Errorf("%w: condition limit %v", errs.ErrNonFiniteValue, limit)
		}
		cfg.condLimit = limit

		return nil
	})
}

// WithSource overrides the provenance tag inferred by FromSamples
// (SourceNested for weighted draws, SourceMCMC otherwise).
func WithSource(s Source) Option {
	return options.NoError(func(cfg *config) {
		cfg.source = s
		cfg.sourceSet = true
	})
}
