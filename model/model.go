package model

import (
	"fmt"
	"math"

	"github.com/refmetry/uncert/errs"
)

// Model is a deterministic parametric forward model.
//
// Eval returns the predicted observation for each design point in x, given
// the parameter vector params. Implementations must not retain or mutate
// either slice, and must return identical output for identical input.
type Model interface {
	// Eval evaluates the model at the given parameter vector and design points.
	//
	// Parameters:
	//   - params: Parameter vector of length NumParams()
	//   - x: Design points (independent variable values)
	//
	// Returns:
	//   - []float64: Predicted observations, one per design point
	//   - error: Evaluation error (wrong parameter count, invalid domain)
	Eval(params, x []float64) ([]float64, error)

	// NumParams returns the length of the parameter vector the model expects.
	NumParams() int
}

// Dataset holds one experiment's observations.
//
// X is the independent variable (e.g. momentum transfer Q), Y the observed
// dependent values, and Sigma the per-point measurement standard deviations.
// All three slices must have equal length. The estimators treat a Dataset as
// read-only; callers own the backing slices.
type Dataset struct {
	X     []float64
	Y     []float64
	Sigma []float64
}

// NewDataset constructs a Dataset and validates it.
func NewDataset(x, y, sigma []float64) (*Dataset, error) {
	ds := &Dataset{X: x, Y: y, Sigma: sigma}
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	return ds, nil
}

// Len returns the number of observations.
func (d *Dataset) Len() int {
	return len(d.X)
}

// Validate checks the dataset invariants: equal slice lengths, at least one
// point, finite values, and strictly positive finite sigma.
//
// A zero or non-finite sigma is rejected as a configuration error rather than
// silently excluding the point: a zero sigma would contribute infinite
// information to the Fisher matrix, and dropping points behind the caller's
// back would change the effective experiment design.
func (d *Dataset) Validate() error {
	n := len(d.X)
	if n == 0 {
		return fmt.Errorf("%w: dataset is empty", errs.ErrLengthMismatch)
	}
	if len(d.Y) != n || len(d.Sigma) != n {
		return fmt.Errorf("%w: x=%d y=%d sigma=%d", errs.ErrLengthMismatch, n, len(d.Y), len(d.Sigma))
	}

	for i := range n {
		if math.IsNaN(d.X[i]) || math.IsInf(d.X[i], 0) {
			return fmt.Errorf("%w: x[%d]=%v", errs.ErrNonFiniteValue, i, d.X[i])
		}
		if math.IsNaN(d.Y[i]) || math.IsInf(d.Y[i], 0) {
			return fmt.Errorf("%w: y[%d]=%v", errs.ErrNonFiniteValue, i, d.Y[i])
		}
		if !(d.Sigma[i] > 0) || math.IsInf(d.Sigma[i], 0) {
			return fmt.Errorf("%w: sigma[%d]=%v", errs.ErrInvalidSigma, i, d.Sigma[i])
		}
	}

	return nil
}

// ValidateParams checks that params has the length the model expects and
// contains only finite values.
func ValidateParams(m Model, params []float64) error {
	if len(params) != m.NumParams() {
		return fmt.Errorf("%w: model expects %d parameters, got %d",
			errs.ErrDimensionMismatch, m.NumParams(), len(params))
	}
	for i, p := range params {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("%w: params[%d]=%v", errs.ErrNonFiniteValue, i, p)
		}
	}

	return nil
}
