package fisher

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/refmetry/uncert/errs"
	"github.com/refmetry/uncert/internal/options"
	"github.com/refmetry/uncert/internal/pool"
	"github.com/refmetry/uncert/model"
)

// Matrix is a p×p Fisher information matrix computed at a specific parameter
// point. It is a value object: symmetric by construction, immutable after
// creation, and recomputed whenever the model, dataset, or point changes.
type Matrix struct {
	sym   *mat.SymDense
	point []float64
}

// Compute assembles the Fisher information matrix g = Jᵀ diag(1/σ²) J for the
// given model, dataset, and parameter point.
//
// The Jacobian J is computed by centered finite differences with the step
// policy from opts (see Option). The result is symmetrized as (M+Mᵀ)/2 before
// return to eliminate the floating-point asymmetry of the two-sided
// difference construction, so Matrix is exactly symmetric.
//
// Compute has no side effects; it is a pure function of its inputs.
//
// Parameters:
//   - m: Forward model to linearize
//   - ds: Dataset providing design points and per-point standard deviations
//   - point: Parameter vector at which to linearize (length m.NumParams())
//   - opts: Optional step-size configuration
//
// Returns:
//   - *Matrix: The symmetric p×p information matrix
//   - error: Configuration error (invalid dataset, parameters, or steps) or
//     model evaluation error
func Compute(m model.Model, ds *model.Dataset, point []float64, opts ...Option) (*Matrix, error) {
	jac, err := Jacobian(m, ds, point, opts...)
	if err != nil {
		return nil, err
	}

	n, p := jac.Dims()

	// Scale each Jacobian row by 1/σ so that JwᵀJw = Jᵀ diag(1/σ²) J.
	jw := mat.NewDense(n, p, nil)
	for i := range n {
		inv := 1 / ds.Sigma[i]
		for k := range p {
			jw.Set(i, k, jac.At(i, k)*inv)
		}
	}

	var g mat.Dense
	g.Mul(jw.T(), jw)

	sym := mat.NewSymDense(p, nil)
	for k := range p {
		for l := k; l < p; l++ {
			sym.SetSym(k, l, (g.At(k, l)+g.At(l, k))/2)
		}
	}

	pt := make([]float64, len(point))
	copy(pt, point)

	return &Matrix{sym: sym, point: pt}, nil
}

// Jacobian computes the n×p matrix of partial derivatives of the model's
// predicted observation vector with respect to each parameter, by centered
// finite differences:
//
//	J[i][k] = (m(point + eₖhₖ, x)[i] - m(point - eₖhₖ, x)[i]) / (2hₖ)
//
// The step hₖ follows the policy configured via opts: an explicit
// per-parameter step, or a relative step with a minimum absolute floor.
func Jacobian(m model.Model, ds *model.Dataset, point []float64, opts ...Option) (*mat.Dense, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	if err := model.ValidateParams(m, point); err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.steps != nil && len(cfg.steps) != len(point) {
		return nil, fmt.Errorf("%w: %d step sizes for %d parameters",
			errs.ErrDimensionMismatch, len(cfg.steps), len(point))
	}

	n := ds.Len()
	p := len(point)
	jac := mat.NewDense(n, p, nil)

	shifted, release := pool.GetFloat64Slice(p)
	defer release()

	for k := range p {
		h := cfg.step(k, point[k])

		copy(shifted, point)
		shifted[k] = point[k] + h
		upper, err := m.Eval(shifted, ds.X)
		if err != nil {
			return nil, fmt.Errorf("model evaluation failed at +step for parameter %d: %w", k, err)
		}

		shifted[k] = point[k] - h
		lower, err := m.Eval(shifted, ds.X)
		if err != nil {
			return nil, fmt.Errorf("model evaluation failed at -step for parameter %d: %w", k, err)
		}

		if len(upper) != n || len(lower) != n {
			return nil, fmt.Errorf("%w: model returned %d/%d predictions for %d design points",
				errs.ErrDimensionMismatch, len(upper), len(lower), n)
		}

		inv := 1 / (2 * h)
		for i := range n {
			jac.Set(i, k, (upper[i]-lower[i])*inv)
		}
	}

	return jac, nil
}

// Dim returns the parameter count p.
func (m *Matrix) Dim() int {
	return m.sym.SymmetricDim()
}

// At returns the (i, j) entry.
func (m *Matrix) At(i, j int) float64 {
	return m.sym.At(i, j)
}

// Point returns a copy of the parameter point the matrix was computed at.
func (m *Matrix) Point() []float64 {
	pt := make([]float64, len(m.point))
	copy(pt, m.point)

	return pt
}

// Sym returns a copy of the underlying symmetric matrix.
func (m *Matrix) Sym() *mat.SymDense {
	out := mat.NewSymDense(m.sym.SymmetricDim(), nil)
	out.CopySym(m.sym)

	return out
}

// StandardErrors returns the quick per-parameter uncertainty 1/sqrt(g[k][k]).
//
// This ignores parameter correlations; for correlated uncertainty use the
// full inverse via covariance.FromFisher. A non-positive diagonal entry means
// the design carries no information about that parameter and is reported as
// a singular-matrix error.
func (m *Matrix) StandardErrors() ([]float64, error) {
	p := m.Dim()
	out := make([]float64, p)
	for k := range p {
		g := m.sym.At(k, k)
		if !(g > 0) {
			return nil, fmt.Errorf("%w: no information about parameter %d (g[%d][%d]=%v)",
				errs.ErrSingularMatrix, k, k, k, g)
		}
		out[k] = 1 / math.Sqrt(g)
	}

	return out, nil
}
