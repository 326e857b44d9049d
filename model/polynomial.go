package model

import (
	"fmt"

	"github.com/refmetry/uncert/errs"
)

// Polynomial is the model y = c0 + c1*x + c2*x² + ... with the coefficients
// as its parameter vector.
//
// It is exactly linear in its parameters, so the finite-difference Jacobian
// of this model equals the analytic Vandermonde design matrix up to rounding,
// and the Fisher covariance equals the closed-form weighted-least-squares
// covariance (XᵀWX)⁻¹. That makes it the reference model for validating the
// estimators.
type Polynomial struct {
	degree int
}

var _ Model = (*Polynomial)(nil)

// NewPolynomial creates a polynomial model of the given degree.
// The model has degree+1 parameters, ordered from the constant term up.
func NewPolynomial(degree int) *Polynomial {
	if degree < 0 {
		degree = 0
	}

	return &Polynomial{degree: degree}
}

// NumParams returns degree+1.
func (p *Polynomial) NumParams() int {
	return p.degree + 1
}

// Eval evaluates the polynomial at each design point using Horner's scheme.
func (p *Polynomial) Eval(params, x []float64) ([]float64, error) {
	if len(params) != p.NumParams() {
		return nil, fmt.Errorf("%w: polynomial of degree %d expects %d parameters, got %d",
			errs.ErrDimensionMismatch, p.degree, p.NumParams(), len(params))
	}

	out := make([]float64, len(x))
	for i, xi := range x {
		acc := params[len(params)-1]
		for k := len(params) - 2; k >= 0; k-- {
			acc = acc*xi + params[k]
		}
		out[i] = acc
	}

	return out, nil
}
