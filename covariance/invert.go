package covariance

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/refmetry/uncert/errs"
	"github.com/refmetry/uncert/fisher"
	"github.com/refmetry/uncert/internal/options"
)

// FromFisher inverts a Fisher information matrix into a covariance estimate
// tagged SourceFisher, centered on the parameter point the matrix was
// computed at.
//
// The inversion goes through an SVD so that the condition number comes for
// free from the singular values. A zero smallest singular value is reported
// as ErrSingularMatrix; a condition number above the configured limit
// (default DefaultConditionLimit, see WithConditionLimit) as
// ErrIllConditioned. Both mean the experiment design does not constrain one
// or more parameters, and are surfaced to the caller rather than replaced by
// a default covariance.
//
// The returned matrix is symmetrized as (M+Mᵀ)/2. It is guaranteed symmetric
// but not positive-definite when the input was only positive-semi-definite;
// Estimate.StandardErrors checks the diagonal.
func FromFisher(fim *fisher.Matrix, opts ...Option) (*Estimate, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	p := fim.Dim()

	var svd mat.SVD
	if ok := svd.Factorize(fim.Sym(), mat.SVDFull); !ok {
		return nil, fmt.Errorf("%w: SVD factorization failed", errs.ErrSingularMatrix)
	}

	values := svd.Values(nil)
	smax, smin := values[0], values[p-1]
	if !(smin > 0) {
		return nil, fmt.Errorf("%w: smallest singular value %v", errs.ErrSingularMatrix, smin)
	}
	if cond := smax / smin; cond > cfg.condLimit {
		return nil, fmt.Errorf("%w: condition number %.3e exceeds limit %.3e",
			errs.ErrIllConditioned, cond, cfg.condLimit)
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// inverse = V · diag(1/s) · Uᵀ
	scaled := mat.NewDense(p, p, nil)
	for j := range p {
		inv := 1 / values[j]
		for i := range p {
			scaled.Set(i, j, v.At(i, j)*inv)
		}
	}

	var invM mat.Dense
	invM.Mul(scaled, u.T())

	cov := mat.NewSymDense(p, nil)
	for i := range p {
		for j := i; j < p; j++ {
			cov.SetSym(i, j, (invM.At(i, j)+invM.At(j, i))/2)
		}
	}

	return newEstimate(SourceFisher, fim.Point(), cov), nil
}
