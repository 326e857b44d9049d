// Package compare quantifies the agreement between two covariance estimates,
// typically the Fisher approximation against a sampling-based posterior
// covariance. The resulting report is what experiment scripts consume to
// decide whether the Fisher approximation remains valid under a given
// experimental condition (contrast, counting time, noise level).
//
// Everything here is read-only analysis of already-computed estimates; no
// new matrix factorization beyond a single solve for the Mahalanobis term.
package compare

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/refmetry/uncert/covariance"
	"github.com/refmetry/uncert/errs"
)

// Report summarizes the agreement between two covariance estimates A and B.
type Report struct {
	// SourceA and SourceB record the provenance of the two estimates.
	SourceA covariance.Source
	SourceB covariance.Source

	// StdErrRatios holds, per parameter, the ratio of A's standard error to
	// B's. Values near 1 mean the two routes agree on that parameter's
	// uncertainty.
	StdErrRatios []float64

	// Mahalanobis is the distance between the two mean vectors under B's
	// covariance metric: sqrt((μa−μb)ᵀ B⁻¹ (μa−μb)). Zero when the means
	// coincide.
	Mahalanobis float64

	// Frobenius is the Frobenius norm of the matrix difference A−B.
	Frobenius float64
}

// String returns a short human-readable summary.
func (r *Report) String() string {
	return fmt.Sprintf("Report{%s vs %s, Mahalanobis: %.4g, Frobenius: %.4g}",
		r.SourceA, r.SourceB, r.Mahalanobis, r.Frobenius)
}

// Covariances compares estimate a against estimate b.
//
// Comparing an estimate against itself yields standard-error ratios of
// exactly 1 for every parameter and zero Mahalanobis distance.
//
// The Mahalanobis term requires b's covariance to be positive definite; a
// failed Cholesky factorization is reported as ErrSingularMatrix. When the
// two means are identical the term is zero without any factorization.
func Covariances(a, b *covariance.Estimate) (*Report, error) {
	p := a.Dim()
	if b.Dim() != p {
		return nil, fmt.Errorf("%w: %d vs %d parameters", errs.ErrDimensionMismatch, p, b.Dim())
	}

	seA, err := a.StandardErrors()
	if err != nil {
		return nil, fmt.Errorf("estimate A: %w", err)
	}
	seB, err := b.StandardErrors()
	if err != nil {
		return nil, fmt.Errorf("estimate B: %w", err)
	}

	ratios := make([]float64, p)
	for k := range p {
		if seA[k] == seB[k] {
			ratios[k] = 1
		} else {
			ratios[k] = seA[k] / seB[k]
		}
	}

	maha, err := mahalanobis(a.Mean(), b.Mean(), b)
	if err != nil {
		return nil, err
	}

	frob := 0.0
	for i := range p {
		for j := range p {
			d := a.At(i, j) - b.At(i, j)
			frob += d * d
		}
	}

	return &Report{
		SourceA:      a.Source(),
		SourceB:      b.Source(),
		StdErrRatios: ratios,
		Mahalanobis:  maha,
		Frobenius:    math.Sqrt(frob),
	}, nil
}

func mahalanobis(meanA, meanB []float64, b *covariance.Estimate) (float64, error) {
	p := len(meanA)
	diff := make([]float64, p)
	zero := true
	for k := range p {
		diff[k] = meanA[k] - meanB[k]
		if diff[k] != 0 {
			zero = false
		}
	}
	if zero {
		return 0, nil
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(b.Sym()); !ok {
		return 0, fmt.Errorf("%w: covariance B is not positive definite", errs.ErrSingularMatrix)
	}

	d := mat.NewVecDense(p, diff)
	var solved mat.VecDense
	if err := chol.SolveVecTo(&solved, d); err != nil {
		return 0, fmt.Errorf("%w: %v", errs.ErrSingularMatrix, err)
	}

	return math.Sqrt(mat.Dot(d, &solved)), nil
}

// Ellipse traces the k-sigma confidence ellipse of the parameter pair (i, j)
// under the given covariance estimate, centered on the estimate's mean.
//
// The ellipse is the level set Xᵀ g X = k² of the pair's 2×2 information
// matrix g (the analytic inverse of the covariance submatrix), sampled at
// steps evenly spaced angles; the usual choice is k=2 for the 2σ region.
// The returned point sets feed external plotting.
//
// A non-positive determinant of the covariance submatrix means the pair is
// degenerate and is reported as ErrSingularMatrix.
func Ellipse(est *covariance.Estimate, i, j int, k float64, steps int) (xs, ys []float64, err error) {
	p := est.Dim()
	if i < 0 || j < 0 || i >= p || j >= p || i == j {
		return nil, nil, fmt.Errorf("%w: parameter pair (%d, %d) of %d", errs.ErrDimensionMismatch, i, j, p)
	}
	if steps <= 0 {
		steps = 256
	}

	cii, cjj, cij := est.At(i, i), est.At(j, j), est.At(i, j)
	det := cii*cjj - cij*cij
	if !(det > 0) {
		return nil, nil, fmt.Errorf("%w: covariance submatrix (%d, %d) has determinant %v",
			errs.ErrSingularMatrix, i, j, det)
	}

	// 2×2 information matrix of the pair.
	gii := cjj / det
	gjj := cii / det
	gij := -cij / det

	mean := est.Mean()
	xs = make([]float64, steps)
	ys = make([]float64, steps)
	for s := range steps {
		theta := 2 * math.Pi * float64(s) / float64(steps)
		sin, cos := math.Sincos(theta)

		// Radius at which the quadratic form reaches k².
		eps := k / math.Sqrt(gii*sin*sin+2*gij*sin*cos+gjj*cos*cos)
		xs[s] = mean[i] + eps*sin
		ys[s] = mean[j] + eps*cos
	}

	return xs, ys, nil
}
