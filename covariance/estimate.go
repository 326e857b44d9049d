package covariance

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/refmetry/uncert/errs"
)

// Source identifies which estimation route produced a covariance estimate.
type Source uint8

const (
	// SourceFisher marks a covariance obtained by inverting a Fisher
	// information matrix.
	SourceFisher Source = 0x1
	// SourceMCMC marks an empirical covariance of unweighted MCMC draws.
	SourceMCMC Source = 0x2
	// SourceNested marks an empirical covariance of weighted nested-sampling draws.
	SourceNested Source = 0x3
)

// String returns the string representation of the source.
func (s Source) String() string {
	switch s {
	case SourceFisher:
		return "Fisher"
	case SourceMCMC:
		return "MCMC"
	case SourceNested:
		return "Nested"
	default:
		return "Unknown"
	}
}

// Estimate is a p×p symmetric parameter covariance matrix together with the
// parameter mean it is centered on and the provenance of the computation.
type Estimate struct {
	source Source
	mean   []float64
	cov    *mat.SymDense

	// lowSample is set when the estimate was computed from fewer than p+1
	// draws; the value is still usable for diagnostics but is not a
	// well-defined covariance estimate.
	lowSample bool
}

// newEstimate takes ownership of mean and cov.
func newEstimate(source Source, mean []float64, cov *mat.SymDense) *Estimate {
	return &Estimate{source: source, mean: mean, cov: cov}
}

// Source returns the provenance tag.
func (e *Estimate) Source() Source {
	return e.source
}

// Dim returns the parameter count p.
func (e *Estimate) Dim() int {
	return e.cov.SymmetricDim()
}

// At returns the (i, j) covariance entry.
func (e *Estimate) At(i, j int) float64 {
	return e.cov.At(i, j)
}

// Mean returns a copy of the parameter mean (the best-fit point for Fisher
// estimates, the posterior mean for sampling estimates).
func (e *Estimate) Mean() []float64 {
	out := make([]float64, len(e.mean))
	copy(out, e.mean)

	return out
}

// Sym returns a copy of the covariance matrix.
func (e *Estimate) Sym() *mat.SymDense {
	out := mat.NewSymDense(e.cov.SymmetricDim(), nil)
	out.CopySym(e.cov)

	return out
}

// LowSampleWarning reports whether the estimate was computed from fewer than
// p+1 draws and is therefore not well-defined (singular in expectation).
func (e *Estimate) LowSampleWarning() bool {
	return e.lowSample
}

// StandardErrors returns the per-parameter standard errors, the square roots
// of the diagonal entries.
//
// Inversion of a merely positive-semi-definite information matrix can yield
// negative diagonal entries; such an entry has no valid standard error and is
// reported as ErrNegativeVariance rather than returned as NaN.
func (e *Estimate) StandardErrors() ([]float64, error) {
	p := e.Dim()
	out := make([]float64, p)
	for k := range p {
		v := e.cov.At(k, k)
		if v < 0 {
			return nil, fmt.Errorf("%w: cov[%d][%d]=%v", errs.ErrNegativeVariance, k, k, v)
		}
		out[k] = math.Sqrt(v)
	}

	return out, nil
}

// String returns a short human-readable summary.
func (e *Estimate) String() string {
	return fmt.Sprintf("Estimate{Source: %s, Dim: %d, LowSample: %t}",
		e.source, e.Dim(), e.lowSample)
}
