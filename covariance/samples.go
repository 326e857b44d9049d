package covariance

import (
	"gonum.org/v1/gonum/mat"

	"github.com/refmetry/uncert/internal/options"
	"github.com/refmetry/uncert/sampler"
)

// FromSamples computes the empirical covariance of a posterior draw
// collection.
//
// Unweighted draws (MCMC) use the ordinary sample covariance with Bessel's
// N−1 correction, the unbiased estimator of the true covariance. Weighted
// draws (nested sampling) use the plain weighted second central moment with
// weights normalized to sum to 1 — the standard convention for
// nested-sampling posteriors, where the weights already define the measure.
//
// The provenance tag is inferred from the input (SourceNested when weighted,
// SourceMCMC otherwise) unless overridden with WithSource.
//
// Fewer than p+1 draws cannot produce a well-defined covariance; the estimate
// is still returned for diagnostic use, flagged via LowSampleWarning, rather
// than failing hard.
func FromSamples(result *sampler.Result, opts ...Option) (*Estimate, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	weights, err := result.Weights()
	if err != nil {
		return nil, err
	}

	n := result.Len()
	p := result.Dim()

	// Weighted mean. For unweighted draws the weights are uniform, so this
	// is also the plain mean.
	mean := make([]float64, p)
	for i := range n {
		d := result.Draw(i)
		for j := range p {
			mean[j] += weights[i] * d[j]
		}
	}

	cov := mat.NewSymDense(p, nil)
	diff := make([]float64, p)
	for i := range n {
		d := result.Draw(i)
		for j := range p {
			diff[j] = d[j] - mean[j]
		}
		for j := range p {
			for k := j; k < p; k++ {
				cov.SetSym(j, k, cov.At(j, k)+weights[i]*diff[j]*diff[k])
			}
		}
	}

	if !result.Weighted() && n > 1 {
		// Uniform weights contribute 1/n per draw; rescale to the N−1
		// denominator for the unbiased estimator.
		bessel := float64(n) / float64(n-1)
		for j := range p {
			for k := j; k < p; k++ {
				cov.SetSym(j, k, cov.At(j, k)*bessel)
			}
		}
	}

	source := SourceMCMC
	if result.Weighted() {
		source = SourceNested
	}
	if cfg.sourceSet {
		source = cfg.source
	}

	est := newEstimate(source, mean, cov)
	est.lowSample = n < p+1

	return est, nil
}
