// Package uncert estimates and cross-validates parameter uncertainty for
// weighted least-squares model fitting, the workhorse analysis of
// reflectometry experiments.
//
// Two independent routes produce a parameter covariance:
//
//   - The Fisher information matrix, assembled analytically from the model's
//     finite-difference Jacobian and the measurement error bars, then
//     inverted. Cheap, deterministic, valid near a local optimum.
//   - The empirical covariance of posterior draws from an external sampler
//     (MCMC or nested sampling). Expensive but free of the linearization
//     assumption.
//
// Comparing the two tells an experimenter whether the cheap Fisher
// approximation can replace sampling for their design, and under which
// conditions (contrast, counting time) it breaks down.
//
// # Basic Usage
//
// Computing a Fisher covariance and comparing it against an MCMC result:
//
//	import "github.com/refmetry/uncert"
//
//	fimCov, err := uncert.FisherCovariance(m, dataset, bestFit)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	draws, _ := sampler.New(chain)          // draws from an external sampler
//	mcmcCov, err := uncert.SampleCovariance(draws)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := uncert.Compare(fimCov, mcmcCov)
//	for k, ratio := range report.StdErrRatios {
//	    fmt.Printf("parameter %d: Fisher/MCMC stderr ratio %.3f\n", k, ratio)
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the estimator
// packages, covering the common path. For fine-grained control (step sizes,
// condition thresholds, provenance overrides) use the fisher, covariance,
// compare, sim, and archive packages directly.
package uncert

import (
	"github.com/refmetry/uncert/archive"
	"github.com/refmetry/uncert/compare"
	"github.com/refmetry/uncert/covariance"
	"github.com/refmetry/uncert/fisher"
	"github.com/refmetry/uncert/model"
	"github.com/refmetry/uncert/sampler"
)

// ComputeFisher assembles the Fisher information matrix of the model at the
// given parameter point with the default step policy.
func ComputeFisher(m model.Model, ds *model.Dataset, point []float64) (*fisher.Matrix, error) {
	return fisher.Compute(m, ds, point)
}

// FisherCovariance computes the Fisher information matrix and inverts it
// into a covariance estimate, with default steps and condition threshold.
func FisherCovariance(m model.Model, ds *model.Dataset, point []float64) (*covariance.Estimate, error) {
	fim, err := fisher.Compute(m, ds, point)
	if err != nil {
		return nil, err
	}

	return covariance.FromFisher(fim)
}

// SampleCovariance computes the empirical covariance of a posterior draw
// collection, weighted when the draws carry nested-sampling log-weights.
func SampleCovariance(result *sampler.Result) (*covariance.Estimate, error) {
	return covariance.FromSamples(result)
}

// Compare builds the agreement report between two covariance estimates.
func Compare(a, b *covariance.Estimate) (*compare.Report, error) {
	return compare.Covariances(a, b)
}

// ChainID returns the xxHash64 identifier a draw archive stores for a chain
// name.
func ChainID(name string) uint64 {
	return archive.ChainID(name)
}
