// Package sim generates synthetic measurement datasets for uncertainty
// experiments.
//
// It reproduces the standard time-of-flight reflectometry noise model: the
// counting uncertainty of each point follows from the incident beam flux at
// its momentum transfer value, so points measured with more neutrons carry
// smaller error bars. A direct-beam flux profile is interpolated onto a
// log-spaced q grid, a background is added, and each observation is drawn
// from a Gaussian around the true model curve with
//
//	σᵢ = 1 / (k · sqrt(fluxᵢ · rᵢ))
//
// where k is the noise constant scaling the total counting time. Sweeping k
// is how the variance-versus-time experiments vary measurement quality.
package sim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/refmetry/uncert/errs"
	"github.com/refmetry/uncert/model"
)

// Beam is a direct-beam flux profile: flux density sampled at increasing q.
type Beam struct {
	Q    []float64
	Flux []float64
}

// Outcome bundles a generated dataset with the quantities the uncertainty
// experiments need alongside it.
type Outcome struct {
	// Dataset is the noisy synthetic measurement.
	Dataset *model.Dataset
	// Truth is the noiseless model curve on the same q grid.
	Truth []float64
	// Flux is the interpolated incident flux density per point; it is the
	// weight that enters the Fisher information of a counting experiment.
	Flux []float64
}

// Generate simulates one measurement of the given model at params.
//
// The q grid is log-spaced over the configured range (see Option). The beam
// profile must cover a strictly increasing q range; outside it the flux is
// clamped to the nearest endpoint.
func Generate(m model.Model, params []float64, beam Beam, opts ...Option) (*Outcome, error) {
	cfg := defaultGenConfig()
	if err := applyOptions(cfg, opts); err != nil {
		return nil, err
	}

	if err := model.ValidateParams(m, params); err != nil {
		return nil, err
	}
	if len(beam.Q) != len(beam.Flux) {
		return nil, fmt.Errorf("%w: beam q=%d flux=%d", errs.ErrLengthMismatch, len(beam.Q), len(beam.Flux))
	}
	if len(beam.Q) < 2 {
		return nil, fmt.Errorf("%w: beam profile needs at least 2 points", errs.ErrLengthMismatch)
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(beam.Q, beam.Flux); err != nil {
		return nil, fmt.Errorf("beam profile interpolation: %w", err)
	}

	q := make([]float64, cfg.points)
	floats.LogSpan(q, cfg.qMin, cfg.qMax)

	truth, err := m.Eval(params, q)
	if err != nil {
		return nil, fmt.Errorf("model evaluation failed: %w", err)
	}
	if len(truth) != cfg.points {
		return nil, fmt.Errorf("%w: model returned %d predictions for %d design points",
			errs.ErrDimensionMismatch, len(truth), cfg.points)
	}

	bkgDist := distuv.Normal{Mu: 1, Sigma: 0.5, Src: cfg.src}

	flux := make([]float64, cfg.points)
	noisy := make([]float64, cfg.points)
	sigma := make([]float64, cfg.points)
	for i, qi := range q {
		flux[i] = pl.Predict(clamp(qi, beam.Q[0], beam.Q[len(beam.Q)-1])) * cfg.noiseConstant

		// Background counts only ever add to the signal.
		r := truth[i] + math.Max(bkgDist.Rand()*cfg.bkgRate, 0)

		counts := r * flux[i]
		if !(counts > 0) {
			return nil, fmt.Errorf("%w: non-positive expected counts %v at q=%v",
				errs.ErrInvalidSigma, counts, qi)
		}

		sigma[i] = 1 / (cfg.noiseConstant * math.Sqrt(counts))
		noisy[i] = distuv.Normal{Mu: r, Sigma: sigma[i], Src: cfg.src}.Rand()
	}

	ds, err := model.NewDataset(q, noisy, sigma)
	if err != nil {
		return nil, err
	}

	return &Outcome{Dataset: ds, Truth: truth, Flux: flux}, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}
