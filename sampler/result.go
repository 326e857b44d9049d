// Package sampler defines the value type carrying finished posterior draws.
//
// MCMC chains and nested-sampling runs are external, potentially long-running
// stochastic processes; this package does not run them, manage their
// scheduling, or diagnose their convergence. It only consumes their finished
// output: a collection of parameter draws, optionally with per-draw
// log-weights (nested sampling produces weighted draws, MCMC uniform ones).
package sampler

import (
	"fmt"
	"math"

	"github.com/refmetry/uncert/errs"
)

// Result is an immutable collection of posterior parameter draws.
//
// Draws are stored row-major: draw i occupies entries [i*p, (i+1)*p).
// A Result either carries no weights (uniform MCMC draws) or one log-weight
// per draw (nested sampling).
type Result struct {
	draws      []float64
	logWeights []float64
	n, p       int
}

// New creates a Result from unweighted draws. Every draw must have the same
// length; the draws are copied.
func New(draws [][]float64) (*Result, error) {
	return build(draws, nil)
}

// NewWeighted creates a Result from draws with per-draw log-weights, as
// produced by nested sampling. Log-weights need not be normalized; they are
// shifted by their maximum before exponentiation, so any common offset (such
// as the log-evidence) cancels.
func NewWeighted(draws [][]float64, logWeights []float64) (*Result, error) {
	if len(logWeights) != len(draws) {
		return nil, fmt.Errorf("%w: %d draws, %d log-weights",
			errs.ErrLengthMismatch, len(draws), len(logWeights))
	}
	for i, lw := range logWeights {
		if math.IsNaN(lw) || math.IsInf(lw, 1) {
			return nil, fmt.Errorf("%w: log-weight[%d]=%v", errs.ErrInvalidWeights, i, lw)
		}
	}

	lw := make([]float64, len(logWeights))
	copy(lw, logWeights)

	return build(draws, lw)
}

func build(draws [][]float64, logWeights []float64) (*Result, error) {
	if len(draws) == 0 {
		return nil, errs.ErrNoDraws
	}

	p := len(draws[0])
	if p == 0 {
		return nil, fmt.Errorf("%w: zero-dimensional draws", errs.ErrDimensionMismatch)
	}

	flat := make([]float64, 0, len(draws)*p)
	for i, d := range draws {
		if len(d) != p {
			return nil, fmt.Errorf("%w: draw %d has %d parameters, expected %d",
				errs.ErrDimensionMismatch, i, len(d), p)
		}
		for j, v := range d {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: draw[%d][%d]=%v", errs.ErrNonFiniteValue, i, j, v)
			}
		}
		flat = append(flat, d...)
	}

	return &Result{draws: flat, logWeights: logWeights, n: len(draws), p: p}, nil
}

// Len returns the number of draws.
func (r *Result) Len() int {
	return r.n
}

// Dim returns the parameter count per draw.
func (r *Result) Dim() int {
	return r.p
}

// Weighted reports whether the draws carry nested-sampling log-weights.
func (r *Result) Weighted() bool {
	return r.logWeights != nil
}

// At returns parameter j of draw i.
func (r *Result) At(i, j int) float64 {
	return r.draws[i*r.p+j]
}

// Draw returns a view of draw i. The returned slice aliases the Result's
// storage and must not be modified.
func (r *Result) Draw(i int) []float64 {
	return r.draws[i*r.p : (i+1)*r.p]
}

// LogWeights returns a copy of the raw log-weights, or nil for unweighted draws.
func (r *Result) LogWeights() []float64 {
	if r.logWeights == nil {
		return nil
	}

	out := make([]float64, len(r.logWeights))
	copy(out, r.logWeights)

	return out
}

// Weights returns linear weights normalized to sum to 1.
//
// Unweighted draws get uniform weights 1/n. Weighted draws are exponentiated
// relative to the maximum log-weight for numerical stability, then
// normalized. An all-zero weight vector (every log-weight -Inf) is reported
// as ErrInvalidWeights.
func (r *Result) Weights() ([]float64, error) {
	out := make([]float64, r.n)
	if r.logWeights == nil {
		u := 1 / float64(r.n)
		for i := range out {
			out[i] = u
		}

		return out, nil
	}

	maxLW := math.Inf(-1)
	for _, lw := range r.logWeights {
		if lw > maxLW {
			maxLW = lw
		}
	}
	if math.IsInf(maxLW, -1) {
		return nil, fmt.Errorf("%w: all log-weights are -Inf", errs.ErrInvalidWeights)
	}

	sum := 0.0
	for i, lw := range r.logWeights {
		out[i] = math.Exp(lw - maxLW)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}

	return out, nil
}

// EffectiveSampleSize returns the Kish effective sample size
// (Σw)² / Σw² of the normalized weights. For unweighted draws this equals
// the draw count.
func (r *Result) EffectiveSampleSize() (float64, error) {
	if r.logWeights == nil {
		return float64(r.n), nil
	}

	w, err := r.Weights()
	if err != nil {
		return 0, err
	}

	sumSq := 0.0
	for _, wi := range w {
		sumSq += wi * wi
	}

	return 1 / sumSq, nil
}

// Discard returns a new Result without the first burn draws.
// Useful for dropping the warm-up portion of an MCMC chain.
func (r *Result) Discard(burn int) (*Result, error) {
	if burn < 0 {
		burn = 0
	}
	if burn >= r.n {
		return nil, fmt.Errorf("%w: discarding %d of %d draws", errs.ErrNoDraws, burn, r.n)
	}

	return r.subset(burn, 1)
}

// Thin returns a new Result keeping every stride-th draw, reducing
// autocorrelation in MCMC chains. A stride below 1 is treated as 1.
func (r *Result) Thin(stride int) (*Result, error) {
	if stride < 1 {
		stride = 1
	}

	return r.subset(0, stride)
}

func (r *Result) subset(start, stride int) (*Result, error) {
	var draws []float64
	var lw []float64
	n := 0

	for i := start; i < r.n; i += stride {
		draws = append(draws, r.Draw(i)...)
		if r.logWeights != nil {
			lw = append(lw, r.logWeights[i])
		}
		n++
	}

	return &Result{draws: draws, logWeights: lw, n: n, p: r.p}, nil
}
