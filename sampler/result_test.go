package sampler

import (
	"errors"
	"math"
	"testing"

	"github.com/refmetry/uncert/errs"
)

func TestNewValidation(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, errs.ErrNoDraws) {
		t.Errorf("expected ErrNoDraws, got %v", err)
	}

	if _, err := New([][]float64{{1, 2}, {3}}); !errors.Is(err, errs.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}

	if _, err := New([][]float64{{1, math.NaN()}}); !errors.Is(err, errs.ErrNonFiniteValue) {
		t.Errorf("expected ErrNonFiniteValue, got %v", err)
	}
}

func TestNewWeightedValidation(t *testing.T) {
	draws := [][]float64{{1}, {2}}

	if _, err := NewWeighted(draws, []float64{0}); !errors.Is(err, errs.ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}

	if _, err := NewWeighted(draws, []float64{0, math.NaN()}); !errors.Is(err, errs.ErrInvalidWeights) {
		t.Errorf("expected ErrInvalidWeights, got %v", err)
	}

	// -Inf log-weights are legal (zero-weight draws), as long as one draw
	// carries weight.
	if _, err := NewWeighted(draws, []float64{0, math.Inf(-1)}); err != nil {
		t.Errorf("expected -Inf log-weight to be accepted, got %v", err)
	}
}

func TestAccessors(t *testing.T) {
	r, err := New([][]float64{{1, 2}, {3, 4}, {5, 6}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if r.Len() != 3 || r.Dim() != 2 {
		t.Fatalf("unexpected shape: %d x %d", r.Len(), r.Dim())
	}
	if r.Weighted() {
		t.Error("unweighted result reports Weighted")
	}
	if r.At(1, 0) != 3 || r.At(2, 1) != 6 {
		t.Error("At returned wrong values")
	}

	d := r.Draw(1)
	if d[0] != 3 || d[1] != 4 {
		t.Errorf("Draw(1) = %v", d)
	}
}

func TestWeightsUniform(t *testing.T) {
	r, err := New([][]float64{{1}, {2}, {3}, {4}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	w, err := r.Weights()
	if err != nil {
		t.Fatalf("Weights failed: %v", err)
	}
	for i, wi := range w {
		if wi != 0.25 {
			t.Errorf("w[%d] = %v, expected 0.25", i, wi)
		}
	}

	ess, err := r.EffectiveSampleSize()
	if err != nil {
		t.Fatalf("EffectiveSampleSize failed: %v", err)
	}
	if ess != 4 {
		t.Errorf("uniform ESS = %v, expected 4", ess)
	}
}

func TestWeightsNormalization(t *testing.T) {
	draws := [][]float64{{1}, {2}, {3}}
	r, err := NewWeighted(draws, []float64{math.Log(2), math.Log(4), math.Log(2)})
	if err != nil {
		t.Fatalf("NewWeighted failed: %v", err)
	}

	w, err := r.Weights()
	if err != nil {
		t.Fatalf("Weights failed: %v", err)
	}

	want := []float64{0.25, 0.5, 0.25}
	for i := range want {
		if math.Abs(w[i]-want[i]) > 1e-12 {
			t.Errorf("w[%d] = %v, expected %v", i, w[i], want[i])
		}
	}

	sum := 0.0
	for _, wi := range w {
		sum += wi
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Errorf("weights sum to %v", sum)
	}
}

func TestWeightsAllNegInf(t *testing.T) {
	r, err := NewWeighted([][]float64{{1}, {2}}, []float64{math.Inf(-1), math.Inf(-1)})
	if err != nil {
		t.Fatalf("NewWeighted failed: %v", err)
	}

	if _, err := r.Weights(); !errors.Is(err, errs.ErrInvalidWeights) {
		t.Errorf("expected ErrInvalidWeights, got %v", err)
	}
}

func TestEffectiveSampleSizeWeighted(t *testing.T) {
	// One draw holds all the weight: ESS collapses toward 1.
	r, err := NewWeighted([][]float64{{1}, {2}, {3}}, []float64{0, -50, -50})
	if err != nil {
		t.Fatalf("NewWeighted failed: %v", err)
	}

	ess, err := r.EffectiveSampleSize()
	if err != nil {
		t.Fatalf("EffectiveSampleSize failed: %v", err)
	}
	if math.Abs(ess-1) > 1e-9 {
		t.Errorf("ESS = %v, expected ~1", ess)
	}
}

func TestDiscardAndThin(t *testing.T) {
	draws := make([][]float64, 10)
	for i := range draws {
		draws[i] = []float64{float64(i)}
	}
	r, err := New(draws)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	burned, err := r.Discard(4)
	if err != nil {
		t.Fatalf("Discard failed: %v", err)
	}
	if burned.Len() != 6 || burned.At(0, 0) != 4 {
		t.Errorf("Discard(4): len=%d first=%v", burned.Len(), burned.At(0, 0))
	}

	thinned, err := r.Thin(3)
	if err != nil {
		t.Fatalf("Thin failed: %v", err)
	}
	if thinned.Len() != 4 {
		t.Fatalf("Thin(3): len=%d, expected 4", thinned.Len())
	}
	for i, want := range []float64{0, 3, 6, 9} {
		if thinned.At(i, 0) != want {
			t.Errorf("thinned[%d] = %v, expected %v", i, thinned.At(i, 0), want)
		}
	}

	if _, err := r.Discard(10); !errors.Is(err, errs.ErrNoDraws) {
		t.Errorf("expected ErrNoDraws discarding everything, got %v", err)
	}
}

func TestDiscardKeepsWeights(t *testing.T) {
	r, err := NewWeighted([][]float64{{1}, {2}, {3}}, []float64{-1, -2, -3})
	if err != nil {
		t.Fatalf("NewWeighted failed: %v", err)
	}

	burned, err := r.Discard(1)
	if err != nil {
		t.Fatalf("Discard failed: %v", err)
	}
	if !burned.Weighted() {
		t.Fatal("Discard dropped the weights")
	}

	lw := burned.LogWeights()
	if len(lw) != 2 || lw[0] != -2 || lw[1] != -3 {
		t.Errorf("LogWeights = %v", lw)
	}
}
