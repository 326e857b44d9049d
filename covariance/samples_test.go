package covariance

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/refmetry/uncert/sampler"
)

func TestFromSamplesBesselCorrection(t *testing.T) {
	// Two draws: mean (1, 1), unbiased covariance [[2, 2], [2, 2]].
	result, err := sampler.New([][]float64{{0, 0}, {2, 2}})
	require.NoError(t, err)

	est, err := FromSamples(result)
	require.NoError(t, err)

	require.Equal(t, SourceMCMC, est.Source())
	require.Equal(t, []float64{1, 1}, est.Mean())
	require.InEpsilon(t, 2.0, est.At(0, 0), 1e-12)
	require.InEpsilon(t, 2.0, est.At(0, 1), 1e-12)
	require.InEpsilon(t, 2.0, est.At(1, 1), 1e-12)

	// Two draws for two parameters is below the p+1 threshold.
	require.True(t, est.LowSampleWarning())
}

func TestFromSamplesConvergence(t *testing.T) {
	// 10k draws from N(0, diag(1, 4)) must recover the covariance within 5%
	// in Frobenius norm.
	src := rand.NewPCG(42, 1)
	d1 := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	d2 := distuv.Normal{Mu: 0, Sigma: 2, Src: src}

	const n = 10000
	draws := make([][]float64, n)
	for i := range n {
		draws[i] = []float64{d1.Rand(), d2.Rand()}
	}

	result, err := sampler.New(draws)
	require.NoError(t, err)

	est, err := FromSamples(result)
	require.NoError(t, err)
	require.False(t, est.LowSampleWarning())

	truth := [2][2]float64{{1, 0}, {0, 4}}
	var num, den float64
	for i := range 2 {
		for j := range 2 {
			d := est.At(i, j) - truth[i][j]
			num += d * d
			den += truth[i][j] * truth[i][j]
		}
	}
	require.Less(t, math.Sqrt(num)/math.Sqrt(den), 0.05)
}

func TestFromSamplesWeightedHandExample(t *testing.T) {
	// Three draws with weights [0.5, 0.3, 0.2]:
	//   mean = (1.9, 3.8)
	//   cov  = [[1.29, 2.58], [2.58, 5.16]]
	// computed by hand from the weighted second central moment.
	draws := [][]float64{{1, 2}, {2, 4}, {4, 8}}
	logW := []float64{math.Log(0.5), math.Log(0.3), math.Log(0.2)}

	result, err := sampler.NewWeighted(draws, logW)
	require.NoError(t, err)

	est, err := FromSamples(result)
	require.NoError(t, err)
	require.Equal(t, SourceNested, est.Source())

	mean := est.Mean()
	require.InEpsilon(t, 1.9, mean[0], 1e-12)
	require.InEpsilon(t, 3.8, mean[1], 1e-12)

	require.InEpsilon(t, 1.29, est.At(0, 0), 1e-12)
	require.InEpsilon(t, 2.58, est.At(0, 1), 1e-12)
	require.InEpsilon(t, 5.16, est.At(1, 1), 1e-12)
}

func TestFromSamplesWeightOffsetInvariance(t *testing.T) {
	// Shifting all log-weights by a constant (e.g. the log-evidence) must not
	// change the estimate.
	draws := [][]float64{{1, 2}, {2, 4}, {4, 8}}
	base := []float64{math.Log(0.5), math.Log(0.3), math.Log(0.2)}
	shifted := make([]float64, len(base))
	for i, lw := range base {
		shifted[i] = lw + 123.456
	}

	a, err := sampler.NewWeighted(draws, base)
	require.NoError(t, err)
	b, err := sampler.NewWeighted(draws, shifted)
	require.NoError(t, err)

	estA, err := FromSamples(a)
	require.NoError(t, err)
	estB, err := FromSamples(b)
	require.NoError(t, err)

	for i := range 2 {
		for j := range 2 {
			require.InDelta(t, estA.At(i, j), estB.At(i, j), 1e-12)
		}
	}
}

func TestFromSamplesSourceOverride(t *testing.T) {
	result, err := sampler.New([][]float64{{0}, {1}, {2}})
	require.NoError(t, err)

	est, err := FromSamples(result, WithSource(SourceNested))
	require.NoError(t, err)
	require.Equal(t, SourceNested, est.Source())
}

func TestEstimateString(t *testing.T) {
	result, err := sampler.New([][]float64{{0}, {1}, {2}})
	require.NoError(t, err)

	est, err := FromSamples(result)
	require.NoError(t, err)
	require.Contains(t, est.String(), "MCMC")
}
