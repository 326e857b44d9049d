package archive

import (
	"hash/crc32"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/refmetry/uncert/endian"
	"github.com/refmetry/uncert/errs"
	"github.com/refmetry/uncert/format"
	"github.com/refmetry/uncert/sampler"
)

// refreshChecksum rewrites the header CRC to match the current payload.
func refreshChecksum(data []byte) {
	sum := crc32.Checksum(data[headerSize:], castagnoli)
	endian.GetLittleEndianEngine().PutUint32(data[24:28], sum)
}

func testDraws(n, p int) [][]float64 {
	draws := make([][]float64, n)
	for i := range n {
		row := make([]float64, p)
		for j := range p {
			row[j] = math.Sin(float64(i)*0.1) + float64(j)*1e-3
		}
		draws[i] = row
	}

	return draws
}

func requireSameDraws(t *testing.T, want, got *sampler.Result) {
	t.Helper()

	require.Equal(t, want.Len(), got.Len())
	require.Equal(t, want.Dim(), got.Dim())
	require.Equal(t, want.Weighted(), got.Weighted())

	for i := range want.Len() {
		require.Equal(t, want.Draw(i), got.Draw(i), "draw %d", i)
	}
	require.Equal(t, want.LogWeights(), got.LogWeights())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	result, err := sampler.New(testDraws(200, 3))
	require.NoError(t, err)

	compressions := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	for _, c := range compressions {
		t.Run(c.String(), func(t *testing.T) {
			data, err := Encode("chain-a", result, WithCompression(c))
			require.NoError(t, err)

			arch, err := Decode(data)
			require.NoError(t, err)
			require.Equal(t, ChainID("chain-a"), arch.ChainID)
			require.Equal(t, c, arch.Compression)
			requireSameDraws(t, result, arch.Result)
		})
	}
}

func TestEncodeDecodeWeighted(t *testing.T) {
	draws := testDraws(50, 2)
	lw := make([]float64, len(draws))
	for i := range lw {
		lw[i] = -0.01 * float64(i)
	}
	lw[len(lw)-1] = math.Inf(-1) // zero-weight draw survives the round-trip

	result, err := sampler.NewWeighted(draws, lw)
	require.NoError(t, err)

	data, err := Encode("nested-run", result)
	require.NoError(t, err)

	arch, err := Decode(data)
	require.NoError(t, err)
	require.True(t, arch.Result.Weighted())
	requireSameDraws(t, result, arch.Result)
}

func TestEncodeDecodeBigEndian(t *testing.T) {
	result, err := sampler.New(testDraws(20, 2))
	require.NoError(t, err)

	data, err := Encode("chain-be", result, WithBigEndian(), WithCompression(format.CompressionNone))
	require.NoError(t, err)
	require.NotZero(t, data[5]&flagBigEndian)

	arch, err := Decode(data)
	require.NoError(t, err)
	requireSameDraws(t, result, arch.Result)
}

func TestEncodeExactBits(t *testing.T) {
	// Denormals, negative zero and extreme exponents must survive untouched.
	draws := [][]float64{
		{math.Copysign(0, -1), 5e-324},
		{math.MaxFloat64, -math.MaxFloat64},
	}
	result, err := sampler.New(draws)
	require.NoError(t, err)

	data, err := Encode("bits", result, WithCompression(format.CompressionNone))
	require.NoError(t, err)

	arch, err := Decode(data)
	require.NoError(t, err)
	for i := range draws {
		for j := range draws[i] {
			require.Equal(t,
				math.Float64bits(draws[i][j]),
				math.Float64bits(arch.Result.At(i, j)),
				"draw %d param %d", i, j)
		}
	}
}

func TestEncodeInvalidCompression(t *testing.T) {
	result, err := sampler.New(testDraws(5, 1))
	require.NoError(t, err)

	_, err = Encode("chain", result, WithCompression(format.CompressionType(0xff)))
	require.ErrorIs(t, err, errs.ErrInvalidCompressionType)
}

func TestDecodeHeaderErrors(t *testing.T) {
	result, err := sampler.New(testDraws(10, 2))
	require.NoError(t, err)

	data, err := Encode("chain", result)
	require.NoError(t, err)

	t.Run("truncated header", func(t *testing.T) {
		_, err := Decode(data[:headerSize-1])
		require.ErrorIs(t, err, errs.ErrPayloadTruncated)
	})

	t.Run("bad magic", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[0] = 'X'
		_, err := Decode(bad)
		require.ErrorIs(t, err, errs.ErrInvalidMagic)
	})

	t.Run("unsupported version", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[4] = 99
		_, err := Decode(bad)
		require.ErrorIs(t, err, errs.ErrUnsupportedVersion)
	})

	t.Run("unknown compression", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[6] = 0xff
		_, err := Decode(bad)
		require.ErrorIs(t, err, errs.ErrInvalidCompressionType)
	})

	t.Run("corrupted payload", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[len(bad)-1] ^= 0x5a
		_, err := Decode(bad)
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})

	t.Run("truncated payload", func(t *testing.T) {
		plain, err := Encode("chain", result, WithCompression(format.CompressionNone))
		require.NoError(t, err)

		// Shorten the payload and refresh the checksum so only the length
		// check can trip.
		bad := append([]byte(nil), plain[:len(plain)-8]...)
		refreshChecksum(bad)
		_, err = Decode(bad)
		require.ErrorIs(t, err, errs.ErrPayloadTruncated)
	})
}

func TestChainIDStable(t *testing.T) {
	require.Equal(t, ChainID("run-01"), ChainID("run-01"))
	require.NotEqual(t, ChainID("run-01"), ChainID("run-02"))
}
