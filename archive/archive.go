package archive

import (
	"bytes"
	"fmt"
	"hash/crc32"
	"math"

	"github.com/refmetry/uncert/compress"
	"github.com/refmetry/uncert/endian"
	"github.com/refmetry/uncert/errs"
	"github.com/refmetry/uncert/format"
	"github.com/refmetry/uncert/internal/hash"
	"github.com/refmetry/uncert/internal/options"
	"github.com/refmetry/uncert/internal/pool"
	"github.com/refmetry/uncert/sampler"
)

const (
	formatVersion = 1
	headerSize    = 28

	flagBigEndian  = 0x01
	flagLogWeights = 0x02
)

var magic = []byte("UDA1")

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// ChainID returns the xxHash64 identifier stored for a chain name.
func ChainID(name string) uint64 {
	return hash.ChainID(name)
}

// Archive is a decoded draw archive.
type Archive struct {
	// ChainID is the xxHash64 of the chain name the archive was encoded under.
	ChainID uint64
	// Compression is the payload compression the archive was stored with.
	Compression format.CompressionType
	// Result holds the recovered draws, weighted when the archive carried
	// a log-weight column.
	Result *sampler.Result
}

// Encode serializes a draw collection under the given chain name.
//
// The round-trip is exact: parameter values and log-weights are stored as
// raw float64 bits, no lossy transform. The chain name itself is not stored,
// only its xxHash64; callers match archives to experiments by recomputing
// ChainID from their configuration.
func Encode(chainName string, result *sampler.Result, opts ...Option) ([]byte, error) {
	cfg := defaultEncodeConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	n := result.Len()
	p := result.Dim()

	// Columnar payload: parameter columns first, then the optional
	// log-weight column. Column-major draws compress markedly better than
	// row-major because successive draws of one parameter are close.
	buf := pool.GetArchiveBuffer()
	defer pool.PutArchiveBuffer(buf)

	payload := buf.Bytes()
	for j := range p {
		for i := range n {
			payload = cfg.engine.AppendUint64(payload, math.Float64bits(result.At(i, j)))
		}
	}

	flags := uint8(0)
	if cfg.bigEndian {
		flags |= flagBigEndian
	}
	if result.Weighted() {
		flags |= flagLogWeights
		for _, lw := range result.LogWeights() {
			payload = cfg.engine.AppendUint64(payload, math.Float64bits(lw))
		}
	}
	buf.B = payload

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}
	compressed, err := codec.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to compress payload: %w", err)
	}

	out := make([]byte, 0, headerSize+len(compressed))
	out = append(out, magic...)
	out = append(out, formatVersion, flags, uint8(cfg.compression), 0)
	out = cfg.engine.AppendUint64(out, hash.ChainID(chainName))
	out = cfg.engine.AppendUint32(out, uint32(n))
	out = cfg.engine.AppendUint32(out, uint32(p))
	out = cfg.engine.AppendUint32(out, crc32.Checksum(compressed, castagnoli))
	out = append(out, compressed...)

	return out, nil
}

// Decode parses an archive produced by Encode.
//
// Every header field is validated before the payload is touched: bad magic,
// unknown version, unknown compression, checksum mismatch, and truncated
// payloads each fail with their own sentinel error.
func Decode(data []byte) (*Archive, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", errs.ErrPayloadTruncated, len(data), headerSize)
	}
	if !bytes.Equal(data[:4], magic) {
		return nil, fmt.Errorf("%w: % x", errs.ErrInvalidMagic, data[:4])
	}
	if data[4] != formatVersion {
		return nil, fmt.Errorf("%w: version %d", errs.ErrUnsupportedVersion, data[4])
	}

	flags := data[5]
	engine := endian.GetLittleEndianEngine()
	if flags&flagBigEndian != 0 {
		engine = endian.GetBigEndianEngine()
	}

	compression := format.CompressionType(data[6])
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	chainID := engine.Uint64(data[8:16])
	n := int(engine.Uint32(data[16:20]))
	p := int(engine.Uint32(data[20:24]))
	checksum := engine.Uint32(data[24:28])

	compressed := data[headerSize:]
	if crc32.Checksum(compressed, castagnoli) != checksum {
		return nil, errs.ErrChecksumMismatch
	}

	payload, err := codec.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress payload: %w", err)
	}

	weighted := flags&flagLogWeights != 0
	cols := p
	if weighted {
		cols++
	}
	if len(payload) != cols*n*8 {
		return nil, fmt.Errorf("%w: payload %d bytes, expected %d",
			errs.ErrPayloadTruncated, len(payload), cols*n*8)
	}

	column := func(c, i int) float64 {
		off := (c*n + i) * 8
		return math.Float64frombits(engine.Uint64(payload[off : off+8]))
	}

	draws := make([][]float64, n)
	for i := range n {
		row := make([]float64, p)
		for j := range p {
			row[j] = column(j, i)
		}
		draws[i] = row
	}

	var result *sampler.Result
	if weighted {
		lw := make([]float64, n)
		for i := range n {
			lw[i] = column(p, i)
		}
		result, err = sampler.NewWeighted(draws, lw)
	} else {
		result, err = sampler.New(draws)
	}
	if err != nil {
		return nil, err
	}

	return &Archive{ChainID: chainID, Compression: compression, Result: result}, nil
}
