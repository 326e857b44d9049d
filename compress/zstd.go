package compress

// ZstdCompressor provides Zstandard compression, the archival choice for
// finished sampling runs: best ratio of the built-in codecs at moderate
// speed.
//
// Two implementations exist behind build tags: the default pure-Go
// klauspost/compress encoder, and a cgo gozstd variant (build tag cgo_zstd)
// for deployments that already link libzstd and want its throughput.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
