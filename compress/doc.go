// Package compress provides the payload codecs of the draw-archive format.
//
// Posterior draw sets are large (a 10k-draw chain with a handful of
// parameters occupies hundreds of kilobytes of raw float64 columns) but
// strongly structured: neighbouring draws of a converged chain differ little,
// so general-purpose compressors shrink them well. Four codecs are offered:
//
//   - None: pass-through, for testing and already-compressed storage
//   - Zstd: best ratio, for archival of finished runs
//   - S2: fastest, for scratch storage between pipeline stages
//   - LZ4: balanced speed and ratio
//
// All codecs are stateless values safe for concurrent use; internal encoder
// and decoder instances are pooled.
package compress
