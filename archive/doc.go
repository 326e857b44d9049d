// Package archive persists posterior draw sets in a compact binary format.
//
// Uncertainty experiments sweep a condition (contrast, counting time, noise
// constant) and re-run sampling at every step, producing many chains of 10⁴+
// draws each. Keeping the raw chains allows recomputing covariances and
// comparison reports without re-sampling, so the archive format is built for
// exact round-trips: parameter columns are stored as raw float64 bits,
// columnar for compressibility, behind a fixed self-describing header.
//
// Layout (all multi-byte fields in the archive's byte order):
//
//	[0:4)   magic "UDA1"
//	[4]     format version
//	[5]     flags (bit0: big-endian, bit1: log-weights present)
//	[6]     compression type
//	[7]     reserved
//	[8:16)  chain ID (xxHash64 of the chain name)
//	[16:20) draw count
//	[20:24) parameter count
//	[24:28) CRC32-C checksum of the compressed payload
//	[28:)   payload: p parameter columns of n float64, then an optional
//	        log-weight column, compressed as one block
//
// The header is validated field by field on decode; corrupted or truncated
// archives fail with a specific sentinel error rather than producing draws.
package archive
