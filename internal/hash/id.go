package hash

import "github.com/cespare/xxhash/v2"

// ChainID computes the xxHash64 of a chain name. Archives store the 64-bit
// hash instead of the name itself, giving fixed-size headers and O(1)
// matching of archived chains against experiment configurations.
func ChainID(name string) uint64 {
	return xxhash.Sum64String(name)
}
