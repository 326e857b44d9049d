package pool

import "sync"

// float64SlicePool holds scratch []float64 for reuse. The finite-difference
// Jacobian shifts one parameter vector per column; pooling the scratch vector
// keeps the hot loop allocation-free for repeated Fisher computations.
var float64SlicePool = sync.Pool{
	New: func() any { return &[]float64{} },
}

// GetFloat64Slice retrieves and resizes a float64 slice from the pool.
//
// The returned slice has exactly the requested length; contents are
// unspecified and must be overwritten by the caller. The caller must call
// the returned cleanup function (typically with defer) to return the slice
// to the pool.
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]float64, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { float64SlicePool.Put(ptr) }
}
