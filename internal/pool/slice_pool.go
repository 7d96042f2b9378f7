// Package pool provides sync.Pool backed scratch slices.
package pool

import "sync"

// float64SlicePool holds scratch buffers for energy-grid construction, where every
// selected table's energies are concatenated before sorting.
var float64SlicePool = sync.Pool{
	New: func() any { return &[]float64{} },
}

// GetFloat64Slice retrieves a float64 slice of length size from the pool.
//
// If the pooled slice has insufficient capacity a new one is allocated. The caller
// must call the returned cleanup function (typically with defer) once it no longer
// references the slice.
//
// Example:
//
//	scratch, cleanup := pool.GetFloat64Slice(n)
//	defer cleanup()
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]float64, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { float64SlicePool.Put(ptr) }
}
