package pool

import "sync"

// Scratch slices for decoded columns. The decoder fills them and the series
// constructor copies out of them, so they can go straight back to the pool.
var (
	intSlicePool = sync.Pool{
		New: func() any { return &[]int{} },
	}
	float64SlicePool = sync.Pool{
		New: func() any { return &[]float64{} },
	}
)

// GetIntSlice returns an empty int slice with capacity for at least size
// elements, plus a cleanup function that hands it back to the pool.
//
// Example:
//
//	keys, cleanup := pool.GetIntSlice(count)
//	defer cleanup()
func GetIntSlice(size int) ([]int, func()) {
	ptr, _ := intSlicePool.Get().(*[]int)
	if cap(*ptr) < size {
		*ptr = make([]int, 0, size)
	}
	slice := (*ptr)[:0]

	return slice, func() {
		*ptr = slice[:0]
		intSlicePool.Put(ptr)
	}
}

// GetFloat64Slice is GetIntSlice for float64 values.
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)
	if cap(*ptr) < size {
		*ptr = make([]float64, 0, size)
	}
	slice := (*ptr)[:0]

	return slice, func() {
		*ptr = slice[:0]
		float64SlicePool.Put(ptr)
	}
}
