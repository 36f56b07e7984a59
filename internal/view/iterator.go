package view

import "unsafe"

// Iterator is a random-access cursor over the elements of a rank-1 view
// or a raw slice. Iterators are small values; advancing returns a new
// iterator and never touches the elements.
//
// Element k positions after the cursor lives at
// data[offset + (pos+k)*stride].
type Iterator[T Scalar] struct {
	data   []T
	offset int
	stride int
	pos    int
}

// ConstIterator is a read-only Iterator. It is what Cbegin and Cend
// return, and it cannot be passed where a destination is expected.
type ConstIterator[T Scalar] struct {
	it Iterator[T]
}

// Input is satisfied by both iterator kinds and is the constraint for
// source ranges.
type Input[T Scalar] interface {
	Iterator[T] | ConstIterator[T]
	iter() Iterator[T]
}

// AsIterator returns the underlying cursor of an input iterator.
func AsIterator[T Scalar, I Input[T]](it I) Iterator[T] {
	return it.iter()
}

// SliceBegin returns an iterator to the first element of s.
func SliceBegin[T Scalar](s []T) Iterator[T] {
	return Iterator[T]{data: s, stride: 1}
}

// SliceEnd returns an iterator one past the last element of s.
func SliceEnd[T Scalar](s []T) Iterator[T] {
	return Iterator[T]{data: s, stride: 1, pos: len(s)}
}

func (it Iterator[T]) iter() Iterator[T] { return it }

func (it Iterator[T]) index(k int) int {
	return it.offset + (it.pos+k)*it.stride
}

// Add returns the iterator advanced by n positions.
func (it Iterator[T]) Add(n int) Iterator[T] {
	it.pos += n
	return it
}

// Sub returns the iterator moved back by n positions.
func (it Iterator[T]) Sub(n int) Iterator[T] {
	it.pos -= n
	return it
}

// Distance returns the number of positions from it to other
// (other - it). Both must come from the same view.
func (it Iterator[T]) Distance(other Iterator[T]) int {
	return other.pos - it.pos
}

// Pos returns the logical position of the cursor within its view.
func (it Iterator[T]) Pos() int {
	return it.pos
}

// Stride returns the storage distance between consecutive elements.
func (it Iterator[T]) Stride() int {
	return it.stride
}

// Get returns the element at the cursor.
func (it Iterator[T]) Get() T {
	return it.data[it.index(0)]
}

// At returns the element k positions after the cursor.
func (it Iterator[T]) At(k int) T {
	return it.data[it.index(k)]
}

// Set stores v at the cursor.
func (it Iterator[T]) Set(v T) {
	it.data[it.index(0)] = v
}

// SetAt stores v k positions after the cursor.
func (it Iterator[T]) SetAt(k int, v T) {
	it.data[it.index(k)] = v
}

// Equal reports whether both iterators address the same position of the
// same storage.
func (it Iterator[T]) Equal(other Iterator[T]) bool {
	return it.pos == other.pos && it.offset == other.offset &&
		it.stride == other.stride && unsafe.SliceData(it.data) == unsafe.SliceData(other.data)
}

// IsContiguous reports whether consecutive positions are adjacent in memory.
func (it Iterator[T]) IsContiguous() bool {
	return it.stride == 1
}

// Const returns a read-only copy of the iterator.
func (it Iterator[T]) Const() ConstIterator[T] {
	return ConstIterator[T]{it: it}
}

func (c ConstIterator[T]) iter() Iterator[T] { return c.it }

// Add returns the iterator advanced by n positions.
func (c ConstIterator[T]) Add(n int) ConstIterator[T] {
	return ConstIterator[T]{it: c.it.Add(n)}
}

// Sub returns the iterator moved back by n positions.
func (c ConstIterator[T]) Sub(n int) ConstIterator[T] {
	return ConstIterator[T]{it: c.it.Sub(n)}
}

// Distance returns other - c.
func (c ConstIterator[T]) Distance(other ConstIterator[T]) int {
	return c.it.Distance(other.it)
}

// Pos returns the logical position of the cursor within its view.
func (c ConstIterator[T]) Pos() int {
	return c.it.pos
}

// Get returns the element at the cursor.
func (c ConstIterator[T]) Get() T {
	return c.it.Get()
}

// At returns the element k positions after the cursor.
func (c ConstIterator[T]) At(k int) T {
	return c.it.At(k)
}

// Equal reports whether both iterators address the same element.
func (c ConstIterator[T]) Equal(other ConstIterator[T]) bool {
	return c.it.Equal(other.it)
}

// addrSpan returns the half-open byte address range touched by the n
// elements starting at the cursor.
func (it Iterator[T]) addrSpan(n int) (lo, hi uintptr) {
	if n <= 0 || len(it.data) == 0 {
		return 0, 0
	}
	size := unsafe.Sizeof(*new(T))
	base := uintptr(unsafe.Pointer(unsafe.SliceData(it.data)))
	first := it.index(0)
	last := it.index(n - 1)
	if last < first {
		first, last = last, first
	}
	//nolint:gosec // G115: indices are non-negative for valid ranges
	return base + uintptr(first)*size, base + uintptr(last+1)*size
}

// MayAlias reports whether the n elements starting at a and the n
// elements starting at b can share memory. Interleaved strided ranges are
// reported as aliasing even when no element is shared.
func MayAlias[T Scalar](a, b Iterator[T], n int) bool {
	alo, ahi := a.addrSpan(n)
	blo, bhi := b.addrSpan(n)
	if alo == ahi || blo == bhi {
		return false
	}
	return alo < bhi && blo < ahi
}

// Bytes reinterprets the n contiguous elements starting at it as raw
// bytes. It panics if the iterator is not contiguous.
func Bytes[T Scalar](it Iterator[T], n int) []byte {
	if !it.IsContiguous() {
		panic("view: Bytes requires a contiguous iterator")
	}
	if n == 0 {
		return nil
	}
	size := int(unsafe.Sizeof(*new(T)))
	start := &it.data[it.index(0)]
	//nolint:gosec // unsafe.Slice for zero-copy access, bounded by n elements
	return unsafe.Slice((*byte)(unsafe.Pointer(start)), n*size)
}

// FromBytes reinterprets b as n elements of T. b must be aligned for T and
// hold at least n elements.
func FromBytes[T Scalar](b []byte, n int) []T {
	if n == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy scratch reuse, bounded by n
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
}
