package view

import (
	"errors"
	"fmt"
	"unsafe"
)

// ErrNotAdmissible is returned by CheckAdmissible for views whose
// structure cannot be traversed by the algorithms.
var ErrNotAdmissible = errors.New("view: not admissible")

// View is a non-owning rank-1 reference to elements stored in a slice.
// Copying a View copies the reference, never the elements.
type View[T Scalar] struct {
	label  string
	data   []T
	offset int
	extent int
	stride int
	layout Layout
}

// ConstView is a read-only rank-1 view.
type ConstView[T Scalar] struct {
	v View[T]
}

// Source is implemented by the rank-1 views that can be read by an
// algorithm. It is sealed: only View and ConstView satisfy it, so a
// rank-2 Matrix or any other container is rejected at build time.
type Source[T Scalar] interface {
	Cbegin() ConstIterator[T]
	Cend() ConstIterator[T]
	Label() string
	rank1() View[T]
}

// New allocates a zeroed, contiguous view of n elements.
func New[T Scalar](label string, n int) View[T] {
	if n < 0 {
		panic(fmt.Sprintf("view: negative extent %d", n))
	}
	return View[T]{label: label, data: make([]T, n), extent: n, stride: 1, layout: LayoutRight}
}

// Wrap returns a contiguous view over data without copying it.
func Wrap[T Scalar](label string, data []T) View[T] {
	return View[T]{label: label, data: data, extent: len(data), stride: 1, layout: LayoutRight}
}

// Strided returns a LayoutStride view of extent elements of data starting
// at offset and spaced stride apart.
func Strided[T Scalar](label string, data []T, offset, extent, stride int) (View[T], error) {
	v := View[T]{label: label, data: data, offset: offset, extent: extent, stride: stride, layout: LayoutStride}
	if err := v.validate(); err != nil {
		return View[T]{}, err
	}
	return v, nil
}

// Subview returns the view of elements [lo, hi) of v. It panics if the
// bounds are out of range, like slicing.
func Subview[T Scalar](v View[T], lo, hi int) View[T] {
	if lo < 0 || hi < lo || hi > v.extent {
		panic(fmt.Sprintf("view: subview [%d:%d] out of range for extent %d", lo, hi, v.extent))
	}
	v.offset += lo * v.stride
	v.extent = hi - lo
	return v
}

func (v View[T]) validate() error {
	switch {
	case v.stride <= 0:
		return fmt.Errorf("%w: stride %d of %q must be positive", ErrNotAdmissible, v.stride, v.label)
	case v.extent < 0:
		return fmt.Errorf("%w: extent %d of %q is negative", ErrNotAdmissible, v.extent, v.label)
	case v.offset < 0:
		return fmt.Errorf("%w: offset %d of %q is negative", ErrNotAdmissible, v.offset, v.label)
	case v.extent > 0 && v.offset+(v.extent-1)*v.stride >= len(v.data):
		return fmt.Errorf("%w: %q addresses %d elements past storage of %d",
			ErrNotAdmissible, v.label, v.offset+(v.extent-1)*v.stride+1, len(v.data))
	case (v.layout == LayoutRight || v.layout == LayoutLeft) && v.stride != 1:
		return fmt.Errorf("%w: %s view %q has stride %d", ErrNotAdmissible, v.layout, v.label, v.stride)
	}
	return nil
}

func (v View[T]) rank1() View[T] { return v }

// Label returns the view label.
func (v View[T]) Label() string { return v.label }

// Rank returns the number of dimensions, always 1.
func (v View[T]) Rank() int { return 1 }

// Extent returns the number of elements.
func (v View[T]) Extent() int { return v.extent }

// Stride returns the storage distance between consecutive elements.
func (v View[T]) Stride() int { return v.stride }

// Layout returns the view layout.
func (v View[T]) Layout() Layout { return v.layout }

// DType returns the element data type.
func (v View[T]) DType() DataType { return DataTypeOf[T]() }

// At returns element i.
func (v View[T]) At(i int) T {
	return v.data[v.offset+i*v.stride]
}

// Set stores x at element i.
func (v View[T]) Set(i int, x T) {
	v.data[v.offset+i*v.stride] = x
}

// Data returns the backing slice.
// WARNING: Direct access to underlying memory, including elements the view
// does not address.
func (v View[T]) Data() []T {
	return v.data
}

// ToSlice copies the addressed elements into a new slice.
func (v View[T]) ToSlice() []T {
	out := make([]T, v.extent)
	for i := range out {
		out[i] = v.At(i)
	}
	return out
}

// Begin returns a mutable iterator to the first element.
func (v View[T]) Begin() Iterator[T] {
	return Iterator[T]{data: v.data, offset: v.offset, stride: v.stride}
}

// End returns a mutable iterator one past the last element.
func (v View[T]) End() Iterator[T] {
	return Iterator[T]{data: v.data, offset: v.offset, stride: v.stride, pos: v.extent}
}

// Cbegin returns a read-only iterator to the first element.
func (v View[T]) Cbegin() ConstIterator[T] {
	return v.Begin().Const()
}

// Cend returns a read-only iterator one past the last element.
func (v View[T]) Cend() ConstIterator[T] {
	return v.End().Const()
}

// Const returns a read-only view of the same elements.
func (v View[T]) Const() ConstView[T] {
	return ConstView[T]{v: v}
}

func (c ConstView[T]) rank1() View[T] { return c.v }

// Label returns the view label.
func (c ConstView[T]) Label() string { return c.v.label }

// Extent returns the number of elements.
func (c ConstView[T]) Extent() int { return c.v.extent }

// At returns element i.
func (c ConstView[T]) At(i int) T { return c.v.At(i) }

// ToSlice copies the addressed elements into a new slice.
func (c ConstView[T]) ToSlice() []T { return c.v.ToSlice() }

// Cbegin returns a read-only iterator to the first element.
func (c ConstView[T]) Cbegin() ConstIterator[T] { return c.v.Cbegin() }

// Cend returns a read-only iterator one past the last element.
func (c ConstView[T]) Cend() ConstIterator[T] { return c.v.Cend() }

// Begin returns a mutable iterator to the first element of v.
func Begin[T Scalar](v View[T]) Iterator[T] { return v.Begin() }

// End returns a mutable iterator one past the last element of v.
func End[T Scalar](v View[T]) Iterator[T] { return v.End() }

// Cbegin returns a read-only iterator to the first element of s.
func Cbegin[T Scalar](s Source[T]) ConstIterator[T] { return s.Cbegin() }

// Cend returns a read-only iterator one past the last element of s.
func Cend[T Scalar](s Source[T]) ConstIterator[T] { return s.Cend() }

// CheckAdmissible validates the structural invariants of a rank-1 view:
// positive stride, non-negative extent and offset, and storage large
// enough for every addressed element.
func CheckAdmissible[T Scalar](s Source[T]) error {
	return s.rank1().validate()
}

// CheckRange validates that [first, last) is a forward range over a single
// storage and that every element in it is addressable.
func CheckRange[T Scalar](first, last Iterator[T]) error {
	if unsafe.SliceData(first.data) != unsafe.SliceData(last.data) || first.offset != last.offset || first.stride != last.stride {
		return errors.New("first and last do not belong to the same view")
	}
	n := first.Distance(last)
	if n < 0 {
		return fmt.Errorf("last precedes first by %d elements", -n)
	}
	return CheckSpan(first, n)
}

// CheckSpan validates that the n elements starting at it are addressable.
func CheckSpan[T Scalar](it Iterator[T], n int) error {
	if n == 0 {
		return nil
	}
	if it.stride <= 0 {
		return fmt.Errorf("stride %d must be positive", it.stride)
	}
	lo, hi := it.index(0), it.index(n-1)
	if lo < 0 || hi >= len(it.data) {
		return fmt.Errorf("elements [%d, %d] outside storage of %d", lo, hi, len(it.data))
	}
	return nil
}
