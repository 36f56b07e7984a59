// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package view

import "github.com/born-ml/stdalgo/internal/view"

// Scalar is the constraint on view elements.
type Scalar = view.Scalar

// DataType identifies the element type of a view.
type DataType = view.DataType

// Supported data types.
const (
	Float32 = view.Float32
	Float64 = view.Float64
	Int32   = view.Int32
	Int64   = view.Int64
	Uint8   = view.Uint8
	Bool    = view.Bool
)

// Layout describes how view indices map to storage.
type Layout = view.Layout

// Admissible layouts.
const (
	LayoutRight  = view.LayoutRight
	LayoutLeft   = view.LayoutLeft
	LayoutStride = view.LayoutStride
)

// Shape is the extent of each dimension of a Matrix.
type Shape = view.Shape

// ErrNotAdmissible is returned for views that violate their structural
// invariants.
var ErrNotAdmissible = view.ErrNotAdmissible

// View is a non-owning rank-1 reference to elements stored in a slice.
type View[T Scalar] = view.View[T]

// ConstView is a read-only rank-1 view.
type ConstView[T Scalar] = view.ConstView[T]

// Matrix is a rank-2 view; use Row and Col to obtain rank-1 views.
type Matrix[T Scalar] = view.Matrix[T]

// Source is implemented only by View and ConstView.
type Source[T Scalar] = view.Source[T]

// Iterator is a mutable random-access cursor.
type Iterator[T Scalar] = view.Iterator[T]

// ConstIterator is a read-only random-access cursor.
type ConstIterator[T Scalar] = view.ConstIterator[T]

// Input is satisfied by Iterator and ConstIterator.
type Input[T Scalar] = view.Input[T]

// New allocates a zeroed, contiguous view of n elements.
func New[T Scalar](label string, n int) View[T] {
	return view.New[T](label, n)
}

// Wrap returns a contiguous view over data without copying it.
func Wrap[T Scalar](label string, data []T) View[T] {
	return view.Wrap(label, data)
}

// Strided returns a view of extent elements of data starting at offset
// and spaced stride apart.
func Strided[T Scalar](label string, data []T, offset, extent, stride int) (View[T], error) {
	return view.Strided(label, data, offset, extent, stride)
}

// Subview returns the view of elements [lo, hi) of v.
func Subview[T Scalar](v View[T], lo, hi int) View[T] {
	return view.Subview(v, lo, hi)
}

// NewMatrix allocates a zeroed rows x cols matrix.
func NewMatrix[T Scalar](label string, rows, cols int, layout Layout) (Matrix[T], error) {
	return view.NewMatrix[T](label, rows, cols, layout)
}

// Begin returns a mutable iterator to the first element of v.
func Begin[T Scalar](v View[T]) Iterator[T] { return view.Begin(v) }

// End returns a mutable iterator one past the last element of v.
func End[T Scalar](v View[T]) Iterator[T] { return view.End(v) }

// Cbegin returns a read-only iterator to the first element of s.
func Cbegin[T Scalar](s Source[T]) ConstIterator[T] { return view.Cbegin(s) }

// Cend returns a read-only iterator one past the last element of s.
func Cend[T Scalar](s Source[T]) ConstIterator[T] { return view.Cend(s) }

// SliceBegin returns an iterator to the first element of s.
func SliceBegin[T Scalar](s []T) Iterator[T] { return view.SliceBegin(s) }

// SliceEnd returns an iterator one past the last element of s.
func SliceEnd[T Scalar](s []T) Iterator[T] { return view.SliceEnd(s) }

// CheckAdmissible validates the structural invariants of a rank-1 view.
func CheckAdmissible[T Scalar](s Source[T]) error { return view.CheckAdmissible(s) }

// CheckRange validates that [first, last) is a forward range over one view.
func CheckRange[T Scalar](first, last Iterator[T]) error { return view.CheckRange(first, last) }
