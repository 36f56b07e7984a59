package view

import "fmt"

// Matrix is a rank-2 view. Algorithms never take a Matrix directly; they
// work on the rank-1 views returned by Row and Col.
type Matrix[T Scalar] struct {
	label   string
	data    []T
	shape   Shape
	strides []int
	layout  Layout
}

// NewMatrix allocates a zeroed rows x cols matrix with the given layout.
// Only LayoutRight and LayoutLeft are valid for owned matrices.
func NewMatrix[T Scalar](label string, rows, cols int, layout Layout) (Matrix[T], error) {
	shape := Shape{rows, cols}
	if err := shape.Validate(); err != nil {
		return Matrix[T]{}, fmt.Errorf("invalid shape: %w", err)
	}
	if layout != LayoutRight && layout != LayoutLeft {
		return Matrix[T]{}, fmt.Errorf("%w: matrix layout %s", ErrNotAdmissible, layout)
	}
	return Matrix[T]{
		label:   label,
		data:    make([]T, shape.NumElements()),
		shape:   shape,
		strides: layout.Strides(shape),
		layout:  layout,
	}, nil
}

// Label returns the matrix label.
func (m Matrix[T]) Label() string { return m.label }

// Rank returns the number of dimensions, always 2.
func (m Matrix[T]) Rank() int { return 2 }

// Shape returns the matrix extents.
func (m Matrix[T]) Shape() Shape { return m.shape }

// Layout returns the matrix layout.
func (m Matrix[T]) Layout() Layout { return m.layout }

// Rows returns the number of rows.
func (m Matrix[T]) Rows() int { return m.shape[0] }

// Cols returns the number of columns.
func (m Matrix[T]) Cols() int { return m.shape[1] }

// At returns element (i, j).
func (m Matrix[T]) At(i, j int) T {
	return m.data[i*m.strides[0]+j*m.strides[1]]
}

// Set stores x at element (i, j).
func (m Matrix[T]) Set(i, j int, x T) {
	m.data[i*m.strides[0]+j*m.strides[1]] = x
}

// Row returns row i as a rank-1 view sharing the matrix storage.
func (m Matrix[T]) Row(i int) View[T] {
	return m.slice(fmt.Sprintf("%s[%d,:]", m.label, i), i*m.strides[0], m.shape[1], m.strides[1])
}

// Col returns column j as a rank-1 view sharing the matrix storage.
func (m Matrix[T]) Col(j int) View[T] {
	return m.slice(fmt.Sprintf("%s[:,%d]", m.label, j), j*m.strides[1], m.shape[0], m.strides[0])
}

func (m Matrix[T]) slice(label string, offset, extent, stride int) View[T] {
	layout := LayoutStride
	if stride == 1 {
		layout = m.layout
	}
	return View[T]{label: label, data: m.data, offset: offset, extent: extent, stride: stride, layout: layout}
}
