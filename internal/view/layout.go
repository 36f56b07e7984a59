package view

import "fmt"

// Layout describes how a logical index maps to a storage offset.
//
// Only layouts that the algorithms can traverse are representable, so a
// view carrying any other layout cannot be built through this package.
type Layout int

// Supported layouts.
const (
	// LayoutRight is row-major (last index is contiguous).
	LayoutRight Layout = iota
	// LayoutLeft is column-major (first index is contiguous).
	LayoutLeft
	// LayoutStride has an arbitrary positive stride per dimension.
	LayoutStride
)

// String returns the layout name.
func (l Layout) String() string {
	switch l {
	case LayoutRight:
		return "LayoutRight"
	case LayoutLeft:
		return "LayoutLeft"
	case LayoutStride:
		return "LayoutStride"
	default:
		return "Unknown"
	}
}

// Shape represents the extents of a view.
type Shape []int

// NumElements returns the total number of elements addressed by the shape.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that no extent is negative. Zero extents are allowed:
// an empty view is a valid range.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("invalid extent at index %d: %d (must be >= 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Strides calculates the strides of shape s under layout l.
// LayoutStride has no implied strides and falls back to row-major.
func (l Layout) Strides(s Shape) []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	if l == LayoutLeft {
		strides[0] = 1
		for i := 1; i < len(s); i++ {
			strides[i] = strides[i-1] * max(s[i-1], 1)
		}
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * max(s[i+1], 1)
	}
	return strides
}
