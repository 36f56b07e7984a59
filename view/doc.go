// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package view provides the non-owning views and iterators the parallel
// algorithms operate on.
//
// # Overview
//
// A View is a rank-1 reference to elements of a Go slice, described by an
// offset, an extent and a stride. Views never own or copy their elements:
//   - Wrap and New create contiguous views (LayoutRight)
//   - Strided and Matrix.Col create LayoutStride views
//   - Subview narrows a view without copying
//
// Iterators are random-access cursors obtained from a view with Begin, End,
// Cbegin and Cend, or from a raw slice with SliceBegin and SliceEnd.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/stdalgo/algorithms"
//	    "github.com/born-ml/stdalgo/backend/cpu"
//	    "github.com/born-ml/stdalgo/view"
//	)
//
//	func main() {
//	    space := cpu.New()
//	    a := view.Wrap("a", []float32{1, 2, 3})
//	    b := view.New[float32]("b", 3)
//	    _, err := algorithms.CopyBackwardView(space, a, b)
//	}
//
// # Supported Data Types
//
// Elements satisfy the Scalar constraint:
//   - float32, float64 (floating-point)
//   - int32, int64 (signed integers)
//   - uint8 (bytes)
//   - bool (masks)
//
// Named types whose underlying type is one of the above are accepted too.
package view
