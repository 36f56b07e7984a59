//go:build !stdalgo_debug

package algorithms

import "github.com/born-ml/stdalgo/internal/view"

// DebugChecks reports whether range assertions are compiled in.
const DebugChecks = false

func assertRange[T view.Scalar](_, _, _ view.Iterator[T]) {}

func assertViews[T view.Scalar](view.Source[T], view.View[T]) {}
