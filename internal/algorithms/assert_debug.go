//go:build stdalgo_debug

package algorithms

import (
	"fmt"

	"github.com/born-ml/stdalgo/internal/view"
)

// DebugChecks reports whether range assertions are compiled in.
const DebugChecks = true

func assertRange[T view.Scalar](first, last, dLast view.Iterator[T]) {
	if err := view.CheckRange(first, last); err != nil {
		panic(fmt.Sprintf("stdalgo: copy_backward: invalid source range: %v", err))
	}
	n := first.Distance(last)
	if err := view.CheckSpan(dLast.Sub(n), n); err != nil {
		panic(fmt.Sprintf("stdalgo: copy_backward: destination cannot hold %d elements: %v", n, err))
	}
	if view.CheckRange(first, dLast) == nil {
		if d := first.Distance(dLast); d > 0 && d <= n {
			panic(fmt.Sprintf("stdalgo: copy_backward: destination end lies inside the source range at offset %d", d))
		}
	}
}

func assertViews[T view.Scalar](src view.Source[T], dst view.View[T]) {
	if err := view.CheckAdmissible(src); err != nil {
		panic(fmt.Sprintf("stdalgo: copy_backward: source: %v", err))
	}
	if err := view.CheckAdmissible[T](dst); err != nil {
		panic(fmt.Sprintf("stdalgo: copy_backward: destination: %v", err))
	}
	if dst.Extent() < src.Cbegin().Distance(src.Cend()) {
		panic(fmt.Sprintf("stdalgo: copy_backward: destination %q is shorter than source %q", dst.Label(), src.Label()))
	}
}
