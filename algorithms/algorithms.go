// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package algorithms provides parallel standard algorithms that run on any
// execution space or team handle.
//
// Example:
//
//	import (
//	    "github.com/born-ml/stdalgo/algorithms"
//	    "github.com/born-ml/stdalgo/backend/cpu"
//	    "github.com/born-ml/stdalgo/view"
//	)
//
//	func main() {
//	    space := cpu.New()
//	    buf := []int64{1, 2, 3, 4, 5, 0, 0}
//	    first := view.SliceBegin(buf)
//
//	    // Shift the first five elements right by two, in place.
//	    _, err := algorithms.CopyBackward(space, first, first.Add(5), view.SliceEnd(buf),
//	        algorithms.WithLabel("shift"))
//	}
package algorithms

import (
	"github.com/born-ml/stdalgo/internal/algorithms"
	"github.com/born-ml/stdalgo/internal/exec"
	"github.com/born-ml/stdalgo/internal/view"
)

// Default labels used when WithLabel is not given.
const (
	CopyBackwardIteratorLabel = algorithms.CopyBackwardIteratorLabel
	CopyBackwardViewLabel     = algorithms.CopyBackwardViewLabel
)

// Option configures a single algorithm call.
type Option = algorithms.Option

// WithLabel sets the label the launch is reported under.
func WithLabel(label string) Option {
	return algorithms.WithLabel(label)
}

// CopyBackward copies [first, last) into the range ending at dLast,
// last element first, and returns the start of the written range.
//
// h is an execution space (the copy runs on the whole device) or a
// *exec.TeamMember (every member of the team must make the same call).
// The destination may overlap the source when it begins after first.
func CopyBackward[H exec.Handle, T view.Scalar, I view.Input[T]](
	h H, first, last I, dLast view.Iterator[T], opts ...Option,
) (view.Iterator[T], error) {
	return algorithms.CopyBackward(h, first, last, dLast, opts...)
}

// CopyBackwardView copies src into the tail of dst, last element first,
// and returns the iterator to the first written element of dst.
func CopyBackwardView[H exec.Handle, T view.Scalar](
	h H, src view.Source[T], dst view.View[T], opts ...Option,
) (view.Iterator[T], error) {
	return algorithms.CopyBackwardView(h, src, dst, opts...)
}
