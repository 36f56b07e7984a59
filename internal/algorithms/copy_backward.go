// Package algorithms implements parallel standard algorithms over views and
// iterators. Every algorithm is dispatched through an exec.Handle: either a
// device-wide execution space or a *exec.TeamMember, in which case every
// member of the team calls it with the same arguments.
package algorithms

import (
	"unsafe"

	"github.com/born-ml/stdalgo/internal/exec"
	"github.com/born-ml/stdalgo/internal/view"
)

// CopyBackward copies [first, last) into the range ending at dLast,
// behaving as if elements were copied from last-1 down to first. The
// destination may overlap the source when it starts after first.
// It returns dLast moved back by the number of copied elements.
//
// Errors from the handle are returned unmodified together with a zero
// iterator.
func CopyBackward[H exec.Handle, T view.Scalar, I view.Input[T]](
	h H, first, last I, dLast view.Iterator[T], opts ...Option,
) (view.Iterator[T], error) {
	o := resolve(CopyBackwardIteratorLabel, opts)
	src, end := view.AsIterator[T](first), view.AsIterator[T](last)
	assertRange(src, end, dLast)
	return copyBackward(h, o.label, src, end, dLast)
}

// CopyBackwardView copies every element of src into dst from the last
// element down. dst must have at least as many elements as src. It
// returns the iterator to the first written element of dst.
func CopyBackwardView[H exec.Handle, T view.Scalar](
	h H, src view.Source[T], dst view.View[T], opts ...Option,
) (view.Iterator[T], error) {
	o := resolve(CopyBackwardViewLabel, opts)
	assertViews(src, dst)
	first, last, dLast := view.AsIterator[T](view.Cbegin(src)), view.AsIterator[T](view.Cend(src)), view.End(dst)
	assertRange(first, last, dLast)
	return copyBackward(h, o.label, first, last, dLast)
}

func copyBackward[H exec.Handle, T view.Scalar](h H, label string, first, last, dLast view.Iterator[T]) (view.Iterator[T], error) {
	n := first.Distance(last)
	if n <= 0 {
		return dLast, nil
	}
	dFirst := dLast.Sub(n)

	var err error
	switch stager, staged := any(h).(exec.Stager); {
	case !view.MayAlias(first, dFirst, n):
		err = h.Launch(label, exec.Work{
			N:      n,
			Phases: []func(lo, hi int){copyPhase(first, dFirst)},
		})
	case staged && first.IsContiguous() && h.ScratchLimit() == 0:
		err = stagedCopy(h, stager, label, first, dFirst, n)
	default:
		err = gatherScatter(h, label, first, dFirst, n)
	}
	if err != nil {
		return view.Iterator[T]{}, err
	}
	return dFirst, nil
}

// copyPhase copies directly when source and destination cannot overlap.
func copyPhase[T view.Scalar](src, dst view.Iterator[T]) func(lo, hi int) {
	return func(lo, hi int) {
		for i := hi - 1; i >= lo; i-- {
			dst.SetAt(i, src.At(i))
		}
	}
}

// gatherScatter copies through scratch in one launch. Scratch holds chunk
// elements; chunks are processed from the highest index down, each as a
// gather phase followed by a scatter phase.
func gatherScatter[H exec.Handle, T view.Scalar](h H, label string, src, dst view.Iterator[T], n int) error {
	elem := int(unsafe.Sizeof(*new(T)))
	chunk := n
	if limit := h.ScratchLimit(); limit > 0 {
		if c := limit / elem; c > 0 && c < n {
			chunk = c
		}
	}

	var buf []T
	phases := make([]func(lo, hi int), 0, 2*((n+chunk-1)/chunk))
	for hi := n; hi > 0; hi -= chunk {
		base := max(hi-chunk, 0)
		size := hi - base
		phases = append(phases,
			func(lo, hi int) {
				for k := lo; k < min(hi, size); k++ {
					buf[k] = src.At(base + k)
				}
			},
			func(lo, hi int) {
				for k := min(hi, size) - 1; k >= lo; k-- {
					dst.SetAt(base+k, buf[k])
				}
			},
		)
	}

	return h.Launch(label, exec.Work{
		N:            chunk,
		ScratchBytes: chunk * elem,
		Bind:         func(s []byte) { buf = view.FromBytes[T](s, chunk) },
		Phases:       phases,
	})
}

// stagedCopy gathers the source through the handle's device memory and
// scatters the staged copy on the host. It binds scratch for the whole
// range, so it only serves handles with unbounded scratch.
func stagedCopy[H exec.Handle, T view.Scalar](h H, stager exec.Stager, label string, src, dst view.Iterator[T], n int) error {
	staged, err := stager.Stage(label, view.Bytes(src, n))
	if err != nil {
		return err
	}

	var buf []T
	return h.Launch(label, exec.Work{
		N:            n,
		ScratchBytes: len(staged),
		Bind: func(s []byte) {
			copy(s, staged)
			buf = view.FromBytes[T](s, n)
		},
		Phases: []func(lo, hi int){
			func(lo, hi int) {
				for i := hi - 1; i >= lo; i-- {
					dst.SetAt(i, buf[i])
				}
			},
		},
	})
}
