// Package exec defines the execution handles algorithms are dispatched
// through: device-wide execution spaces and team members of a league.
package exec

import (
	"errors"

	"github.com/born-ml/stdalgo/internal/profiling"
)

// Sentinel errors returned by execution spaces.
var (
	// ErrSpaceClosed is returned when work is scheduled on a closed space.
	ErrSpaceClosed = errors.New("exec: execution space is closed")

	// ErrInvalidPolicy is returned for team policies with non-positive
	// league or team sizes or a negative scratch size.
	ErrInvalidPolicy = errors.New("exec: invalid team policy")
)

// Device represents the compute device an execution space runs on.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// Work is one labeled launch: N work items run through each phase in
// order, and no item of a phase starts before every item of the previous
// phase has finished.
type Work struct {
	N int

	// ScratchBytes is the scratch the phases need. When positive, Bind is
	// called with an 8-byte aligned buffer of exactly that length before
	// the first phase. The buffer is only valid until Launch returns.
	ScratchBytes int
	Bind         func(scratch []byte)

	// Phases receive contiguous sub-ranges [lo, hi) of [0, N).
	Phases []func(lo, hi int)
}

// Handle is the capability every algorithm entry point is dispatched
// through. It is implemented by execution spaces, which run a launch
// across the whole device, and by *TeamMember, which runs it across one
// team when every member of the team calls it.
type Handle interface {
	// Launch runs w and reports label to the profiling hub.
	Launch(label string, w Work) error

	// ScratchLimit returns the largest scratch the handle can provide
	// without a temporary allocation, or 0 when it is unbounded.
	ScratchLimit() int
}

// Space is a device-wide execution space.
type Space interface {
	Handle

	// Name identifies the space in instrumentation output.
	Name() string

	// Device returns the device the space runs on.
	Device() Device

	// Concurrency returns the number of workers the space uses.
	Concurrency() int

	// RunRange partitions [0, n) into contiguous chunks, runs body on
	// each and returns once all of them have finished.
	RunRange(n int, body func(lo, hi int)) error

	// Fence blocks until all work submitted to the space has completed.
	Fence() error
}

// Stager is implemented by spaces that can stage a contiguous byte range
// through device memory. Stage returns a copy of src taken entirely
// before any byte of the result is handed back.
type Stager interface {
	Stage(label string, src []byte) ([]byte, error)
}

// RangeFunc runs body over contiguous chunks of [0, n) and returns once
// every chunk has finished.
type RangeFunc func(n int, body func(lo, hi int))

// LaunchWith implements Handle.Launch for a space that runs ranges with
// run. The launch is admitted through g once for all of its phases, so a
// Fence or Close on the space never lands between two phases.
func LaunchWith(device string, g *Gate, run RangeFunc, label string, w Work) error {
	ev := profiling.Begin(profiling.KindParallelFor, label, device, w.N)
	err := launch(g, run, w)
	profiling.End(ev, err)
	return err
}

func launch(g *Gate, run RangeFunc, w Work) error {
	if err := g.Enter(); err != nil {
		return err
	}
	defer g.Exit()

	if w.ScratchBytes > 0 {
		buf := scratch.Acquire(w.ScratchBytes)
		defer scratch.Release(buf)
		w.Bind(buf)
	}

	for _, phase := range w.Phases {
		run(w.N, phase)
	}
	return nil
}

// ParallelFor runs body(i) for every i in [0, n) on s under label.
func ParallelFor(label string, s Space, n int, body func(i int)) error {
	ev := profiling.Begin(profiling.KindParallelFor, label, s.Name(), n)
	err := s.RunRange(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			body(i)
		}
	})
	profiling.End(ev, err)
	return err
}

// Fence waits for s to finish all outstanding work under label.
func Fence(label string, s Space) error {
	ev := profiling.Begin(profiling.KindFence, label, s.Name(), 0)
	err := s.Fence()
	profiling.End(ev, err)
	return err
}
