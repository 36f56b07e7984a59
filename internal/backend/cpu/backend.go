// Package cpu implements the host execution spaces: Serial, which runs every
// launch inline on the calling goroutine, and Threads, which fans launches
// out to worker goroutines.
package cpu

import (
	"github.com/born-ml/stdalgo/internal/exec"
	"github.com/born-ml/stdalgo/internal/parallel"
)

// Threads is an execution space backed by goroutines.
type Threads struct {
	cfg  parallel.Config
	gate exec.Gate
}

// Compile-time check that Threads implements exec.Space.
var _ exec.Space = (*Threads)(nil)

// New creates a Threads space with parallel.DefaultConfig.
func New() *Threads {
	return NewThreads(parallel.DefaultConfig())
}

// NewThreads creates a Threads space with the given configuration.
func NewThreads(cfg parallel.Config) *Threads {
	return &Threads{cfg: cfg}
}

// Name returns the space name.
func (t *Threads) Name() string {
	return "Threads"
}

// Device returns the compute device.
func (t *Threads) Device() exec.Device {
	return exec.CPU
}

// Concurrency returns the number of worker goroutines.
func (t *Threads) Concurrency() int {
	return t.cfg.Workers()
}

// Config returns the parallel configuration of the space.
func (t *Threads) Config() parallel.Config {
	return t.cfg
}

// ScratchLimit implements exec.Handle. Host scratch is unbounded.
func (t *Threads) ScratchLimit() int {
	return 0
}

// Launch implements exec.Handle.
func (t *Threads) Launch(label string, w exec.Work) error {
	return t.LaunchAs(t.Name(), label, w)
}

// LaunchAs is Launch reported to the profiling hub under device. Spaces
// that run their host phases on t use it, so t's Fence and Close cover
// their launches too.
func (t *Threads) LaunchAs(device, label string, w exec.Work) error {
	return exec.LaunchWith(device, &t.gate, t.run, label, w)
}

// RunRange implements exec.Space.
func (t *Threads) RunRange(n int, body func(lo, hi int)) error {
	if err := t.gate.Enter(); err != nil {
		return err
	}
	defer t.gate.Exit()

	t.run(n, body)
	return nil
}

func (t *Threads) run(n int, body func(lo, hi int)) {
	parallel.ForRange(n, body, t.cfg)
}

// Fence waits for every launch in flight on the space. Calling it from
// inside a launch on the same space deadlocks.
func (t *Threads) Fence() error {
	return t.gate.Drain(false)
}

// Close waits for in-flight launches and rejects all later ones with
// exec.ErrSpaceClosed.
func (t *Threads) Close() error {
	return t.gate.Drain(true)
}

// Serial is an execution space that runs every launch inline.
type Serial struct {
	gate exec.Gate
}

// Compile-time check that Serial implements exec.Space.
var _ exec.Space = (*Serial)(nil)

// NewSerial creates a Serial space.
func NewSerial() *Serial {
	return &Serial{}
}

// Name returns the space name.
func (s *Serial) Name() string {
	return "Serial"
}

// Device returns the compute device.
func (s *Serial) Device() exec.Device {
	return exec.CPU
}

// Concurrency returns 1.
func (s *Serial) Concurrency() int {
	return 1
}

// ScratchLimit implements exec.Handle. Host scratch is unbounded.
func (s *Serial) ScratchLimit() int {
	return 0
}

// Launch implements exec.Handle.
func (s *Serial) Launch(label string, w exec.Work) error {
	return exec.LaunchWith(s.Name(), &s.gate, s.run, label, w)
}

// RunRange implements exec.Space.
func (s *Serial) RunRange(n int, body func(lo, hi int)) error {
	if err := s.gate.Enter(); err != nil {
		return err
	}
	defer s.gate.Exit()

	s.run(n, body)
	return nil
}

func (s *Serial) run(n int, body func(lo, hi int)) {
	if n > 0 {
		body(0, n)
	}
}

// Fence waits for every launch in flight on the space. Calling it from
// inside a launch on the same space deadlocks.
func (s *Serial) Fence() error {
	return s.gate.Drain(false)
}

// Close waits for in-flight launches and rejects all later ones with
// exec.ErrSpaceClosed.
func (s *Serial) Close() error {
	return s.gate.Drain(true)
}
