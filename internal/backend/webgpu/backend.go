//go:build windows

// Package webgpu implements the WebGPU execution space. Gather phases of
// aliasing copies are staged through device memory; index-parallel phases
// run on host threads.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings.
package webgpu

import (
	"fmt"
	"sync"

	"github.com/born-ml/stdalgo/internal/backend/cpu"
	"github.com/born-ml/stdalgo/internal/exec"
	"github.com/born-ml/stdalgo/internal/profiling"
	"github.com/go-webgpu/webgpu/wgpu"
)

// Space is an execution space backed by a WebGPU device.
type Space struct {
	host *cpu.Threads

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	adapterInfo *wgpu.AdapterInfo
	buffers     *BufferPool

	mu       sync.Mutex // Serializes queue submission and Release.
	released bool
}

// Compile-time checks.
var (
	_ exec.Space  = (*Space)(nil)
	_ exec.Stager = (*Space)(nil)
)

// New creates a WebGPU space whose host phases run on cpu.New().
func New() (*Space, error) {
	return NewWithHost(cpu.New())
}

// NewWithHost creates a WebGPU space whose host phases run on host.
// Returns an error wrapping ErrUnavailable if WebGPU is not available or
// initialization fails.
func NewWithHost(host *cpu.Threads) (space *Space, err error) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			space = nil
			err = fmt.Errorf("%w: native library not available: %v", ErrUnavailable, r)
		}
	}()

	instance := wgpu.CreateInstance(nil)
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, fmt.Errorf("%w: failed to request adapter: %w", ErrUnavailable, adapterErr)
	}

	adapterInfo := adapter.GetInfo()

	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: failed to request device: %w", ErrUnavailable, deviceErr)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: failed to get queue", ErrUnavailable)
	}

	return &Space{
		host:        host,
		instance:    instance,
		adapter:     adapter,
		device:      device,
		queue:       queue,
		adapterInfo: &adapterInfo,
		buffers:     NewBufferPool(device),
	}, nil
}

// Release frees all GPU resources. Later launches fail with
// exec.ErrSpaceClosed.
func (s *Space) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return
	}
	s.released = true

	s.buffers.Clear()
	s.queue.Release()
	s.device.Release()
	s.adapter.Release()
	s.instance.Release()
}

// Name returns the space name.
func (s *Space) Name() string {
	return "WebGPU"
}

// Device returns the compute device.
func (s *Space) Device() exec.Device {
	return exec.WebGPU
}

// AdapterInfo returns information about the GPU adapter.
func (s *Space) AdapterInfo() *wgpu.AdapterInfo {
	return s.adapterInfo
}

// Buffers returns the device buffer pool.
func (s *Space) Buffers() *BufferPool {
	return s.buffers
}

// Concurrency returns the number of host workers.
func (s *Space) Concurrency() int {
	return s.host.Concurrency()
}

// ScratchLimit implements exec.Handle.
func (s *Space) ScratchLimit() int {
	return 0
}

// Launch implements exec.Handle.
func (s *Space) Launch(label string, w exec.Work) error {
	if s.isReleased() {
		return exec.ErrSpaceClosed
	}
	return s.host.LaunchAs(s.Name(), label, w)
}

// RunRange implements exec.Space on the host threads.
func (s *Space) RunRange(n int, body func(lo, hi int)) error {
	if s.isReleased() {
		return exec.ErrSpaceClosed
	}
	return s.host.RunRange(n, body)
}

// Fence waits for host work; device work is always complete when the
// call that submitted it returns.
func (s *Space) Fence() error {
	if s.isReleased() {
		return exec.ErrSpaceClosed
	}
	return s.host.Fence()
}

// Stage implements exec.Stager: src is uploaded to a device buffer, copied
// on the device into a staging buffer and read back.
func (s *Space) Stage(label string, src []byte) ([]byte, error) {
	ev := profiling.Begin(profiling.KindRegion, label, s.Name(), len(src))
	out, err := s.stage(src)
	profiling.End(ev, err)
	return out, err
}

func (s *Space) isReleased() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.released
}
