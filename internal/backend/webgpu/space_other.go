//go:build !windows

// Package webgpu implements the WebGPU execution space. The go-webgpu
// bindings are only wired on windows; elsewhere New reports ErrUnavailable.
package webgpu

import "github.com/born-ml/stdalgo/internal/backend/cpu"

// Space is unavailable on this platform.
type Space struct {
	*cpu.Threads
}

// New always fails with ErrUnavailable on this platform.
func New() (*Space, error) {
	return nil, ErrUnavailable
}

// NewWithHost always fails with ErrUnavailable on this platform.
func NewWithHost(*cpu.Threads) (*Space, error) {
	return nil, ErrUnavailable
}

// IsAvailable reports false on this platform.
func IsAvailable() bool {
	return false
}

// Release is a no-op on this platform.
func (s *Space) Release() {}
