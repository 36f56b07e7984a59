// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU execution space.
//
// Copies whose source and destination overlap gather the source through
// device memory before scattering it on host threads. The space is backed
// by go-webgpu on windows; elsewhere New returns ErrUnavailable.
//
// Example:
//
//	import (
//	    "github.com/born-ml/stdalgo/backend/cpu"
//	    "github.com/born-ml/stdalgo/backend/webgpu"
//	    "github.com/born-ml/stdalgo/exec"
//	)
//
//	func main() {
//	    var space exec.Space = cpu.New()
//	    if gpu, err := webgpu.New(); err == nil {
//	        defer gpu.Release()
//	        space = gpu
//	    }
//	}
package webgpu

import (
	internalwebgpu "github.com/born-ml/stdalgo/internal/backend/webgpu"
	"github.com/born-ml/stdalgo/internal/exec"
)

// Space represents the WebGPU execution space.
type Space = internalwebgpu.Space

// ErrUnavailable is returned when no WebGPU device can be opened.
var ErrUnavailable = internalwebgpu.ErrUnavailable

// Compile-time check that Space implements exec.Space.
var _ exec.Space = (*Space)(nil)

// New creates a WebGPU space. Call Release() when done to free GPU
// resources.
func New() (*Space, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if WebGPU is available on the current system.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
