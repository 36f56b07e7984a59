// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/stdalgo/internal/backend/cpu"
	"github.com/born-ml/stdalgo/internal/exec"
	"github.com/born-ml/stdalgo/internal/parallel"
)

// Threads is the goroutine-backed execution space.
type Threads = internalcpu.Threads

// Serial is the inline execution space.
type Serial = internalcpu.Serial

// Config controls how Threads splits launches.
type Config = parallel.Config

// Features reports host CPU capabilities.
type Features = internalcpu.Features

// Compile-time checks that both spaces implement exec.Space.
var (
	_ exec.Space = (*Threads)(nil)
	_ exec.Space = (*Serial)(nil)
)

// New creates a Threads space using every CPU.
//
// Example:
//
//	import (
//	    "github.com/born-ml/stdalgo/algorithms"
//	    "github.com/born-ml/stdalgo/backend/cpu"
//	)
//
//	func main() {
//	    space := cpu.New()
//	    defer space.Close()
//	    _, err := algorithms.CopyBackwardView(space, src, dst)
//	}
func New() *Threads {
	return internalcpu.New()
}

// NewThreads creates a Threads space with the given configuration.
func NewThreads(cfg Config) *Threads {
	return internalcpu.NewThreads(cfg)
}

// NewSerial creates a Serial space.
func NewSerial() *Serial {
	return internalcpu.NewSerial()
}

// DefaultConfig returns a configuration using every CPU.
func DefaultConfig() Config {
	return parallel.DefaultConfig()
}

// DetectFeatures reports the host CPU capabilities.
func DetectFeatures() Features {
	return internalcpu.DetectFeatures()
}
