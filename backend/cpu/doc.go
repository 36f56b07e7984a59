// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the host execution spaces.
//
// # Overview
//
// Two spaces are available:
//   - Threads: splits every launch into contiguous chunks run on goroutines
//   - Serial: runs every launch inline on the calling goroutine
//
// Both implement exec.Space and can be passed to any algorithm, or to
// exec.ParallelTeams to run a league of teams.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/stdalgo/algorithms"
//	    "github.com/born-ml/stdalgo/backend/cpu"
//	    "github.com/born-ml/stdalgo/view"
//	)
//
//	func main() {
//	    space := cpu.NewThreads(cpu.Config{Enabled: true, NumWorkers: 8, MinChunkSize: 1024})
//	    defer space.Close()
//
//	    a := view.Wrap("a", data)
//	    b := view.New[float64]("b", len(data))
//	    _, err := algorithms.CopyBackwardView(space, a, b)
//	}
//
// # Configuration
//
// Launches shorter than Config.MinChunkSize run inline. Close waits for
// in-flight launches and rejects later ones with exec.ErrSpaceClosed.
// Fence and Close wait for every phase of a launch, and a launch may start
// further launches on the same space from inside its phases.
package cpu
