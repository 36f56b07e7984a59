// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package profiling exposes the instrumentation hub every labeled launch is
// reported to, and the tools that consume its events.
//
// Example:
//
//	rec := profiling.NewRecorder()
//	profiling.Register(rec)
//	defer profiling.Unregister(rec)
//
//	_, _ = algorithms.CopyBackwardView(space, a, b, algorithms.WithLabel("copy"))
//	fmt.Println(rec.Labels(profiling.KindParallelFor)) // [copy]
package profiling

import (
	"github.com/born-ml/stdalgo/internal/profiling"
	"github.com/born-ml/stdalgo/internal/profiling/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Kind classifies an instrumentation event.
type Kind = profiling.Kind

// Event kinds.
const (
	KindParallelFor   = profiling.KindParallelFor
	KindParallelTeams = profiling.KindParallelTeams
	KindFence         = profiling.KindFence
	KindRegion        = profiling.KindRegion
)

// Event describes one labeled launch, fence or region.
type Event = profiling.Event

// Tool consumes instrumentation events.
type Tool = profiling.Tool

// Recorder keeps every completed event in memory.
type Recorder = profiling.Recorder

// LogTool logs events through logrus.
type LogTool = profiling.LogTool

// MetricsTool exports events as Prometheus metrics.
type MetricsTool = profiling.MetricsTool

// KernelTimer persists events to SQLite.
type KernelTimer = store.KernelTimer

// Register adds a tool to the hub.
func Register(t Tool) { profiling.Register(t) }

// Unregister removes a previously registered tool.
func Unregister(t Tool) { profiling.Unregister(t) }

// Enabled reports whether any tool is registered.
func Enabled() bool { return profiling.Enabled() }

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder { return profiling.NewRecorder() }

// NewLogTool creates a tool logging to logger.
func NewLogTool(logger logrus.FieldLogger) *LogTool { return profiling.NewLogTool(logger) }

// NewMetricsTool creates a tool and registers its collectors with reg.
func NewMetricsTool(reg prometheus.Registerer) (*MetricsTool, error) {
	return profiling.NewMetricsTool(reg)
}

// OpenKernelTimer opens or creates the SQLite database at dbPath.
func OpenKernelTimer(dbPath string, logger logrus.FieldLogger) (*KernelTimer, error) {
	return store.Open(dbPath, logger)
}
