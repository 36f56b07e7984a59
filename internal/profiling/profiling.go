// Package profiling is the instrumentation hub. Execution spaces report
// every labeled launch to it and it fans the events out to the registered
// tools. With no tools registered every entry point is a no-op.
package profiling

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
)

// Kind classifies an instrumentation event.
type Kind int

// Event kinds.
const (
	KindParallelFor Kind = iota
	KindParallelTeams
	KindFence
	KindRegion
)

// String returns the kind name used in logs, metrics and storage.
func (k Kind) String() string {
	switch k {
	case KindParallelFor:
		return "parallel_for"
	case KindParallelTeams:
		return "parallel_teams"
	case KindFence:
		return "fence"
	case KindRegion:
		return "region"
	default:
		return "unknown"
	}
}

// Event describes one labeled launch, fence or region.
// Tools must treat events as read-only.
type Event struct {
	ID       ulid.ULID
	Kind     Kind
	Label    string
	Device   string
	Size     int // Number of work items, 0 when not applicable.
	Start    time.Time
	Duration time.Duration // Set before End is delivered.
	Err      error         // Set before End is delivered.
}

// Tool consumes instrumentation events. Begin and End may be called
// concurrently from many goroutines.
type Tool interface {
	Begin(ev *Event)
	End(ev *Event)
}

var (
	mu      sync.RWMutex
	tools   []Tool
	enabled atomic.Bool
)

// Register adds a tool to the hub.
func Register(t Tool) {
	mu.Lock()
	defer mu.Unlock()
	tools = append(tools, t)
	enabled.Store(true)
}

// Unregister removes a previously registered tool.
func Unregister(t Tool) {
	mu.Lock()
	defer mu.Unlock()
	for i, registered := range tools {
		if registered == t {
			tools = append(tools[:i:i], tools[i+1:]...)
			break
		}
	}
	enabled.Store(len(tools) > 0)
}

// Reset removes every registered tool.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	tools = nil
	enabled.Store(false)
}

// Enabled reports whether any tool is registered.
func Enabled() bool {
	return enabled.Load()
}

// Begin starts an event and delivers it to every tool.
// It returns nil when profiling is disabled; End accepts nil.
func Begin(kind Kind, label, device string, size int) *Event {
	if !enabled.Load() {
		return nil
	}

	ev := &Event{
		ID:     ulid.Make(),
		Kind:   kind,
		Label:  label,
		Device: device,
		Size:   size,
		Start:  time.Now(),
	}

	mu.RLock()
	defer mu.RUnlock()
	for _, t := range tools {
		t.Begin(ev)
	}
	return ev
}

// End completes ev with its duration and outcome and delivers it.
func End(ev *Event, err error) {
	if ev == nil {
		return
	}

	ev.Duration = time.Since(ev.Start)
	ev.Err = err

	mu.RLock()
	defer mu.RUnlock()
	for _, t := range tools {
		t.End(ev)
	}
}
