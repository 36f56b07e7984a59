package profiling

import "sync"

// Recorder keeps a copy of every completed event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Begin implements Tool.
func (r *Recorder) Begin(*Event) {}

// End implements Tool.
func (r *Recorder) End(ev *Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *ev)
}

// Events returns the completed events in completion order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Labels returns the labels of the completed events of the given kind.
func (r *Recorder) Labels(kind Kind) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var labels []string
	for _, ev := range r.events {
		if ev.Kind == kind {
			labels = append(labels, ev.Label)
		}
	}
	return labels
}

// Reset drops every recorded event.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
