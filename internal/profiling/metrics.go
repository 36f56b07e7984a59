package profiling

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsTool exports event counts and durations as Prometheus metrics.
// Labels become metric label values, so callers should keep the set of
// distinct operation labels bounded.
type MetricsTool struct {
	events   *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetricsTool creates the collectors and registers them with reg.
func NewMetricsTool(reg prometheus.Registerer) (*MetricsTool, error) {
	t := &MetricsTool{
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stdalgo_events_total",
				Help: "Total number of completed launches, fences and regions.",
			},
			[]string{"kind", "label", "device"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stdalgo_event_failures_total",
				Help: "Total number of launches that returned an error.",
			},
			[]string{"kind", "label", "device"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stdalgo_event_duration_seconds",
				Help:    "Duration of launches, fences and regions in seconds.",
				Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
			},
			[]string{"kind", "label", "device"},
		),
	}

	for _, c := range []prometheus.Collector{t.events, t.failures, t.duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return t, nil
}

// Begin implements Tool.
func (t *MetricsTool) Begin(*Event) {}

// End implements Tool.
func (t *MetricsTool) End(ev *Event) {
	kind := ev.Kind.String()
	t.events.WithLabelValues(kind, ev.Label, ev.Device).Inc()
	t.duration.WithLabelValues(kind, ev.Label, ev.Device).Observe(ev.Duration.Seconds())
	if ev.Err != nil {
		t.failures.WithLabelValues(kind, ev.Label, ev.Device).Inc()
	}
}
