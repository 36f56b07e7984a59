package algorithms

// Default labels reported to the profiling hub when no label is given.
const (
	CopyBackwardIteratorLabel = "stdalgo::copy_backward_iterator_api_default"
	CopyBackwardViewLabel     = "stdalgo::copy_backward_view_api_default"
)

// Option configures a single algorithm call.
type Option func(*options)

type options struct {
	label string
}

// WithLabel sets the label the launch is reported under. Labels only
// affect instrumentation, never results.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

func resolve(defaultLabel string, opts []Option) options {
	o := options{label: defaultLabel}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
