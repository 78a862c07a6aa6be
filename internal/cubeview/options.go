package cubeview

import "log/slog"

// Option configures a Session or a Controller.
type Option func(*options)

type options struct {
	layout  Layout
	spacing Real
	log     *slog.Logger
	rec     Recorder
}

func defaultOptions() options {
	return options{
		layout:  DefaultLayout,
		spacing: DefaultSpacing,
		log:     slog.Default(),
		rec:     noopRecorder{},
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithLayout selects the word bit layout used for decoding.
func WithLayout(l Layout) Option {
	return func(o *options) { o.layout = l }
}

// WithSpacing sets the distance between neighbouring cells of a slice proxy.
func WithSpacing(s Real) Option {
	return func(o *options) {
		if s > 0 {
			o.spacing = s
		}
	}
}

// WithLogger replaces slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithRecorder installs a metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.rec = r
		}
	}
}
