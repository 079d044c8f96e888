package enumgo

type options struct {
	logger  *Logger
	inspect TagInspector
}

// Option configures cache construction behavior.
type Option func(*options)

// WithLogger configures debug logging during cache construction.
//
// If nil is passed, the noop logger is used.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithTagInspector replaces the tag inspection hook used during construction
// to extract the preferred textual tag and the force-primary marker from a
// member's tag list.
//
// The default inspector recognizes TextTag and PrimaryTag.
func WithTagInspector(ti TagInspector) Option {
	return func(o *options) {
		if ti != nil {
			o.inspect = ti
		}
	}
}

func defaultOptions() *options {
	return &options{
		logger:  NoopLogger(),
		inspect: DefaultTagInspector,
	}
}
