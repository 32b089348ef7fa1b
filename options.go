package coopio

// Option configures an [Executor] at construction time, following the
// functional-options pattern used throughout this codebase's ancestry
// for optional, order-independent configuration.
type Option interface {
	apply(*Executor)
}

type optionFunc func(*Executor)

func (f optionFunc) apply(e *Executor) { f(e) }

// WithLogger sets the [Logger] an [Executor] and its [Reactor] emit
// structured events to. The default is a no-op logger.
func WithLogger(logger Logger) Option {
	return optionFunc(func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	})
}
