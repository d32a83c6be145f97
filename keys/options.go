package keys

import (
	"log/slog"
)

type options struct {
	logger        *slog.Logger
	maxConcurrent int
	singleFlight  bool
	onError       func(*Binding, error)
}

// Option configures a Registry or a Dispatcher. Options that do not apply to
// the value being built are ignored.
type Option func(*options)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMaxConcurrent bounds how many actions may run at once. When the bound
// is reached, further matches are dropped and reported as ErrBusy. Zero or
// less means no bound.
func WithMaxConcurrent(n int) Option {
	return func(o *options) { o.maxConcurrent = n }
}

// WithSingleFlight drops a match for a binding whose previous action has not
// yet returned, for example under key repeat.
func WithSingleFlight(on bool) Option {
	return func(o *options) { o.singleFlight = on }
}

// WithErrorHandler sets the function that receives action failures
// (*CallbackError) and dropped invocations (ErrBusy). It is called from the
// action's goroutine or from the dispatch loop, and must not block. The
// default logs them.
func WithErrorHandler(f func(*Binding, error)) Option {
	return func(o *options) { o.onError = f }
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.onError == nil {
		l := o.logger
		o.onError = func(b *Binding, err error) {
			l.Warn("action failed", "binding", b.String(), "err", err)
		}
	}
	return o
}
