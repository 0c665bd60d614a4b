package tsvenn

import "log/slog"

// settings is shared by Loader, Batch, Comparer and Pipeline.
type settings struct {
	logger  *slog.Logger
	arity   ArityPolicy
	naming  TableNaming
	failure FailurePolicy
}

func newSettings(opts []Option) settings {
	s := settings{
		logger:  slog.New(slog.DiscardHandler),
		arity:   ArityStrict,
		naming:  TableNamePath,
		failure: ContinueOnError,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Option configures a Loader, Batch, Comparer or Pipeline. Options that do
// not apply to the value being built are ignored.
type Option func(*settings)

// WithLogger sets the structured logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithArityPolicy sets how records of the wrong width are handled.
func WithArityPolicy(p ArityPolicy) Option {
	return func(s *settings) {
		s.arity = p
	}
}

// WithTableNaming sets how source identifiers become table names.
func WithTableNaming(n TableNaming) Option {
	return func(s *settings) {
		s.naming = n
	}
}

// WithFailurePolicy sets whether a batch stops at the first failed pair.
func WithFailurePolicy(p FailurePolicy) Option {
	return func(s *settings) {
		s.failure = p
	}
}
