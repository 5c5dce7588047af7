package clubforms

import (
	"log/slog"
	"sync"

	"github.com/aretw0/clubforms/pkg/forms"
	"github.com/aretw0/clubforms/pkg/observability"
	"github.com/aretw0/clubforms/pkg/registry"
)

type settings struct {
	logger   *slog.Logger
	metrics  *observability.Metrics
	dispatch forms.Dispatch
	hooks    []registry.Hooks
}

// Option configures New.
type Option func(*settings)

// WithLogger logs every validation to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithMetrics records every validation in m.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *settings) {
		s.metrics = m
	}
}

// WithFeedbackDispatch selects how feedback questions resolve their variant.
func WithFeedbackDispatch(d forms.Dispatch) Option {
	return func(s *settings) {
		s.dispatch = d
	}
}

// WithHooks adds custom validation hooks.
func WithHooks(h registry.Hooks) Option {
	return func(s *settings) {
		s.hooks = append(s.hooks, h)
	}
}

// New returns a registry holding every club form, wired to the configured
// logger, metrics and hooks.
func New(opts ...Option) *registry.Registry {
	s := settings{dispatch: forms.DispatchFallback}
	for _, opt := range opts {
		opt(&s)
	}

	var regOpts []registry.Option
	if s.logger != nil || s.metrics != nil {
		regOpts = append(regOpts, registry.WithHooks(observability.Hooks(s.logger, s.metrics)))
	}
	for _, h := range s.hooks {
		regOpts = append(regOpts, registry.WithHooks(h))
	}

	r := registry.New(regOpts...)
	forms.Register(r, forms.WithFeedbackDispatch(s.dispatch))
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *registry.Registry
)

// Default returns a shared registry built with no options.
func Default() *registry.Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New()
	})
	return defaultRegistry
}

// Validate checks raw against the form registered under id in the default
// registry. See registry.Registry.Validate.
func Validate(id string, raw any) (registry.Result, error) {
	return Default().Validate(id, raw)
}
