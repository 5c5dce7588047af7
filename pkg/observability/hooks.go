package observability

import (
	"log/slog"

	"github.com/aretw0/clubforms/pkg/registry"
)

// LoggingHooks logs every validation. Successes go to Debug, reports to
// Info with the issue count, and other failures to Warn.
func LoggingHooks(logger *slog.Logger) registry.Hooks {
	return registry.Hooks{
		OnValidate: func(e registry.Event) {
			switch Outcome(e) {
			case OutcomeValid:
				logger.Debug("validation passed", "schema", e.Schema, "duration", e.Duration)
			case OutcomeInvalid:
				logger.Info("validation failed",
					"schema", e.Schema,
					"issues", len(e.Issues),
					"first", e.Issues[0].Error(),
				)
			default:
				logger.Warn("validation error", "schema", e.Schema, "err", e.Err)
			}
		},
	}
}

// Hooks combines logging and metrics into a single registry.Hooks.
// Either argument may be nil.
func Hooks(logger *slog.Logger, m *Metrics) registry.Hooks {
	var logHook func(registry.Event)
	if logger != nil {
		logHook = LoggingHooks(logger).OnValidate
	}
	return registry.Hooks{
		OnValidate: func(e registry.Event) {
			if logHook != nil {
				logHook(e)
			}
			if m != nil {
				m.Observe(e)
			}
		},
	}
}
