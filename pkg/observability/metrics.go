package observability

import (
	"github.com/aretw0/clubforms/pkg/registry"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Metrics holds the validation collectors.
type Metrics struct {
	Validations *prometheus.CounterVec
	Issues      *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clubforms_validations_total",
				Help: "Total number of validations by schema and outcome",
			},
			[]string{"schema", "outcome"},
		),
		Issues: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clubforms_validation_issues_total",
				Help: "Total number of validation issues by schema and code",
			},
			[]string{"schema", "code"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "clubforms_validation_duration_seconds",
				Help:    "Duration of validations",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
			[]string{"schema"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Validations, m.Issues, m.Duration)
	}
	return m
}

// Observe records one validation event.
func (m *Metrics) Observe(e registry.Event) {
	m.Validations.WithLabelValues(e.Schema, Outcome(e)).Inc()
	for _, issue := range e.Issues {
		m.Issues.WithLabelValues(e.Schema, string(issue.Code)).Inc()
	}
	m.Duration.WithLabelValues(e.Schema).Observe(e.Duration.Seconds())
}

// Outcome classifies an event as valid, invalid (a report), or error.
func Outcome(e registry.Event) string {
	switch {
	case e.Valid():
		return OutcomeValid
	case len(e.Issues) > 0:
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}
