package observability_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/aretw0/clubforms/pkg/observability"
	"github.com/aretw0/clubforms/pkg/registry"
	"github.com/aretw0/clubforms/pkg/schema"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invalidEvent() registry.Event {
	issues := []schema.Issue{
		{Path: schema.Path{"url"}, Code: schema.CodeConstraintViolation, Rule: "url", Message: "Invalid url"},
		{Path: schema.Path{"linkName"}, Code: schema.CodeMissingField, Message: "Required"},
	}
	return registry.Event{
		Schema:   "add-user-link",
		Issues:   issues,
		Err:      &schema.Report{Issues: issues},
		Duration: time.Millisecond,
	}
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, observability.OutcomeValid, observability.Outcome(registry.Event{Schema: "x"}))
	assert.Equal(t, observability.OutcomeInvalid, observability.Outcome(invalidEvent()))
	assert.Equal(t, observability.OutcomeError, observability.Outcome(registry.Event{Err: registry.ErrUnknownSchema}))
}

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	m.Observe(registry.Event{Schema: "add-user-link", Duration: time.Millisecond})
	m.Observe(invalidEvent())
	m.Observe(invalidEvent())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validations.WithLabelValues("add-user-link", "valid")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Validations.WithLabelValues("add-user-link", "invalid")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Issues.WithLabelValues("add-user-link", "constraint_violation")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Issues.WithLabelValues("add-user-link", "missing_field")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Duration))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 3)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	hooks := observability.LoggingHooks(logger)

	hooks.OnValidate(registry.Event{Schema: "get-user"})
	hooks.OnValidate(invalidEvent())
	hooks.OnValidate(registry.Event{Schema: "nope", Err: errors.New("unknown schema: nope")})

	out := buf.String()
	assert.Contains(t, out, `level=DEBUG msg="validation passed" schema=get-user`)
	assert.Contains(t, out, `level=INFO msg="validation failed" schema=add-user-link issues=2`)
	assert.Contains(t, out, `level=WARN msg="validation error" schema=nope`)
}

func TestHooks_WiredIntoRegistry(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	m := observability.NewMetrics(nil)

	r := registry.New(registry.WithHooks(observability.Hooks(logger, m)))
	r.Register(registry.Entry{ID: "answer", Schema: schema.Int()})

	_, _ = r.Validate("answer", 1)
	_, _ = r.Validate("answer", "one")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validations.WithLabelValues("answer", "valid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validations.WithLabelValues("answer", "invalid")))
	assert.Contains(t, buf.String(), "validation failed")
	assert.NotContains(t, buf.String(), "validation passed")

	assert.NotPanics(t, func() {
		observability.Hooks(nil, nil).OnValidate(registry.Event{Schema: "answer"})
	})
}
