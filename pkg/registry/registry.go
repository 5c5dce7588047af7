package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/clubforms/pkg/schema"
	"github.com/getkin/kin-openapi/openapi3"
)

// ErrUnknownSchema is returned when no schema is registered under an ID.
var ErrUnknownSchema = errors.New("unknown schema")

// Decoder turns a normalized value into a typed record.
// It receives nil when an optional schema validated an absent input.
type Decoder func(value any) (any, error)

// Entry describes a registered schema.
type Entry struct {
	ID          string
	Description string
	Schema      schema.Type
	Decode      Decoder
}

// Result is the outcome of a successful validation.
type Result struct {
	Schema string `json:"schema"`
	// Value is the normalized input in canonical shape.
	Value any `json:"value"`
	// Record is the typed form of Value.
	Record any `json:"-"`
}

// Event is emitted once per Validate call.
type Event struct {
	Schema   string
	Issues   []schema.Issue
	Err      error
	Duration time.Duration
}

// Valid reports whether the validation succeeded.
func (e Event) Valid() bool { return e.Err == nil }

// Hooks observe validations. Nil functions are skipped.
type Hooks struct {
	OnValidate func(Event)
}

// Registry maps schema IDs to shapes.
// Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
	hooks   []Hooks
}

// Option configures a Registry.
type Option func(*Registry)

// WithHooks registers observability hooks. It may be given more than once.
func WithHooks(h Hooks) Option {
	return func(r *Registry) {
		r.hooks = append(r.hooks, h)
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		entries: make(map[string]Entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a schema to the registry.
// If a schema with the same ID exists, it is overwritten.
func (r *Registry) Register(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[e.ID] = e
}

// Lookup returns the entry registered under id.
func (r *Registry) Lookup(id string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	return e, ok
}

// IDs returns the registered schema IDs in lexical order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Validate checks raw against the schema registered under id.
// A nil raw value is treated as absent input. Validation failures are
// returned as a *schema.Report; an unknown id yields ErrUnknownSchema.
func (r *Registry) Validate(id string, raw any) (Result, error) {
	start := time.Now()
	res, err := r.validate(id, raw)
	r.emit(Event{
		Schema:   id,
		Issues:   schema.Issues(err),
		Err:      err,
		Duration: time.Since(start),
	})
	return res, err
}

func (r *Registry) validate(id string, raw any) (Result, error) {
	entry, ok := r.Lookup(id)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownSchema, id)
	}

	if raw == nil {
		raw = schema.Absent
	}
	value, err := schema.Validate(entry.Schema, raw)
	if err != nil {
		return Result{Schema: id}, err
	}
	if schema.IsAbsent(value) {
		value = nil
	}

	res := Result{Schema: id, Value: value, Record: value}
	if entry.Decode != nil {
		record, err := entry.Decode(value)
		if err != nil {
			return Result{Schema: id}, fmt.Errorf("decode %s: %w", id, err)
		}
		res.Record = record
	}
	return res, nil
}

func (r *Registry) emit(e Event) {
	for _, h := range r.hooks {
		if h.OnValidate != nil {
			h.OnValidate(e)
		}
	}
}

// Describe returns the OpenAPI schema of the entry registered under id.
func (r *Registry) Describe(id string) (*openapi3.Schema, error) {
	entry, ok := r.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSchema, id)
	}
	s := entry.Schema.OpenAPI()
	if s.Description == "" {
		s.Description = entry.Description
	}
	return s, nil
}

// Components returns every registered schema keyed by ID, ready to be used
// as the components/schemas section of an OpenAPI document.
func (r *Registry) Components() openapi3.Schemas {
	out := make(openapi3.Schemas)
	for _, id := range r.IDs() {
		s, err := r.Describe(id)
		if err != nil {
			continue
		}
		out[id] = openapi3.NewSchemaRef("", s)
	}
	return out
}
