package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/clubforms"
	"github.com/aretw0/clubforms/pkg/registry"
	"github.com/aretw0/clubforms/pkg/schema"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// APIVersion is the version of the HTTP contract.
const APIVersion = "1"

// DefaultMaxBodyBytes bounds request bodies when no limit is configured.
const DefaultMaxBodyBytes = 1 << 20

// Registry is the subset of registry.Registry the handler relies on.
type Registry interface {
	IDs() []string
	Lookup(id string) (registry.Entry, bool)
	Describe(id string) (*openapi3.Schema, error)
	Document(title, version string) map[string]any
	Validate(id string, raw any) (registry.Result, error)
}

// Server serves the validation API.
type Server struct {
	Registry     Registry
	Logger       *slog.Logger
	MaxBodyBytes int64
	Metrics      http.Handler
	MetricsPath  string
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.Logger = l }
}

// WithMaxBodyBytes limits the size of validation request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) { s.MaxBodyBytes = n }
}

// WithMetrics mounts h (typically promhttp) at path.
func WithMetrics(path string, h http.Handler) Option {
	return func(s *Server) {
		s.MetricsPath = path
		s.Metrics = h
	}
}

// NewHandler creates a new HTTP handler for the registry.
func NewHandler(reg Registry, opts ...Option) http.Handler {
	s := &Server{
		Registry:     reg,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/schemas", s.ListSchemas)
	r.Get("/schemas/{id}", s.GetSchema)
	r.Get("/openapi.json", s.GetOpenAPI)
	r.Post("/validate/{id}", s.Validate)
	if s.Metrics != nil {
		r.Handle(s.MetricsPath, s.Metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "clubforms-http",
		"version":     strings.TrimSpace(clubforms.Version),
		"api_version": APIVersion,
	})
}

type schemaSummary struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// ListSchemas handles the GET /schemas request.
func (s *Server) ListSchemas(w http.ResponseWriter, r *http.Request) {
	ids := s.Registry.IDs()
	out := make([]schemaSummary, 0, len(ids))
	for _, id := range ids {
		e, _ := s.Registry.Lookup(id)
		out = append(out, schemaSummary{ID: id, Description: e.Description})
	}
	writeJSON(w, http.StatusOK, map[string]any{"schemas": out})
}

// GetSchema handles the GET /schemas/{id} request.
func (s *Server) GetSchema(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	desc, err := s.Registry.Describe(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, desc)
}

// GetOpenAPI handles the GET /openapi.json request.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Registry.Document("clubforms", strings.TrimSpace(clubforms.Version)))
}

// Validate handles the POST /validate/{id} request. An empty body stands
// for absent input.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.Registry.Lookup(id); !ok {
		writeError(w, http.StatusNotFound, registry.ErrUnknownSchema)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var raw any
	if len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, &raw); err != nil {
			s.Logger.Warn("Validate: invalid request body", "schema", id, "error", err)
			writeError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
			return
		}
	}

	res, err := s.Registry.Validate(id, raw)
	if err != nil {
		var report *schema.Report
		switch {
		case errors.As(err, &report):
			writeJSON(w, http.StatusUnprocessableEntity, report)
		case errors.Is(err, registry.ErrUnknownSchema):
			writeError(w, http.StatusNotFound, err)
		default:
			s.Logger.Error("Validate failed", "schema", id, "error", err)
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
