package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/clubforms"
	"github.com/aretw0/clubforms/pkg/registry"
	"github.com/aretw0/clubforms/pkg/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ValidateResponse is the structured result of the validate_form tool.
type ValidateResponse struct {
	Schema string         `json:"schema" jsonschema_description:"The schema the input was checked against"`
	Valid  bool           `json:"valid" jsonschema_description:"Whether the input satisfied the schema"`
	Value  any            `json:"value,omitempty" jsonschema_description:"The normalized record when valid"`
	Errors []schema.Issue `json:"errors,omitempty" jsonschema_description:"Every issue found when invalid"`
}

// SchemaInfo describes one registered form.
type SchemaInfo struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// ListResponse is the structured result of the list_schemas tool.
type ListResponse struct {
	Schemas []SchemaInfo `json:"schemas"`
}

type validateArgs struct {
	Schema string `json:"schema"`
	Input  string `json:"input"`
}

// Registry is the subset of registry.Registry the server relies on.
type Registry interface {
	IDs() []string
	Lookup(id string) (registry.Entry, bool)
	Document(title, version string) map[string]any
	Validate(id string, raw any) (registry.Result, error)
}

// Server exposes the form registry as an MCP Server.
type Server struct {
	registry  Registry
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(reg Registry) *Server {
	s := &Server{
		registry:  reg,
		mcpServer: server.NewMCPServer("clubforms-mcp", strings.TrimSpace(clubforms.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx
// is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: validate_form
	validateTool := mcp.NewTool("validate_form",
		mcp.WithDescription("Validate a club form record. Returns the normalized record or every validation issue."),
		mcp.WithString("schema", mcp.Required(), mcp.Description("Schema ID, as returned by list_schemas")),
		mcp.WithString("input", mcp.Description("JSON document to validate (omit for absent input)")),
		mcp.WithOutputSchema[ValidateResponse](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))

	// TOOL: list_schemas
	listTool := mcp.NewTool("list_schemas",
		mcp.WithDescription("List the schema IDs accepted by validate_form."),
		mcp.WithOutputSchema[ListResponse](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleList))
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args validateArgs) (ValidateResponse, error) {
	var raw any
	if strings.TrimSpace(args.Input) != "" {
		if err := json.Unmarshal([]byte(args.Input), &raw); err != nil {
			return ValidateResponse{}, fmt.Errorf("input is not valid JSON: %w", err)
		}
	}

	res, err := s.registry.Validate(args.Schema, raw)
	if err != nil {
		var report *schema.Report
		if errors.As(err, &report) {
			return ValidateResponse{Schema: args.Schema, Errors: report.Issues}, nil
		}
		return ValidateResponse{}, err
	}
	return ValidateResponse{Schema: args.Schema, Valid: true, Value: res.Value}, nil
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ListResponse, error) {
	ids := s.registry.IDs()
	out := ListResponse{Schemas: make([]SchemaInfo, 0, len(ids))}
	for _, id := range ids {
		e, _ := s.registry.Lookup(id)
		out.Schemas = append(out.Schemas, SchemaInfo{ID: id, Description: e.Description})
	}
	return out, nil
}

func (s *Server) registerResources() {
	// EXPOSE: clubforms://openapi
	s.mcpServer.AddResource(mcp.NewResource("clubforms://openapi", "OpenAPI description of every form",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.registry.Document("clubforms", strings.TrimSpace(clubforms.Version)))
		if err != nil {
			return nil, fmt.Errorf("failed to encode document: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "clubforms://openapi",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
