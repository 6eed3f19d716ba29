package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
	"github.com/aretw0/automata/pkg/session"
	"github.com/go-chi/chi/v5"
)

// Engine defines the operations of the automata engine served over HTTP.
type Engine interface {
	Validate(raw schema.FSA) (*domain.FSA, error)
	Simulate(ctx context.Context, f *domain.FSA, input string) (*domain.ExecutionPath, error)
	Explore(ctx context.Context, f *domain.FSA, input string, o automata.ExploreOptions) (<-chan domain.Event, error)
	IsDeterministic(f *domain.FSA) bool
	Properties(f *domain.FSA) domain.PropertyReport
	Connectivity(f *domain.FSA) domain.ConnectivityReport
	EpsilonLoops(f *domain.FSA) domain.LoopReport
	Analyze(ctx context.Context, f *domain.FSA) (*domain.AnalysisReport, error)
}

var _ Engine = (*automata.Engine)(nil)

// Server holds the handlers of the HTTP API.
type Server struct {
	Engine   Engine
	Sessions *session.Manager

	logger  *slog.Logger
	metrics http.Handler
}

// Option configures the Server.
type Option func(*Server)

// WithSessions shares a session registry with other adapters.
func WithSessions(m *session.Manager) Option {
	return func(s *Server) {
		s.Sessions = m
	}
}

// WithMetricsHandler exposes h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the logger used by the handlers.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		Engine: engine,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Sessions == nil {
		s.Sessions = session.NewManager(session.WithLogger(s.logger))
	}

	r := chi.NewRouter()
	r.Use(enableCORS)

	r.Post("/simulate", s.Simulate)
	r.Post("/simulate/stream", s.SimulateStream)

	r.Get("/sessions", s.ListSessions)
	r.Delete("/sessions/{id}", s.CancelSession)

	r.Route("/properties", func(r chi.Router) {
		r.Post("/", s.CheckProperties)
		r.Post("/deterministic", s.CheckDeterministic)
		r.Post("/complete", s.CheckComplete)
		r.Post("/connected", s.CheckConnected)
		r.Post("/epsilon-loops", s.DetectEpsilonLoops)
	})
	r.Post("/analyze", s.Analyze)
	r.Post("/graph", s.Graph)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerHTML))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")
		w.Header().Set("Access-Control-Expose-Headers", sessionHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Automata API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	} else if err != nil {
		s.logger.Error("OpenAPI document failed to load", "error", err)
	}

	writeJSON(w, s.logger, http.StatusOK, map[string]string{
		"app":         "automata-http",
		"version":     strings.TrimSpace(automata.Version),
		"api_version": apiVersion,
	})
}

// ListSessions handles the GET /sessions request.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, map[string]any{"sessions": s.Sessions.Active()})
}

// CancelSession handles the DELETE /sessions/{id} request.
func (s *Server) CancelSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Sessions.Cancel(id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Response encode failed", "error", err)
	}
}
