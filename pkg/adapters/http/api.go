package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 4 << 20

// AutomatonRequest is the body of the property and analysis endpoints.
type AutomatonRequest struct {
	FSA schema.FSA `json:"fsa"`
}

// SimulateRequest is the body of POST /simulate.
type SimulateRequest struct {
	FSA   schema.FSA `json:"fsa"`
	Input string     `json:"input"`
}

// SimulateResponse is returned by POST /simulate.
type SimulateResponse struct {
	Accepted   bool                   `json:"accepted"`
	Path       []domain.ExecutionStep `json:"path"`
	FinalState domain.State           `json:"final_state"`
}

// ExploreRequest is the body of POST /simulate/stream.
type ExploreRequest struct {
	FSA      schema.FSA `json:"fsa"`
	Input    string     `json:"input"`
	MaxDepth *int       `json:"max_depth,omitempty"`
}

// GraphRequest is the body of POST /graph.
type GraphRequest struct {
	FSA  schema.FSA            `json:"fsa"`
	Path *domain.ExecutionPath `json:"path,omitempty"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string      `json:"error"`
	Kind  schema.Kind `json:"kind,omitempty"`
}

// errBadRequest marks malformed request bodies.
var errBadRequest = errors.New("invalid request body")

// decode reads a JSON body into v.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

// load decodes the body into req and validates the automaton it carries.
func (s *Server) load(w http.ResponseWriter, r *http.Request, req any, raw func() schema.FSA) (*domain.FSA, bool) {
	if err := decode(w, r, req); err != nil {
		s.writeError(w, err)
		return nil, false
	}
	f, err := s.Engine.Validate(raw())
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return f, true
}

// writeError maps err to a status code and writes {"error": message}.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var verr *schema.ValidationError
	status := http.StatusInternalServerError
	body := ErrorResponse{Error: err.Error()}

	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
		body.Kind = verr.Kind
	case errors.Is(err, errBadRequest),
		errors.Is(err, schema.ErrInputTooLarge),
		errors.Is(err, schema.ErrInvalidUTF8),
		errors.Is(err, schema.ErrControlChar):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotDeterministic), errors.Is(err, domain.ErrUnboundedWithLoops):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrSessionNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("Request failed", "error", err)
	} else {
		s.logger.Warn("Request rejected", "status", status, "error", err)
	}
	writeJSON(w, s.logger, status, body)
}

// Simulate handles the POST /simulate request.
func (s *Server) Simulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	f, ok := s.load(w, r, &req, func() schema.FSA { return req.FSA })
	if !ok {
		return
	}

	path, err := s.Engine.Simulate(r.Context(), f, req.Input)
	if err != nil {
		s.writeError(w, err)
		return
	}

	steps := path.Steps
	if steps == nil {
		steps = []domain.ExecutionStep{}
	}
	writeJSON(w, s.logger, http.StatusOK, SimulateResponse{
		Accepted:   path.Accepted,
		Path:       steps,
		FinalState: path.FinalState,
	})
}

// CheckProperties handles the POST /properties request.
func (s *Server) CheckProperties(w http.ResponseWriter, r *http.Request) {
	var req AutomatonRequest
	if f, ok := s.load(w, r, &req, func() schema.FSA { return req.FSA }); ok {
		writeJSON(w, s.logger, http.StatusOK, s.Engine.Properties(f))
	}
}

// CheckDeterministic handles the POST /properties/deterministic request.
func (s *Server) CheckDeterministic(w http.ResponseWriter, r *http.Request) {
	var req AutomatonRequest
	if f, ok := s.load(w, r, &req, func() schema.FSA { return req.FSA }); ok {
		writeJSON(w, s.logger, http.StatusOK, map[string]bool{"deterministic": s.Engine.Properties(f).Deterministic})
	}
}

// CheckComplete handles the POST /properties/complete request.
func (s *Server) CheckComplete(w http.ResponseWriter, r *http.Request) {
	var req AutomatonRequest
	if f, ok := s.load(w, r, &req, func() schema.FSA { return req.FSA }); ok {
		writeJSON(w, s.logger, http.StatusOK, map[string]bool{"complete": s.Engine.Properties(f).Complete})
	}
}

// CheckConnected handles the POST /properties/connected request.
func (s *Server) CheckConnected(w http.ResponseWriter, r *http.Request) {
	var req AutomatonRequest
	if f, ok := s.load(w, r, &req, func() schema.FSA { return req.FSA }); ok {
		writeJSON(w, s.logger, http.StatusOK, s.Engine.Connectivity(f))
	}
}

// DetectEpsilonLoops handles the POST /properties/epsilon-loops request.
func (s *Server) DetectEpsilonLoops(w http.ResponseWriter, r *http.Request) {
	var req AutomatonRequest
	if f, ok := s.load(w, r, &req, func() schema.FSA { return req.FSA }); ok {
		writeJSON(w, s.logger, http.StatusOK, s.Engine.EpsilonLoops(f))
	}
}

// Analyze handles the POST /analyze request.
func (s *Server) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AutomatonRequest
	f, ok := s.load(w, r, &req, func() schema.FSA { return req.FSA })
	if !ok {
		return
	}

	report, err := s.Engine.Analyze(r.Context(), f)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, report)
}

// Graph handles the POST /graph request.
func (s *Server) Graph(w http.ResponseWriter, r *http.Request) {
	var req GraphRequest
	f, ok := s.load(w, r, &req, func() schema.FSA { return req.FSA })
	if !ok {
		return
	}

	var overlay *graph.GraphOverlay
	if req.Path != nil {
		overlay = &graph.GraphOverlay{Path: req.Path}
	}
	writeJSON(w, s.logger, http.StatusOK, map[string]string{"mermaid": graph.GenerateMermaid(f, overlay)})
}
