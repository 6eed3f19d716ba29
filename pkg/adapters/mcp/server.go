package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
	"github.com/aretw0/automata/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"
)

// Engine defines the operations the MCP server exposes as tools.
type Engine interface {
	Validate(raw schema.FSA) (*domain.FSA, error)
	Simulate(ctx context.Context, f *domain.FSA, input string) (*domain.ExecutionPath, error)
	Explore(ctx context.Context, f *domain.FSA, input string, o automata.ExploreOptions) (<-chan domain.Event, error)
	EpsilonLoops(f *domain.FSA) domain.LoopReport
	Analyze(ctx context.Context, f *domain.FSA) (*domain.AnalysisReport, error)
}

var _ Engine = (*automata.Engine)(nil)

// SimulateResult is the structured output of the simulate tool.
type SimulateResult struct {
	Accepted   bool                   `json:"accepted" jsonschema_description:"Whether the input was accepted"`
	Path       []domain.ExecutionStep `json:"path" jsonschema_description:"Transitions taken, in order"`
	FinalState domain.State           `json:"final_state" jsonschema_description:"State the run stopped in"`
}

// PathResult is one completed branch of an exploration.
type PathResult struct {
	Accepted   bool                   `json:"accepted"`
	Path       []domain.ExecutionStep `json:"path"`
	FinalState domain.State           `json:"final_state"`
	Reason     domain.RejectReason    `json:"reason,omitempty"`
}

// ExploreResult is the structured output of the explore tool.
type ExploreResult struct {
	SessionID string          `json:"session_id" jsonschema_description:"Session the exploration ran under"`
	Paths     []PathResult    `json:"paths" jsonschema_description:"Completed branches, in discovery order"`
	Summary   *domain.Summary `json:"summary,omitempty" jsonschema_description:"Totals, absent when the run was cancelled; truncated when the path cap stopped the search"`
}

// DefaultMaxPaths caps the paths collected by one explore call.
const DefaultMaxPaths = 1000

// Server wraps the engine and exposes it as an MCP server.
type Server struct {
	engine    Engine
	sessions  *session.Manager
	logger    *slog.Logger
	maxPaths  int
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithSessions shares a session registry with other adapters.
func WithSessions(m *session.Manager) Option {
	return func(s *Server) {
		s.sessions = m
	}
}

// WithLogger sets the logger used by the tool handlers.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxPaths caps the paths an explore call collects when the request sets
// no max_paths. Non-positive values keep DefaultMaxPaths.
func WithMaxPaths(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxPaths = n
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		logger:    slog.Default(),
		maxPaths:  DefaultMaxPaths,
		mcpServer: server.NewMCPServer("automata-mcp", strings.TrimSpace(automata.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sessions == nil {
		s.sessions = session.NewManager(session.WithLogger(s.logger))
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when ctx is done.
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

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

const fsaDescription = "Automaton document: an object with states, alphabet, transitions, startingState and acceptingStates, or the same document as a JSON or YAML string"

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("simulate",
		mcp.WithDescription("Run a deterministic automaton on an input string."),
		mcp.WithObject("fsa", mcp.Required(), mcp.Description(fsaDescription)),
		mcp.WithString("input", mcp.Required(), mcp.Description("Input string, one symbol per character")),
		mcp.WithOutputSchema[SimulateResult](),
	), mcp.NewStructuredToolHandler(s.handleSimulate))

	s.mcpServer.AddTool(mcp.NewTool("explore",
		mcp.WithDescription("Enumerate every computation path of a nondeterministic automaton on an input string."),
		mcp.WithObject("fsa", mcp.Required(), mcp.Description(fsaDescription)),
		mcp.WithString("input", mcp.Required(), mcp.Description("Input string, one symbol per character")),
		mcp.WithNumber("max_depth", mcp.Description("Maximum consecutive epsilon moves per branch; -1 for unbounded")),
		mcp.WithNumber("max_paths", mcp.Description("Stop after this many completed paths; summary.truncated reports the cut")),
		mcp.WithOutputSchema[ExploreResult](),
	), mcp.NewStructuredToolHandler(s.handleExplore))

	s.mcpServer.AddTool(mcp.NewTool("check_properties",
		mcp.WithDescription("Report determinism, completeness, connectivity and epsilon loops of an automaton."),
		mcp.WithObject("fsa", mcp.Required(), mcp.Description(fsaDescription)),
		mcp.WithOutputSchema[domain.AnalysisReport](),
	), mcp.NewStructuredToolHandler(s.handleCheckProperties))

	s.mcpServer.AddTool(mcp.NewTool("detect_epsilon_loops",
		mcp.WithDescription("List the epsilon cycles of an automaton and whether the start state reaches them."),
		mcp.WithObject("fsa", mcp.Required(), mcp.Description(fsaDescription)),
		mcp.WithOutputSchema[domain.LoopReport](),
	), mcp.NewStructuredToolHandler(s.handleDetectEpsilonLoops))

	s.mcpServer.AddTool(mcp.NewTool("render_graph",
		mcp.WithDescription("Render an automaton as a Mermaid flowchart."),
		mcp.WithObject("fsa", mcp.Required(), mcp.Description(fsaDescription)),
	), s.handleRenderGraph)
}

func (s *Server) load(args map[string]any) (*domain.FSA, toolArgs, error) {
	in, err := decodeArgs(args)
	if err != nil {
		return nil, in, err
	}
	f, err := s.engine.Validate(in.FSA)
	if err != nil {
		return nil, in, err
	}
	return f, in, nil
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (SimulateResult, error) {
	f, in, err := s.load(args)
	if err != nil {
		return SimulateResult{}, err
	}

	path, err := s.engine.Simulate(ctx, f, in.Input)
	if err != nil {
		return SimulateResult{}, fmt.Errorf("simulate failed: %w", err)
	}

	steps := path.Steps
	if steps == nil {
		steps = []domain.ExecutionStep{}
	}
	return SimulateResult{Accepted: path.Accepted, Path: steps, FinalState: path.FinalState}, nil
}

func (s *Server) handleExplore(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (ExploreResult, error) {
	f, in, err := s.load(args)
	if err != nil {
		return ExploreResult{}, err
	}

	maxPaths := s.maxPaths
	if in.MaxPaths != nil && *in.MaxPaths > 0 && *in.MaxPaths < maxPaths {
		maxPaths = *in.MaxPaths
	}

	sess := s.sessions.Start(ctx)
	defer s.sessions.Complete(sess.ID)

	events, err := s.engine.Explore(sess.Context(), f, in.Input, automata.ExploreOptions{
		MaxDepth:  in.MaxDepth,
		MaxPaths:  &maxPaths,
		SessionID: sess.ID,
	})
	if err != nil {
		return ExploreResult{}, fmt.Errorf("explore failed: %w", err)
	}

	result := ExploreResult{SessionID: sess.ID, Paths: []PathResult{}}
	for ev := range events {
		switch ev.Type {
		case domain.EventAcceptingPath, domain.EventRejectedPath:
			result.Paths = append(result.Paths, PathResult{
				Accepted:   ev.Type == domain.EventAcceptingPath,
				Path:       ev.Path.Steps,
				FinalState: ev.Path.FinalState,
				Reason:     ev.Reason,
			})
		case domain.EventSummary:
			result.Summary = ev.Summary
		case domain.EventError:
			return ExploreResult{}, fmt.Errorf("explore failed: %s", ev.Message)
		}
	}

	if err := sess.Context().Err(); err != nil && result.Summary == nil {
		s.logger.Info("MCP Explore: cancelled", "session_id", sess.ID, "paths", len(result.Paths))
		return ExploreResult{}, fmt.Errorf("explore cancelled: %w", err)
	}
	return result, nil
}

func (s *Server) handleCheckProperties(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (domain.AnalysisReport, error) {
	f, _, err := s.load(args)
	if err != nil {
		return domain.AnalysisReport{}, err
	}
	report, err := s.engine.Analyze(ctx, f)
	if err != nil {
		return domain.AnalysisReport{}, fmt.Errorf("analyze failed: %w", err)
	}
	return *report, nil
}

func (s *Server) handleDetectEpsilonLoops(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (domain.LoopReport, error) {
	f, _, err := s.load(args)
	if err != nil {
		return domain.LoopReport{}, err
	}
	return s.engine.EpsilonLoops(f), nil
}

func (s *Server) handleRenderGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f, _, err := s.load(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(f, nil)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("automata://sessions", "Active explorations",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		text, err := sessionsJSON(s.sessions)
		if err != nil {
			return nil, fmt.Errorf("failed to list sessions: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "automata://sessions",
				MIMEType: "application/json",
				Text:     text,
			},
		}, nil
	})
}
