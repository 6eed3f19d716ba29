package automata

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/analysis"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/schema"
)

// Unbounded disables the epsilon-depth limit of an exploration.
const Unbounded = runtime.Unbounded

// Engine is the high-level entry point of the library. It validates automata,
// runs them and analyzes them. An Engine holds no per-request state and is safe
// for concurrent use.
type Engine struct {
	cache            ports.ReportCache
	hooks            domain.LifecycleHooks
	logger           *slog.Logger
	defaultMaxDepth  int
	progressInterval int
	maxPaths         int
	maxInputSize     int
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithCache stores analysis reports, keyed by automaton fingerprint.
func WithCache(cache ports.ReportCache) Option {
	return func(e *Engine) {
		e.cache = cache
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithDefaultMaxDepth sets the epsilon-depth limit used when an exploration does
// not specify one. Negative values mean Unbounded (the default).
func WithDefaultMaxDepth(depth int) Option {
	return func(e *Engine) {
		e.defaultMaxDepth = depth
	}
}

// WithProgressInterval sets the number of expansions between progress events.
func WithProgressInterval(n int) Option {
	return func(e *Engine) {
		e.progressInterval = n
	}
}

// WithMaxPaths caps the number of paths an exploration reports (0 = no cap).
func WithMaxPaths(n int) Option {
	return func(e *Engine) {
		e.maxPaths = n
	}
}

// WithMaxInputSize bounds the byte length of input strings.
// Zero uses schema.MaxInputSize.
func WithMaxInputSize(n int) Option {
	return func(e *Engine) {
		e.maxInputSize = n
	}
}

// New initializes an Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{
		defaultMaxDepth:  Unbounded,
		progressInterval: runtime.DefaultProgressInterval,
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return eng
}

// Validate turns a raw automaton document into a validated FSA.
func (e *Engine) Validate(raw schema.FSA) (*domain.FSA, error) {
	return schema.Validate(raw)
}

// Load parses a JSON or YAML document and validates it.
func (e *Engine) Load(data []byte) (*domain.FSA, error) {
	raw, err := schema.Parse(data, "")
	if err != nil {
		return nil, err
	}
	return schema.Validate(raw)
}

// LoadFile reads, parses and validates an automaton file.
func (e *Engine) LoadFile(path string) (*domain.FSA, error) {
	raw, err := schema.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return schema.Validate(raw)
}

// Simulate runs a deterministic automaton on input.
// It returns domain.ErrNotDeterministic for anything else.
func (e *Engine) Simulate(ctx context.Context, f *domain.FSA, input string) (*domain.ExecutionPath, error) {
	if err := schema.CheckInput(input, e.maxInputSize); err != nil {
		return nil, err
	}
	symbols := runtime.Symbols(input)
	path, err := runtime.Simulate(f, symbols)
	if err != nil {
		return nil, err
	}

	if e.hooks.OnSimulate != nil {
		e.hooks.OnSimulate(ctx, &domain.SimulationEvent{
			Timestamp: time.Now(),
			InputLen:  len(symbols),
			Accepted:  path.Accepted,
			Steps:     len(path.Steps),
		})
	}
	return path, nil
}

// ExploreOptions tunes a single exploration.
type ExploreOptions struct {
	// MaxDepth overrides the engine default when set.
	MaxDepth *int
	// MaxPaths overrides the engine path limit when set. Zero means unlimited.
	MaxPaths *int
	// SessionID tags hooks and log records.
	SessionID string
}

// Explore starts a nondeterministic search on input and returns its event stream.
// The stream ends with summary and end events, with an error event, or is simply
// closed once ctx is cancelled.
func (e *Engine) Explore(ctx context.Context, f *domain.FSA, input string, o ExploreOptions) (<-chan domain.Event, error) {
	if err := schema.CheckInput(input, e.maxInputSize); err != nil {
		return nil, err
	}
	depth := e.defaultMaxDepth
	if o.MaxDepth != nil {
		depth = *o.MaxDepth
	}
	maxPaths := e.maxPaths
	if o.MaxPaths != nil {
		maxPaths = *o.MaxPaths
	}

	return runtime.Explore(ctx, f, runtime.Symbols(input),
		runtime.WithMaxDepth(depth),
		runtime.WithProgressInterval(e.progressInterval),
		runtime.WithMaxPaths(maxPaths),
		runtime.WithLifecycleHooks(e.hooks),
		runtime.WithLogger(e.logger),
		runtime.WithSessionID(o.SessionID),
	)
}

// IsDeterministic reports whether Simulate can run f.
func (e *Engine) IsDeterministic(f *domain.FSA) bool {
	return analysis.IsDeterministic(f)
}

// Properties runs the determinism, completeness and connectivity checks.
func (e *Engine) Properties(f *domain.FSA) domain.PropertyReport {
	return analysis.Properties(f)
}

// Connectivity lists the states unreachable from the starting state.
func (e *Engine) Connectivity(f *domain.FSA) domain.ConnectivityReport {
	return analysis.Connectivity(f)
}

// EpsilonLoops reports the cycles of the epsilon-only subgraph.
func (e *Engine) EpsilonLoops(f *domain.FSA) domain.LoopReport {
	return analysis.DetectEpsilonLoops(f)
}

// Analyze runs every structural check. With a cache configured, reports are
// looked up by fingerprint first; cache failures are logged and otherwise ignored.
func (e *Engine) Analyze(ctx context.Context, f *domain.FSA) (*domain.AnalysisReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.cache == nil {
		return analysis.Analyze(f), nil
	}

	fingerprint := f.Fingerprint()
	report, err := e.cache.Get(ctx, fingerprint)
	if err == nil {
		e.logger.Debug("analysis cache hit", "fingerprint", fingerprint)
		return report, nil
	}
	if !errors.Is(err, ports.ErrCacheMiss) {
		e.logger.Warn("analysis cache lookup failed", "fingerprint", fingerprint, "err", err)
	}

	report = analysis.Analyze(f)
	if err := e.cache.Put(ctx, report); err != nil {
		e.logger.Warn("analysis cache store failed", "fingerprint", fingerprint, "err", err)
	}
	return report, nil
}
