package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/automata/pkg/analysis"
	"github.com/aretw0/automata/pkg/domain"
)

// Unbounded disables the epsilon-depth limit. It is only accepted when no epsilon
// loop is reachable from the starting state.
const Unbounded = -1

// DefaultProgressInterval is the number of configuration expansions between progress events.
const DefaultProgressInterval = 64

// errPathLimit stops the search once the configured number of paths was reported.
var errPathLimit = errors.New("path limit reached")

// ExploreOption configures a single exploration.
type ExploreOption func(*explorer)

// WithMaxDepth bounds the number of consecutive epsilon moves along a branch.
// Negative values mean Unbounded.
func WithMaxDepth(depth int) ExploreOption {
	return func(x *explorer) {
		if depth < 0 {
			depth = Unbounded
		}
		x.maxDepth = depth
	}
}

// WithProgressInterval sets how many expansions happen between progress events.
// Zero or negative values restore the default.
func WithProgressInterval(n int) ExploreOption {
	return func(x *explorer) {
		if n <= 0 {
			n = DefaultProgressInterval
		}
		x.progressEvery = n
	}
}

// WithMaxPaths stops the search after n reported paths (0 = no limit).
func WithMaxPaths(n int) ExploreOption {
	return func(x *explorer) {
		x.maxPaths = n
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) ExploreOption {
	return func(x *explorer) {
		x.hooks = hooks
	}
}

// WithLogger sets the logger used for session lifecycle messages.
func WithLogger(logger *slog.Logger) ExploreOption {
	return func(x *explorer) {
		if logger != nil {
			x.logger = logger
		}
	}
}

// WithSessionID tags hooks and logs with the session the exploration belongs to.
func WithSessionID(id string) ExploreOption {
	return func(x *explorer) {
		x.sessionID = id
	}
}

// configKey identifies a configuration on the current branch.
type configKey struct {
	pos   int
	state domain.State
	depth int
}

// explorer owns the whole search state of one session. It is never shared.
type explorer struct {
	fsa   *domain.FSA
	input []domain.Symbol

	maxDepth      int
	progressEvery int
	maxPaths      int
	hooks         domain.LifecycleHooks
	logger        *slog.Logger
	sessionID     string

	out chan<- domain.Event

	onBranch      map[configKey]struct{}
	steps         []domain.ExecutionStep
	expansions    int
	pathsExplored int
	accepted      bool
	depthLimitHit bool
	truncated     bool
}

// Explore enumerates every path through f that consumes exactly input, streaming
// each one as soon as it is found.
//
// Branches are expanded depth-first. From every configuration symbol transitions
// are tried before epsilon transitions, and targets in lexical order. A branch ends
// as accepting once the input is consumed on an accepting state; it is rejected on
// a dead end or when the epsilon-depth limit cuts it.
//
// The returned channel is unbuffered, so the search advances only as fast as the
// consumer reads. A completed search ends with progress, summary and end events.
// Cancelling ctx stops the search within one expansion step; no event is sent after
// that and the channel is closed.
//
// Unbounded exploration is refused with domain.ErrUnboundedWithLoops when an
// epsilon loop is reachable from the starting state.
func Explore(ctx context.Context, f *domain.FSA, input []domain.Symbol, opts ...ExploreOption) (<-chan domain.Event, error) {
	x := &explorer{
		fsa:           f,
		input:         input,
		maxDepth:      Unbounded,
		progressEvery: DefaultProgressInterval,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		onBranch:      make(map[configKey]struct{}),
	}
	for _, opt := range opts {
		opt(x)
	}

	if x.maxDepth == Unbounded && analysis.HasReachableEpsilonLoop(f) {
		return nil, domain.ErrUnboundedWithLoops
	}

	out := make(chan domain.Event)
	x.out = out
	go x.run(ctx, out)
	return out, nil
}

func (x *explorer) run(ctx context.Context, out chan domain.Event) {
	defer close(out)
	defer x.release()
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("explorer panic: %v", r)
			x.logger.Error("exploration failed", "session_id", x.sessionID, "error", err)
			x.emitExploreEnd(ctx, nil, err)
			_ = x.emit(ctx, domain.Event{Type: domain.EventError, Message: err.Error()})
		}
	}()

	x.logger.Debug("exploration started",
		"session_id", x.sessionID,
		"input_len", len(x.input),
		"max_depth", x.maxDepth,
	)
	x.emitExploreStart(ctx)

	err := x.expand(ctx, 0, x.fsa.StartingState, 0)
	if err != nil && !errors.Is(err, errPathLimit) {
		if ctx.Err() != nil {
			x.logger.Debug("exploration cancelled",
				"session_id", x.sessionID,
				"paths_explored", x.pathsExplored,
			)
			x.emitExploreEnd(ctx, nil, ctx.Err())
			return
		}
		x.logger.Error("exploration failed", "session_id", x.sessionID, "error", err)
		x.emitExploreEnd(ctx, nil, err)
		_ = x.emit(ctx, domain.Event{Type: domain.EventError, Message: err.Error()})
		return
	}

	summary := &domain.Summary{
		Accepted:           x.accepted,
		TotalPathsExplored: x.pathsExplored,
		DepthLimitReached:  x.depthLimitHit,
		Truncated:          x.truncated,
	}
	for _, ev := range []domain.Event{
		{Type: domain.EventProgress, Progress: x.progress()},
		{Type: domain.EventSummary, Summary: summary},
		{Type: domain.EventEnd},
	} {
		if err := x.emit(ctx, ev); err != nil {
			x.emitExploreEnd(ctx, nil, err)
			return
		}
	}

	x.logger.Debug("exploration finished",
		"session_id", x.sessionID,
		"paths_explored", x.pathsExplored,
		"accepted", x.accepted,
		"depth_limit_reached", x.depthLimitHit,
	)
	x.emitExploreEnd(ctx, summary, nil)
}

// expand explores every branch rooted at configuration (pos, state, depth).
// The caller has already pushed the step leading here.
func (x *explorer) expand(ctx context.Context, pos int, state domain.State, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	x.expansions++
	if x.expansions%x.progressEvery == 0 {
		if err := x.emit(ctx, domain.Event{Type: domain.EventProgress, Progress: x.progress()}); err != nil {
			return err
		}
	}

	key := x.key(pos, state, depth)
	x.onBranch[key] = struct{}{}
	defer delete(x.onBranch, key)

	if pos == len(x.input) && x.fsa.IsAccepting(state) {
		return x.report(ctx, state, true, "")
	}

	moved := false

	if pos < len(x.input) {
		sym := x.input[pos]
		for _, next := range x.fsa.Targets(state, sym) {
			if x.visited(pos+1, next, 0) {
				continue
			}
			moved = true
			if err := x.step(ctx, state, sym, next, pos+1, 0); err != nil {
				return err
			}
		}
	}

	if eps := x.fsa.EpsilonTargets(state); len(eps) > 0 {
		if x.maxDepth != Unbounded && depth >= x.maxDepth {
			return x.abandon(ctx, state)
		}
		for _, next := range eps {
			if x.visited(pos, next, depth+1) {
				continue
			}
			moved = true
			if err := x.step(ctx, state, domain.Epsilon, next, pos, depth+1); err != nil {
				return err
			}
		}
	}

	if moved {
		return nil
	}
	if pos < len(x.input) {
		return x.report(ctx, state, false, domain.ReasonNoTransition)
	}
	return x.report(ctx, state, false, domain.ReasonInputExhausted)
}

func (x *explorer) step(ctx context.Context, from domain.State, sym domain.Symbol, to domain.State, pos, depth int) error {
	x.steps = append(x.steps, domain.ExecutionStep{From: from, Symbol: sym, To: to})
	err := x.expand(ctx, pos, to, depth)
	x.steps = x.steps[:len(x.steps)-1]
	return err
}

// key drops the depth component in unbounded mode, where it is not bounded and
// the branch guard alone must catch epsilon cycles.
func (x *explorer) key(pos int, state domain.State, depth int) configKey {
	if x.maxDepth == Unbounded {
		depth = 0
	}
	return configKey{pos: pos, state: state, depth: depth}
}

// visited is the same-branch duplicate guard, the second search limit next to
// the depth bound. Neither mode can reach it on a search Explore admits: bounded
// branches raise depth on every epsilon move and position on every symbol move,
// and unbounded searches only run when no epsilon loop is reachable. It stays as
// the backstop should either precondition be relaxed.
func (x *explorer) visited(pos int, state domain.State, depth int) bool {
	_, ok := x.onBranch[x.key(pos, state, depth)]
	return ok
}

// abandon reports a branch whose epsilon moves were cut by the depth limit.
func (x *explorer) abandon(ctx context.Context, state domain.State) error {
	if !x.depthLimitHit {
		x.depthLimitHit = true
		if x.hooks.OnDepthLimit != nil {
			x.hooks.OnDepthLimit(ctx, x.explorationEvent())
		}
		if err := x.emit(ctx, domain.Event{Type: domain.EventDepthLimitReached}); err != nil {
			return err
		}
	}
	return x.report(ctx, state, false, domain.ReasonDepthLimit)
}

func (x *explorer) report(ctx context.Context, final domain.State, accepted bool, reason domain.RejectReason) error {
	x.pathsExplored++
	path := &domain.ExecutionPath{
		Steps:      append([]domain.ExecutionStep{}, x.steps...),
		FinalState: final,
		Accepted:   accepted,
	}

	ev := domain.Event{Type: domain.EventRejectedPath, Path: path, Reason: reason}
	if accepted {
		x.accepted = true
		ev = domain.Event{Type: domain.EventAcceptingPath, Path: path}
	}
	if x.hooks.OnPathFound != nil {
		x.hooks.OnPathFound(ctx, path, reason)
	}
	if err := x.emit(ctx, ev); err != nil {
		return err
	}

	if x.maxPaths > 0 && x.pathsExplored >= x.maxPaths {
		x.truncated = true
		return errPathLimit
	}
	return nil
}

// emit blocks until the consumer takes the event or the session is cancelled.
func (x *explorer) emit(ctx context.Context, ev domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case x.out <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (x *explorer) progress() *domain.Progress {
	return &domain.Progress{PathsExplored: x.pathsExplored, DepthLimitReached: x.depthLimitHit}
}

func (x *explorer) release() {
	x.onBranch = nil
	x.steps = nil
}

func (x *explorer) explorationEvent() *domain.ExplorationEvent {
	return &domain.ExplorationEvent{
		Timestamp: time.Now(),
		SessionID: x.sessionID,
		InputLen:  len(x.input),
		MaxDepth:  x.maxDepth,
	}
}

func (x *explorer) emitExploreStart(ctx context.Context) {
	if x.hooks.OnExploreStart != nil {
		x.hooks.OnExploreStart(ctx, x.explorationEvent())
	}
}

func (x *explorer) emitExploreEnd(ctx context.Context, summary *domain.Summary, err error) {
	if x.hooks.OnExploreEnd == nil {
		return
	}
	ev := x.explorationEvent()
	ev.Summary = summary
	ev.Err = err
	ev.Cancelled = err != nil && ctx.Err() != nil
	x.hooks.OnExploreEnd(ctx, ev)
}
