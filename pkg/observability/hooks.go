package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/automata/pkg/domain"
)

// LoggingHooks logs the engine lifecycle. Individual paths are logged at Debug.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSimulate: func(ctx context.Context, e *domain.SimulationEvent) {
			logger.Info("simulation",
				"input_len", e.InputLen,
				"steps", e.Steps,
				"accepted", e.Accepted,
			)
		},
		OnExploreStart: func(ctx context.Context, e *domain.ExplorationEvent) {
			logger.Info("exploration_start",
				"session_id", e.SessionID,
				"input_len", e.InputLen,
				"max_depth", e.MaxDepth,
			)
		},
		OnPathFound: func(ctx context.Context, p *domain.ExecutionPath, reason domain.RejectReason) {
			logger.Debug("path_found",
				"final_state", p.FinalState,
				"steps", len(p.Steps),
				"accepted", p.Accepted,
				"reason", reason,
			)
		},
		OnDepthLimit: func(ctx context.Context, e *domain.ExplorationEvent) {
			logger.Warn("depth_limit_reached", "session_id", e.SessionID, "max_depth", e.MaxDepth)
		},
		OnExploreEnd: func(ctx context.Context, e *domain.ExplorationEvent) {
			attrs := []any{"session_id", e.SessionID, "cancelled", e.Cancelled}
			if e.Summary != nil {
				attrs = append(attrs,
					"paths_explored", e.Summary.TotalPathsExplored,
					"accepted", e.Summary.Accepted,
				)
			}
			if e.Err != nil && !e.Cancelled {
				logger.Error("exploration_end", append(attrs, "err", e.Err)...)
				return
			}
			logger.Info("exploration_end", attrs...)
		},
	}
}

// Combine returns hooks calling every non-nil hook of sets, in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		out.OnSimulate = chain(out.OnSimulate, h.OnSimulate)
		out.OnExploreStart = chain(out.OnExploreStart, h.OnExploreStart)
		out.OnPathFound = chain3(out.OnPathFound, h.OnPathFound)
		out.OnDepthLimit = chain(out.OnDepthLimit, h.OnDepthLimit)
		out.OnExploreEnd = chain(out.OnExploreEnd, h.OnExploreEnd)
	}
	return out
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chain3[E, F any](a, b func(context.Context, E, F)) func(context.Context, E, F) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e E, f F) {
		a(ctx, e, f)
		b(ctx, e, f)
	}
}
