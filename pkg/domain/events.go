package domain

import (
	"context"
	"time"
)

// EventType identifies the kind of frame produced by an exploration.
type EventType string

const (
	EventAcceptingPath     EventType = "accepting_path"
	EventRejectedPath      EventType = "rejected_path"
	EventProgress          EventType = "progress"
	EventDepthLimitReached EventType = "depth_limit_reached"
	EventSummary           EventType = "summary"
	EventEnd               EventType = "end"
	EventError             EventType = "error"
)

// RejectReason explains why a path was rejected.
type RejectReason string

const (
	// ReasonNoTransition means no move was possible before the input was exhausted.
	ReasonNoTransition RejectReason = "NoTransition"
	// ReasonInputExhausted means the input was consumed on a non-accepting state.
	ReasonInputExhausted RejectReason = "InputExhaustedNonAccepting"
	// ReasonDepthLimit means the branch was cut by the epsilon-depth limit.
	ReasonDepthLimit RejectReason = "DepthLimitAbandoned"
)

// Progress reports the state of an ongoing search.
type Progress struct {
	PathsExplored     int  `json:"paths_explored"`
	DepthLimitReached bool `json:"depth_limit_reached"`
}

// Summary is emitted once, right before the end of a completed search.
type Summary struct {
	Accepted           bool `json:"accepted"`
	TotalPathsExplored int  `json:"total_paths_explored"`
	DepthLimitReached  bool `json:"depth_limit_reached"`
	Truncated          bool `json:"truncated,omitempty"`
}

// Event is one frame of an exploration stream.
// Only the fields relevant to Type are set.
type Event struct {
	Type     EventType
	Path     *ExecutionPath
	Reason   RejectReason
	Progress *Progress
	Summary  *Summary
	Message  string
}

// Payload returns the wire body of the event, shaped per event type.
func (e Event) Payload() any {
	switch e.Type {
	case EventAcceptingPath:
		return pathPayload{Path: stepsOf(e.Path), FinalState: finalOf(e.Path)}
	case EventRejectedPath:
		return pathPayload{Path: stepsOf(e.Path), FinalState: finalOf(e.Path), Reason: e.Reason}
	case EventProgress:
		return e.Progress
	case EventSummary:
		return e.Summary
	case EventError:
		return map[string]string{"message": e.Message}
	default:
		return struct{}{}
	}
}

type pathPayload struct {
	Path       []ExecutionStep `json:"path"`
	FinalState State           `json:"final_state"`
	Reason     RejectReason    `json:"reason,omitempty"`
}

func stepsOf(p *ExecutionPath) []ExecutionStep {
	if p == nil || p.Steps == nil {
		return []ExecutionStep{}
	}
	return p.Steps
}

func finalOf(p *ExecutionPath) State {
	if p == nil {
		return ""
	}
	return p.FinalState
}

// SimulationEvent describes a finished deterministic run.
type SimulationEvent struct {
	Timestamp time.Time `json:"timestamp"`
	InputLen  int       `json:"input_len"`
	Accepted  bool      `json:"accepted"`
	Steps     int       `json:"steps"`
}

// ExplorationEvent describes the start or the end of a nondeterministic search.
// Summary is only set on end events of searches that ran to completion.
type ExplorationEvent struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id,omitempty"`
	InputLen  int       `json:"input_len"`
	MaxDepth  int       `json:"max_depth"`
	Summary   *Summary  `json:"summary,omitempty"`
	Cancelled bool      `json:"cancelled,omitempty"`
	Err       error     `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
// Nil hooks are skipped.
type LifecycleHooks struct {
	OnSimulate     func(context.Context, *SimulationEvent)
	OnExploreStart func(context.Context, *ExplorationEvent)
	OnPathFound    func(context.Context, *ExecutionPath, RejectReason)
	OnDepthLimit   func(context.Context, *ExplorationEvent)
	OnExploreEnd   func(context.Context, *ExplorationEvent)
}
