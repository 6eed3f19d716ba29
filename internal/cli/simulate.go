package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/stream"
)

// Mode selects how an input is run.
type Mode string

const (
	// ModeAuto runs deterministically when the automaton allows it and explores otherwise.
	ModeAuto          Mode = "auto"
	ModeDeterministic Mode = "dfa"
	ModeExplore       Mode = "nfa"
)

// ParseMode validates a --mode flag value.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeAuto, ModeDeterministic, ModeExplore:
		return m, nil
	case "":
		return ModeAuto, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want auto, dfa or nfa)", s)
	}
}

// SimulateOptions configures Simulate.
type SimulateOptions struct {
	Mode     Mode
	MaxDepth *int
	// JSON writes machine-readable output: one object for deterministic runs,
	// JSON Lines frames for explorations.
	JSON   bool
	Logger *slog.Logger
}

type simulateOutput struct {
	Accepted   bool                   `json:"accepted"`
	Path       []domain.ExecutionStep `json:"path"`
	FinalState domain.State           `json:"final_state"`
}

// Simulate runs input on f and writes the outcome to w. It reports whether the input was accepted.
func Simulate(ctx context.Context, w io.Writer, engine *automata.Engine, f *domain.FSA, input string, opts SimulateOptions) (bool, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	mode := opts.Mode
	if mode == "" || mode == ModeAuto {
		mode = ModeExplore
		if engine.IsDeterministic(f) {
			mode = ModeDeterministic
		}
	}

	if mode == ModeDeterministic {
		return simulateDeterministic(ctx, w, engine, f, input, opts)
	}
	return explore(ctx, w, engine, f, input, opts)
}

func simulateDeterministic(ctx context.Context, w io.Writer, engine *automata.Engine, f *domain.FSA, input string, opts SimulateOptions) (bool, error) {
	path, err := engine.Simulate(ctx, f, input)
	if err != nil {
		return false, err
	}

	if opts.JSON {
		steps := path.Steps
		if steps == nil {
			steps = []domain.ExecutionStep{}
		}
		return path.Accepted, json.NewEncoder(w).Encode(simulateOutput{
			Accepted:   path.Accepted,
			Path:       steps,
			FinalState: path.FinalState,
		})
	}

	st := tui.NewStyler(w)
	fmt.Fprintln(w, tui.PathString(f.StartingState, path))
	if path.Accepted {
		fmt.Fprintln(w, st.Accepted("ACCEPTED"))
	} else {
		fmt.Fprintln(w, st.Rejected("REJECTED"), st.Muted("in "+path.FinalState))
	}
	return path.Accepted, nil
}

// explore stops the search on return, so an early exit never leaves the
// explorer blocked on an unread stream.
func explore(ctx context.Context, w io.Writer, engine *automata.Engine, f *domain.FSA, input string, opts SimulateOptions) (bool, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	events, err := engine.Explore(runCtx, f, input, automata.ExploreOptions{MaxDepth: opts.MaxDepth})
	if err != nil {
		return false, err
	}

	if opts.JSON {
		var summary *domain.Summary
		tapped := make(chan domain.Event)
		done := make(chan struct{})
		go func() {
			defer close(done)
			defer close(tapped)
			for ev := range events {
				if ev.Type == domain.EventSummary {
					summary = ev.Summary
				}
				select {
				case tapped <- ev:
				case <-runCtx.Done():
					return
				}
			}
		}()

		_, err := stream.Pump(runCtx, tapped, stream.NewJSONLinesEncoder(w), opts.Logger)
		cancel()
		<-done
		if err != nil {
			return false, err
		}
		if err := ctx.Err(); err != nil {
			return false, err
		}
		return summary != nil && summary.Accepted, nil
	}

	st := tui.NewStyler(w)
	accepted := false
	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return false, ctx.Err()
			}
			switch ev.Type {
			case domain.EventAcceptingPath:
				fmt.Fprintf(w, "%s  %s\n", st.Accepted("accept"), tui.PathString(f.StartingState, ev.Path))
			case domain.EventRejectedPath:
				fmt.Fprintf(w, "%s  %s %s\n", st.Rejected("reject"), tui.PathString(f.StartingState, ev.Path), st.Muted("("+string(ev.Reason)+")"))
			case domain.EventDepthLimitReached:
				fmt.Fprintln(w, st.Warning("epsilon depth limit reached, some branches were abandoned"))
			case domain.EventSummary:
				accepted = ev.Summary.Accepted
				verdict := st.Rejected("REJECTED")
				if accepted {
					verdict = st.Accepted("ACCEPTED")
				}
				fmt.Fprintf(w, "%s %s\n", verdict, st.Muted(fmt.Sprintf("(%d paths explored)", ev.Summary.TotalPathsExplored)))
				if ev.Summary.Truncated {
					fmt.Fprintln(w, st.Warning("search stopped at the configured path limit"))
				}
			case domain.EventError:
				return false, fmt.Errorf("exploration failed: %s", ev.Message)
			case domain.EventEnd:
				return accepted, nil
			}
		}
	}
}
