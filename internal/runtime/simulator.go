package runtime

import (
	"github.com/aretw0/automata/pkg/analysis"
	"github.com/aretw0/automata/pkg/domain"
)

// Symbols splits an input string into one symbol per character.
func Symbols(input string) []domain.Symbol {
	out := make([]domain.Symbol, 0, len(input))
	for _, r := range input {
		out = append(out, string(r))
	}
	return out
}

// Simulate runs a deterministic automaton over input.
// It refuses automata that are not deterministic instead of coercing them.
// The run rejects as soon as (current state, next symbol) has no transition; the
// returned path then ends at the last step taken. Empty input yields an empty path
// that ends on the starting state.
func Simulate(f *domain.FSA, input []domain.Symbol) (*domain.ExecutionPath, error) {
	if !analysis.IsDeterministic(f) {
		return nil, domain.ErrNotDeterministic
	}

	path := &domain.ExecutionPath{
		Steps:      []domain.ExecutionStep{},
		FinalState: f.StartingState,
	}

	current := f.StartingState
	for _, sym := range input {
		targets := f.Targets(current, sym)
		if len(targets) == 0 {
			path.FinalState = current
			return path, nil
		}
		next := targets[0]
		path.Steps = append(path.Steps, domain.ExecutionStep{From: current, Symbol: sym, To: next})
		current = next
	}

	path.FinalState = current
	path.Accepted = f.IsAccepting(current)
	return path, nil
}
