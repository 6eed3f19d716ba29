package analysis

import (
	"github.com/aretw0/automata/pkg/domain"
)

// IsDeterministic reports whether f has no epsilon transitions and at most one
// target for every (state, symbol) pair.
func IsDeterministic(f *domain.FSA) bool {
	if f.HasEpsilonTransitions() {
		return false
	}
	for _, row := range f.Transitions {
		for _, targets := range row {
			if len(targets) > 1 {
				return false
			}
		}
	}
	return true
}

// IsComplete reports whether every state has a transition for every alphabet symbol.
// Epsilon transitions are not required.
func IsComplete(f *domain.FSA) bool {
	for _, s := range f.States {
		for _, sym := range f.Alphabet {
			if len(f.Targets(s, sym)) == 0 {
				return false
			}
		}
	}
	return true
}

// Connectivity checks that every state is reachable from the starting state,
// epsilon transitions included, and lists the states that are not.
func Connectivity(f *domain.FSA) domain.ConnectivityReport {
	reachable := Reachable(f)

	unreachable := []domain.State{}
	for _, s := range f.States {
		if !reachable[s] {
			unreachable = append(unreachable, s)
		}
	}

	return domain.ConnectivityReport{
		Connected:         len(unreachable) == 0,
		UnreachableStates: unreachable,
	}
}

// IsConnected is the boolean form of Connectivity.
func IsConnected(f *domain.FSA) bool {
	return Connectivity(f).Connected
}

// Properties runs the determinism, completeness and connectivity checks.
func Properties(f *domain.FSA) domain.PropertyReport {
	return domain.PropertyReport{
		Deterministic: IsDeterministic(f),
		Complete:      IsComplete(f),
		Connected:     IsConnected(f),
	}
}

// Analyze runs every structural check and bundles the results.
func Analyze(f *domain.FSA) *domain.AnalysisReport {
	conn := Connectivity(f)
	return &domain.AnalysisReport{
		Fingerprint:       f.Fingerprint(),
		Deterministic:     IsDeterministic(f),
		Complete:          IsComplete(f),
		Connected:         conn.Connected,
		UnreachableStates: conn.UnreachableStates,
		EpsilonLoops:      DetectEpsilonLoops(f),
	}
}
