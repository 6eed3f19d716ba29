package testutils

import (
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
	"github.com/stretchr/testify/require"
)

// T is shorthand for the transitions of an automaton document.
type T = map[string]map[string][]string

// MustFSA validates a document and fails the test immediately on error.
func MustFSA(t testing.TB, raw schema.FSA) *domain.FSA {
	t.Helper()

	f, err := schema.Validate(raw)
	require.NoError(t, err, "fixture automaton must be valid")
	return f
}

// Doc builds an automaton document; the alphabet is left to be derived.
func Doc(states []string, start string, accepting []string, transitions T) schema.FSA {
	return schema.FSA{
		States:          states,
		Transitions:     transitions,
		StartingState:   start,
		AcceptingStates: accepting,
	}
}

// SingleStep accepts exactly "a": S0 --a--> S1.
func SingleStep() schema.FSA {
	return Doc([]string{"S0", "S1"}, "S0", []string{"S1"}, T{
		"S0": {"a": {"S1"}},
	})
}

// EpsilonSelfLoop is SingleStep plus S0 --ε--> S0.
func EpsilonSelfLoop() schema.FSA {
	return Doc([]string{"S0", "S1"}, "S0", []string{"S1"}, T{
		"S0": {"a": {"S1"}, "": {"S0"}},
	})
}

// CompleteDFA is a connected two-state DFA over {a, b} accepting strings with an odd number of a's.
func CompleteDFA() schema.FSA {
	return Doc([]string{"S0", "S1"}, "S0", []string{"S1"}, T{
		"S0": {"a": {"S1"}, "b": {"S0"}},
		"S1": {"a": {"S0"}, "b": {"S1"}},
	})
}

// Disconnected has S2 with no incoming transition from the start-reachable part.
func Disconnected() schema.FSA {
	return Doc([]string{"S0", "S1", "S2"}, "S0", []string{"S1"}, T{
		"S0": {"a": {"S1"}},
		"S2": {"a": {"S1"}},
	})
}

// EpsilonCycle has a two-state epsilon cycle S1 <-> S2 reachable from S0.
func EpsilonCycle() schema.FSA {
	return Doc([]string{"S0", "S1", "S2", "S3"}, "S0", []string{"S3"}, T{
		"S0": {"": {"S1"}},
		"S1": {"": {"S2"}},
		"S2": {"": {"S1"}, "a": {"S3"}},
	})
}

// DetachedEpsilonCycle has the same S1 <-> S2 epsilon cycle, unreachable from S0.
func DetachedEpsilonCycle() schema.FSA {
	return Doc([]string{"S0", "S1", "S2", "S3"}, "S0", []string{"S3"}, T{
		"S0": {"a": {"S3"}},
		"S1": {"": {"S2"}},
		"S2": {"": {"S1"}, "a": {"S3"}},
	})
}

// BranchingNFA has two symbol branches on "a" and an epsilon shortcut:
//
//	S0 --a--> S1, S0 --a--> S2, S1 --b--> S3, S2 --ε--> S3
func BranchingNFA() schema.FSA {
	return Doc([]string{"S0", "S1", "S2", "S3"}, "S0", []string{"S3"}, T{
		"S0": {"a": {"S1", "S2"}},
		"S1": {"b": {"S3"}},
		"S2": {"": {"S3"}},
	})
}

// Exponential doubles the number of branches with every "a": both states go to both states.
func Exponential() schema.FSA {
	return Doc([]string{"S0", "S1"}, "S0", []string{"S1"}, T{
		"S0": {"a": {"S0", "S1"}},
		"S1": {"a": {"S0", "S1"}},
	})
}

// Fixture produces a fresh automaton document.
type Fixture func() schema.FSA
