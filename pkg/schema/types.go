package schema

import (
	"sort"

	"github.com/aretw0/automata/pkg/domain"
)

// FSA is the client-supplied, not yet validated, automaton document.
type FSA struct {
	States          []string                       `json:"states" yaml:"states" mapstructure:"states"`
	Alphabet        []string                       `json:"alphabet" yaml:"alphabet" mapstructure:"alphabet"`
	Transitions     map[string]map[string][]string `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
	StartingState   string                         `json:"startingState" yaml:"startingState" mapstructure:"startingState"`
	AcceptingStates []string                       `json:"acceptingStates" yaml:"acceptingStates" mapstructure:"acceptingStates"`
}

// FromDomain converts a validated automaton back to its wire form.
func FromDomain(f *domain.FSA) FSA {
	raw := FSA{
		States:          append([]string(nil), f.States...),
		Alphabet:        append([]string(nil), f.Alphabet...),
		Transitions:     make(map[string]map[string][]string, len(f.Transitions)),
		StartingState:   f.StartingState,
		AcceptingStates: append([]string(nil), f.AcceptingStates...),
	}
	for from, row := range f.Transitions {
		out := make(map[string][]string, len(row))
		for sym, targets := range row {
			out[sym] = append([]string(nil), targets...)
		}
		raw.Transitions[from] = out
	}
	return raw
}

// sortedKeys returns map keys in lexical order so validation reports are reproducible.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
