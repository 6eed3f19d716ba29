package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
)

// State is an opaque state identifier, unique within an automaton.
type State = string

// Symbol is a single input character. The empty string is reserved for Epsilon.
type Symbol = string

// Epsilon labels transitions that can be taken without consuming input.
const Epsilon Symbol = ""

// TransitionFunction maps a source state and a symbol (or Epsilon) to its targets.
// Absent keys mean there is no transition.
type TransitionFunction map[State]map[Symbol][]State

// FSA is a validated finite-state automaton.
// It is immutable once built; every accessor returns data that must not be modified.
type FSA struct {
	States          []State            `json:"states"`
	Alphabet        []Symbol           `json:"alphabet"`
	Transitions     TransitionFunction `json:"transitions"`
	StartingState   State              `json:"startingState"`
	AcceptingStates []State            `json:"acceptingStates"`

	stateSet  map[State]struct{}
	acceptSet map[State]struct{}
	symbols   map[State][]Symbol
}

// NewFSA builds an FSA from already validated parts.
// States, alphabet, accepting states and transition targets are deduplicated and sorted
// so that iteration order (and therefore exploration order) is stable.
func NewFSA(states []State, alphabet []Symbol, transitions TransitionFunction, start State, accepting []State) *FSA {
	f := &FSA{
		States:          sortedUnique(states),
		Alphabet:        sortedUnique(alphabet),
		Transitions:     make(TransitionFunction, len(transitions)),
		StartingState:   start,
		AcceptingStates: sortedUnique(accepting),
		stateSet:        make(map[State]struct{}),
		acceptSet:       make(map[State]struct{}),
		symbols:         make(map[State][]Symbol),
	}
	for _, s := range f.States {
		f.stateSet[s] = struct{}{}
	}
	for _, s := range f.AcceptingStates {
		f.acceptSet[s] = struct{}{}
	}
	for from, bySymbol := range transitions {
		row := make(map[Symbol][]State, len(bySymbol))
		var syms []Symbol
		for sym, targets := range bySymbol {
			if len(targets) == 0 {
				continue
			}
			row[sym] = sortedUnique(targets)
			if sym != Epsilon {
				syms = append(syms, sym)
			}
		}
		if len(row) == 0 {
			continue
		}
		sort.Strings(syms)
		f.Transitions[from] = row
		f.symbols[from] = syms
	}
	return f
}

// HasState reports whether s belongs to the automaton.
func (f *FSA) HasState(s State) bool {
	_, ok := f.stateSet[s]
	return ok
}

// IsAccepting reports whether s is an accepting state.
func (f *FSA) IsAccepting(s State) bool {
	_, ok := f.acceptSet[s]
	return ok
}

// Targets returns the targets of (from, sym), sorted. Nil when undefined.
func (f *FSA) Targets(from State, sym Symbol) []State {
	return f.Transitions[from][sym]
}

// EpsilonTargets returns the targets of the epsilon transitions leaving from.
func (f *FSA) EpsilonTargets(from State) []State {
	return f.Transitions[from][Epsilon]
}

// Symbols returns the non-epsilon symbols with at least one transition out of from.
func (f *FSA) Symbols(from State) []Symbol {
	return f.symbols[from]
}

// HasEpsilonTransitions reports whether any epsilon transition exists.
func (f *FSA) HasEpsilonTransitions() bool {
	for _, row := range f.Transitions {
		if len(row[Epsilon]) > 0 {
			return true
		}
	}
	return false
}

// Successors returns every state reachable from s in one move, epsilon included.
func (f *FSA) Successors(s State) []State {
	row := f.Transitions[s]
	if len(row) == 0 {
		return nil
	}
	var out []State
	for _, targets := range row {
		out = append(out, targets...)
	}
	return sortedUnique(out)
}

// Fingerprint returns a stable content hash of the automaton.
// Two automata with the same states, transitions, start and accepting states share it.
func (f *FSA) Fingerprint() string {
	// encoding/json sorts map keys, which makes the encoding canonical.
	data, _ := json.Marshal(f)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func sortedUnique(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
