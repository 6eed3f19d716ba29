package schema

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/automata/pkg/domain"
)

// Validate checks the document and builds the immutable automaton.
// Checks run in order and the first failure is returned:
//  1. the state set is non-empty
//  2. the starting state is present and declared
//  3. every transition source and target is declared
//  4. transition symbols are single printable characters, consistent with a declared
//     alphabet, and at least one non-epsilon symbol exists
//  5. accepting states are declared
func Validate(raw FSA) (*domain.FSA, error) {
	if len(raw.States) == 0 {
		return nil, &ValidationError{Kind: KindEmptyStateSet, Reason: "states must not be empty"}
	}

	states := make(map[string]struct{}, len(raw.States))
	for _, s := range raw.States {
		states[s] = struct{}{}
	}

	if raw.StartingState == "" {
		return nil, &ValidationError{Kind: KindMissingStartingState, Reason: "startingState is required"}
	}
	if _, ok := states[raw.StartingState]; !ok {
		return nil, &ValidationError{
			Kind:   KindUnknownStateReference,
			State:  raw.StartingState,
			Reason: fmt.Sprintf("startingState %q is not a declared state", raw.StartingState),
		}
	}

	for _, from := range sortedKeys(raw.Transitions) {
		if _, ok := states[from]; !ok {
			return nil, &ValidationError{
				Kind:   KindUnknownStateReference,
				State:  from,
				Reason: fmt.Sprintf("transition source %q is not a declared state", from),
			}
		}
		row := raw.Transitions[from]
		for _, sym := range sortedKeys(row) {
			for _, to := range row[sym] {
				if _, ok := states[to]; !ok {
					return nil, &ValidationError{
						Kind:   KindUnknownStateReference,
						State:  to,
						Symbol: sym,
						Reason: fmt.Sprintf("transition %s --%s--> %s targets an undeclared state", from, label(sym), to),
					}
				}
			}
		}
	}

	alphabet, err := deriveAlphabet(raw)
	if err != nil {
		return nil, err
	}

	for _, s := range raw.AcceptingStates {
		if _, ok := states[s]; !ok {
			return nil, &ValidationError{
				Kind:   KindUnknownStateReference,
				State:  s,
				Reason: fmt.Sprintf("accepting state %q is not a declared state", s),
			}
		}
	}

	transitions := make(domain.TransitionFunction, len(raw.Transitions))
	for from, row := range raw.Transitions {
		transitions[from] = row
	}

	return domain.NewFSA(raw.States, alphabet, transitions, raw.StartingState, raw.AcceptingStates), nil
}

// deriveAlphabet collects the symbols used on non-epsilon transitions.
// A declared alphabet is optional; when present it must cover every used symbol.
// Declared symbols that no transition uses are not part of the alphabet.
func deriveAlphabet(raw FSA) ([]string, error) {
	declared := make(map[string]struct{}, len(raw.Alphabet))
	for _, sym := range raw.Alphabet {
		if sym == domain.Epsilon {
			continue
		}
		if !validSymbol(sym) {
			return nil, &ValidationError{
				Kind:   KindInvalidSymbol,
				Symbol: sym,
				Reason: fmt.Sprintf("alphabet symbol %q must be a single printable character", sym),
			}
		}
		declared[sym] = struct{}{}
	}

	var used []string
	seen := make(map[string]struct{})
	for _, from := range sortedKeys(raw.Transitions) {
		row := raw.Transitions[from]
		for _, sym := range sortedKeys(row) {
			if sym == domain.Epsilon || len(row[sym]) == 0 {
				continue
			}
			if !validSymbol(sym) {
				return nil, &ValidationError{
					Kind:   KindInvalidSymbol,
					State:  from,
					Symbol: sym,
					Reason: fmt.Sprintf("transition symbol %q out of %q must be a single printable character", sym, from),
				}
			}
			if len(declared) > 0 {
				if _, ok := declared[sym]; !ok {
					return nil, &ValidationError{
						Kind:   KindAlphabetMismatch,
						State:  from,
						Symbol: sym,
						Reason: fmt.Sprintf("symbol %q used out of %q is missing from the declared alphabet", sym, from),
					}
				}
			}
			if _, ok := seen[sym]; !ok {
				seen[sym] = struct{}{}
				used = append(used, sym)
			}
		}
	}

	if len(used) == 0 {
		return nil, &ValidationError{Kind: KindEmptyAlphabet, Reason: "no transition is labelled with an input symbol"}
	}
	return used, nil
}

// validSymbol accepts exactly one rune that CheckInput would also accept.
func validSymbol(sym string) bool {
	r, size := utf8.DecodeRuneInString(sym)
	if size == 0 || size != len(sym) || r == utf8.RuneError {
		return false
	}
	return !unicode.IsControl(r)
}

func label(sym string) string {
	if sym == domain.Epsilon {
		return "ε"
	}
	return sym
}
