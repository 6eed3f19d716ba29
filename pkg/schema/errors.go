package schema

import "fmt"

// Kind classifies a validation failure.
type Kind string

const (
	KindEmptyStateSet         Kind = "EmptyStateSet"
	KindMissingStartingState  Kind = "MissingStartingState"
	KindUnknownStateReference Kind = "UnknownStateReference"
	KindEmptyAlphabet         Kind = "EmptyAlphabet"
	KindInvalidSymbol         Kind = "InvalidSymbol"
	KindAlphabetMismatch      Kind = "AlphabetMismatch"
)

// Sentinels usable with errors.Is; they match any *ValidationError of the same Kind.
var (
	ErrEmptyStateSet         = &ValidationError{Kind: KindEmptyStateSet}
	ErrMissingStartingState  = &ValidationError{Kind: KindMissingStartingState}
	ErrUnknownStateReference = &ValidationError{Kind: KindUnknownStateReference}
	ErrEmptyAlphabet         = &ValidationError{Kind: KindEmptyAlphabet}
	ErrInvalidSymbol         = &ValidationError{Kind: KindInvalidSymbol}
	ErrAlphabetMismatch      = &ValidationError{Kind: KindAlphabetMismatch}
)

// ValidationError reports the first check an automaton document failed.
type ValidationError struct {
	Kind   Kind   // Which check failed
	State  string // Offending state, if any
	Symbol string // Offending symbol, if any
	Reason string // Human-readable detail
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid automaton: %s", e.Kind)
	}
	return fmt.Sprintf("invalid automaton: %s: %s", e.Kind, e.Reason)
}

// Is matches validation errors by Kind.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}
