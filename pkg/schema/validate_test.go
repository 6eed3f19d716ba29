package schema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDoc() FSA {
	return FSA{
		States:          []string{"S0", "S1"},
		Alphabet:        []string{"a"},
		Transitions:     map[string]map[string][]string{"S0": {"a": {"S1"}}},
		StartingState:   "S0",
		AcceptingStates: []string{"S1"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*FSA)
		wantKind Kind
		sentinel error
	}{
		{
			name:     "Empty State Set",
			mutate:   func(f *FSA) { f.States = nil },
			wantKind: KindEmptyStateSet,
			sentinel: ErrEmptyStateSet,
		},
		{
			name:     "Missing Starting State",
			mutate:   func(f *FSA) { f.StartingState = "" },
			wantKind: KindMissingStartingState,
			sentinel: ErrMissingStartingState,
		},
		{
			name:     "Undeclared Starting State",
			mutate:   func(f *FSA) { f.StartingState = "S9" },
			wantKind: KindUnknownStateReference,
			sentinel: ErrUnknownStateReference,
		},
		{
			name:     "Undeclared Transition Source",
			mutate:   func(f *FSA) { f.Transitions["S9"] = map[string][]string{"a": {"S0"}} },
			wantKind: KindUnknownStateReference,
			sentinel: ErrUnknownStateReference,
		},
		{
			name:     "Undeclared Transition Target",
			mutate:   func(f *FSA) { f.Transitions["S0"]["a"] = []string{"S9"} },
			wantKind: KindUnknownStateReference,
			sentinel: ErrUnknownStateReference,
		},
		{
			name: "Only Epsilon Transitions",
			mutate: func(f *FSA) {
				f.Alphabet = nil
				f.Transitions = map[string]map[string][]string{"S0": {"": {"S1"}}}
			},
			wantKind: KindEmptyAlphabet,
			sentinel: ErrEmptyAlphabet,
		},
		{
			name:     "Multi Character Symbol",
			mutate:   func(f *FSA) { f.Alphabet = nil; f.Transitions["S0"]["ab"] = []string{"S1"} },
			wantKind: KindInvalidSymbol,
			sentinel: ErrInvalidSymbol,
		},
		{
			name:     "Control Character Symbol",
			mutate:   func(f *FSA) { f.Alphabet = nil; f.Transitions["S0"] = map[string][]string{"\t": {"S1"}} },
			wantKind: KindInvalidSymbol,
			sentinel: ErrInvalidSymbol,
		},
		{
			name:     "Control Character In Declared Alphabet",
			mutate:   func(f *FSA) { f.Alphabet = []string{"a", "\n"} },
			wantKind: KindInvalidSymbol,
			sentinel: ErrInvalidSymbol,
		},
		{
			name:     "Symbol Missing From Declared Alphabet",
			mutate:   func(f *FSA) { f.Transitions["S1"] = map[string][]string{"b": {"S0"}} },
			wantKind: KindAlphabetMismatch,
			sentinel: ErrAlphabetMismatch,
		},
		{
			name:     "Undeclared Accepting State",
			mutate:   func(f *FSA) { f.AcceptingStates = []string{"S1", "S9"} },
			wantKind: KindUnknownStateReference,
			sentinel: ErrUnknownStateReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDoc()
			tt.mutate(&doc)

			f, err := Validate(doc)
			require.Error(t, err)
			assert.Nil(t, f)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantKind, verr.Kind)
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestValidate_SymbolsAreValidInput(t *testing.T) {
	symbols := map[string]bool{
		"a":      true,
		"α":      true,
		" ":      true,
		"\t":     false,
		"\x7f":   false,
		"\u0085": false,
		"\xff":   false,
	}
	for sym, ok := range symbols {
		doc := validDoc()
		doc.Alphabet = nil
		doc.Transitions = map[string]map[string][]string{"S0": {sym: {"S1"}}}

		f, err := Validate(doc)
		if !ok {
			assert.ErrorIs(t, err, ErrInvalidSymbol, "symbol %q", sym)
			continue
		}
		require.NoError(t, err, "symbol %q", sym)
		for _, s := range f.Alphabet {
			assert.NoError(t, CheckInput(s, 0), "symbol %q", s)
		}
	}
}

func TestValidate_ChecksRunInOrder(t *testing.T) {
	// Empty states and missing start at once: the state set is checked first.
	_, err := Validate(FSA{})
	assert.ErrorIs(t, err, ErrEmptyStateSet)

	// Missing start and dangling transition: the start is checked first.
	doc := validDoc()
	doc.StartingState = ""
	doc.Transitions["S0"]["a"] = []string{"S9"}
	_, err = Validate(doc)
	assert.ErrorIs(t, err, ErrMissingStartingState)
}

func TestValidate_DerivesAlphabet(t *testing.T) {
	doc := validDoc()
	doc.Alphabet = []string{"a", "z"}
	doc.Transitions["S1"] = map[string][]string{"": {"S0"}}

	f, err := Validate(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, f.Alphabet, "unused declared symbols and epsilon are not part of the alphabet")
	assert.Equal(t, []string{"S0"}, f.EpsilonTargets("S1"))

	doc.Alphabet = nil
	f, err = Validate(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, f.Alphabet, "alphabet is derived when not declared")
}

func TestFromDomain_RoundTrip(t *testing.T) {
	f, err := Validate(validDoc())
	require.NoError(t, err)

	again, err := Validate(FromDomain(f))
	require.NoError(t, err)
	assert.Equal(t, f.Fingerprint(), again.Fingerprint())
}

func TestParse(t *testing.T) {
	t.Run("JSON Detected", func(t *testing.T) {
		raw, err := Parse([]byte(`{"states":["S0","S1"],"transitions":{"S0":{"a":["S1"],"":["S1"]}},"startingState":"S0","acceptingStates":["S1"]}`), "")
		require.NoError(t, err)
		assert.Equal(t, []string{"S1"}, raw.Transitions["S0"][""])
	})

	t.Run("YAML Detected", func(t *testing.T) {
		raw, err := Parse([]byte(`
states: [S0, S1]
transitions:
  S0:
    a: [S1]
    "": [S1]
startingState: S0
acceptingStates: [S1]
`), "")
		require.NoError(t, err)
		assert.Equal(t, "S0", raw.StartingState)
		assert.Equal(t, []string{"S1"}, raw.Transitions["S0"][""])
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		_, err := Parse([]byte(`{"states":`), FormatJSON)
		assert.Error(t, err)
	})

	t.Run("Unknown Format", func(t *testing.T) {
		_, err := Parse([]byte(`states: []`), Format("toml"))
		assert.Error(t, err)
	})
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dfa.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
states: [S0, S1]
alphabet: [a]
transitions:
  S0: {a: [S1]}
startingState: S0
acceptingStates: [S1]
`), 0644))

	raw, err := LoadFile(path)
	require.NoError(t, err)
	f, err := Validate(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"S1"}, f.Targets("S0", "a"))

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
