package dsl

import (
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
)

// Builder manages the automaton construction.
type Builder struct {
	order       []string
	states      map[string]*StateBuilder
	alphabet    []string
	start       string
	transitions map[string]map[string][]string
}

// New creates a new automaton builder.
func New() *Builder {
	return &Builder{
		states:      make(map[string]*StateBuilder),
		transitions: make(map[string]map[string][]string),
	}
}

// State declares a state. If the state already exists, it returns the existing builder.
func (b *Builder) State(name string) *StateBuilder {
	if sb, ok := b.states[name]; ok {
		return sb
	}
	sb := &StateBuilder{name: name, builder: b}
	b.states[name] = sb
	b.order = append(b.order, name)
	return sb
}

// Alphabet declares the input alphabet explicitly.
// Without it the alphabet is derived from the transitions.
func (b *Builder) Alphabet(symbols ...string) *Builder {
	b.alphabet = append(b.alphabet, symbols...)
	return b
}

// Document returns the automaton as an unvalidated document.
func (b *Builder) Document() schema.FSA {
	doc := schema.FSA{
		States:        append([]string(nil), b.order...),
		Alphabet:      append([]string(nil), b.alphabet...),
		StartingState: b.start,
		Transitions:   make(map[string]map[string][]string, len(b.transitions)),
	}
	for _, name := range b.order {
		if b.states[name].accepting {
			doc.AcceptingStates = append(doc.AcceptingStates, name)
		}
	}
	for from, row := range b.transitions {
		out := make(map[string][]string, len(row))
		for sym, targets := range row {
			out[sym] = append([]string(nil), targets...)
		}
		doc.Transitions[from] = out
	}
	return doc
}

// Build validates the automaton.
func (b *Builder) Build() (*domain.FSA, error) {
	return schema.Validate(b.Document())
}

func (b *Builder) addTransition(from, symbol, to string) {
	b.State(to)
	row, ok := b.transitions[from]
	if !ok {
		row = make(map[string][]string)
		b.transitions[from] = row
	}
	for _, existing := range row[symbol] {
		if existing == to {
			return
		}
	}
	row[symbol] = append(row[symbol], to)
}
