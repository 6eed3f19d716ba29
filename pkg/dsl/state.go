package dsl

import "github.com/aretw0/automata/pkg/domain"

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	name      string
	accepting bool
	builder   *Builder
}

// Start makes this the starting state, replacing any previous one.
func (s *StateBuilder) Start() *StateBuilder {
	s.builder.start = s.name
	return s
}

// Accepting marks the state as accepting.
func (s *StateBuilder) Accepting() *StateBuilder {
	s.accepting = true
	return s
}

// On adds a transition on symbol to each target. Targets are declared if new.
func (s *StateBuilder) On(symbol string, targets ...string) *StateBuilder {
	for _, to := range targets {
		s.builder.addTransition(s.name, symbol, to)
	}
	return s
}

// Epsilon adds epsilon transitions to each target.
func (s *StateBuilder) Epsilon(targets ...string) *StateBuilder {
	return s.On(domain.Epsilon, targets...)
}

// State switches to another state, for chaining across states.
func (s *StateBuilder) State(name string) *StateBuilder {
	return s.builder.State(name)
}
