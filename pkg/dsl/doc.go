/*
Package dsl provides a Go DSL for programmatically constructing automata.

It is an alternative to YAML or JSON documents when an automaton is generated
by code or written inline in a test. States are declared in the order they are
first mentioned.

Example usage:

	b := dsl.New()

	b.State("even").
		Start().
		Accepting().
		On("a", "odd").
		On("b", "even")

	b.State("odd").
		On("a", "even").
		On("b", "odd")

	fsa, err := b.Build()
	if err != nil {
		// The automaton did not validate.
	}
*/
package dsl
