/*
Package automata simulates and analyzes finite-state automata.

An automaton is supplied as a graph of states and labeled transitions; the empty
label denotes an epsilon transition. The engine answers two kinds of questions:
does an input end in an accepting configuration, and which structural properties
does the automaton have (determinism, completeness, connectivity, epsilon cycles).

# Key Features

  - Deterministic simulation: one path, computed synchronously.
  - Nondeterministic exploration: every path consuming the input, streamed as it
    is found, with an epsilon-depth limit and cooperative cancellation.
  - Structural analysis: property checks and reachable/unreachable epsilon loops,
    optionally cached by automaton fingerprint.

# Usage

	eng := automata.New()

	f, err := eng.Load([]byte(`{
		"states": ["S0", "S1"],
		"transitions": {"S0": {"a": ["S1"], "": ["S0"]}},
		"startingState": "S0",
		"acceptingStates": ["S1"]
	}`))
	if err != nil {
		log.Fatal(err)
	}

	depth := 3
	events, err := eng.Explore(ctx, f, "a", automata.ExploreOptions{MaxDepth: &depth})
	if err != nil {
		log.Fatal(err)
	}
	for ev := range events {
		fmt.Println(ev.Type)
	}

The same engine is exposed over HTTP (pkg/adapters/http), as MCP tools
(pkg/adapters/mcp) and through the automata command.
*/
package automata
