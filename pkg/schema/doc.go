/*
Package schema defines the wire format of finite-state automata and validates it.

Clients submit automata as JSON or YAML documents:

	{
	  "states": ["S0", "S1"],
	  "alphabet": ["a"],
	  "transitions": {"S0": {"a": ["S1"], "": ["S1"]}},
	  "startingState": "S0",
	  "acceptingStates": ["S1"]
	}

The empty-string symbol key denotes an epsilon transition. Validate turns a
document into an immutable domain.FSA or fails fast with a *ValidationError
whose Kind tells the caller exactly which check failed.
*/
package schema
