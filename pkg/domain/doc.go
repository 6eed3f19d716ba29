/*
Package domain contains the core domain models of the automata engine.

It defines the finite-state automaton itself, the execution paths produced when
running it, the events streamed by the nondeterministic explorer and the reports
returned by the structural analyzers. This package is kept pure and free of
external dependencies like I/O or persistence.

# Key Entities

  - FSA: validated, immutable automaton (states, alphabet, transitions, start, accepting).
  - ExecutionStep / ExecutionPath: the edges traversed by a run and its outcome.
  - Event: one frame of an exploration stream (paths, progress, summary, end, error).
  - AnalysisReport: determinism, completeness, connectivity and epsilon-loop results.
*/
package domain
