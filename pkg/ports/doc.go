/*
Package ports defines the driven ports (interfaces) of the automata engine.

These interfaces decouple the core from external implementations so the engine
can work with different backends.

# Key Interfaces

  - ReportCache: stores analysis reports keyed by automaton fingerprint
    (in memory or in Redis).
*/
package ports
