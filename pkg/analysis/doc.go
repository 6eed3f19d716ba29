/*
Package analysis answers structural questions about a validated automaton.

Every function here is a synchronous, pure computation over an immutable
domain.FSA and is safe to call from any goroutine. Traversals are guarded by
visited sets so they terminate on graphs with epsilon cycles.

  - Closure: epsilon closure of a state set.
  - IsDeterministic, IsComplete, Connectivity: classic DFA properties.
  - DetectEpsilonLoops: cycles of the epsilon-only subgraph, tagged by reachability.
  - Analyze: all of the above in one report.
*/
package analysis
