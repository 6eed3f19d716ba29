package domain

import "slices"

// ConnectivityReport lists the states that cannot be reached from the starting state.
type ConnectivityReport struct {
	Connected         bool    `json:"connected"`
	UnreachableStates []State `json:"unreachable_states"`
}

// EpsilonLoop is a cycle of the epsilon-only subgraph.
// States are listed in traversal order, starting from the lexically smallest state.
type EpsilonLoop struct {
	States    []State `json:"states"`
	Reachable bool    `json:"reachable"`
}

// LoopSummary aggregates an epsilon-loop report.
type LoopSummary struct {
	HasEpsilonLoops   bool `json:"has_epsilon_loops"`
	HasReachableLoops bool `json:"has_reachable_loops"`
}

// LoopReport is the result of epsilon-loop detection.
type LoopReport struct {
	HasEpsilonLoops bool          `json:"has_epsilon_loops"`
	Loops           []EpsilonLoop `json:"loops"`
	Summary         LoopSummary   `json:"summary"`
}

// PropertyReport is the combined determinism / completeness / connectivity check.
type PropertyReport struct {
	Deterministic bool `json:"deterministic"`
	Complete      bool `json:"complete"`
	Connected     bool `json:"connected"`
}

// AnalysisReport bundles every structural property of an automaton.
type AnalysisReport struct {
	Fingerprint       string     `json:"fingerprint"`
	Deterministic     bool       `json:"deterministic"`
	Complete          bool       `json:"complete"`
	Connected         bool       `json:"connected"`
	UnreachableStates []State    `json:"unreachable_states"`
	EpsilonLoops      LoopReport `json:"epsilon_loops"`
}

// Properties returns the combined property view of the report.
func (r *AnalysisReport) Properties() PropertyReport {
	return PropertyReport{
		Deterministic: r.Deterministic,
		Complete:      r.Complete,
		Connected:     r.Connected,
	}
}

// Clone returns a deep copy of the report.
func (r *AnalysisReport) Clone() *AnalysisReport {
	c := *r
	c.UnreachableStates = slices.Clone(r.UnreachableStates)
	c.EpsilonLoops.Loops = nil
	if r.EpsilonLoops.Loops != nil {
		c.EpsilonLoops.Loops = make([]EpsilonLoop, len(r.EpsilonLoops.Loops))
		for i, l := range r.EpsilonLoops.Loops {
			c.EpsilonLoops.Loops[i] = EpsilonLoop{States: slices.Clone(l.States), Reachable: l.Reachable}
		}
	}
	return &c
}
