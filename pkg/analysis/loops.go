package analysis

import (
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

type color uint8

const (
	white color = iota // not visited
	gray               // on the current DFS stack
	black              // fully explored
)

// DetectEpsilonLoops finds cycles of the epsilon-only subgraph with a coloring DFS.
// Every back edge closes one cycle; cycles are reported once, rotated to start at
// their smallest state. A loop is reachable when any of its states can be reached
// from the starting state over all transitions.
//
// Loops lists one cycle per back edge, not every elementary cycle: a cycle that
// closes through an already finished state is not listed on its own. Each such
// cycle shares a strongly connected group with a listed one, so HasEpsilonLoops
// and HasReachableLoops are exact.
func DetectEpsilonLoops(f *domain.FSA) domain.LoopReport {
	d := &loopDetector{
		fsa:    f,
		colors: make(map[domain.State]color, len(f.States)),
		seen:   make(map[string]struct{}),
	}
	for _, s := range f.States {
		if d.colors[s] == white {
			d.visit(s)
		}
	}

	reachable := Reachable(f)
	report := domain.LoopReport{Loops: []domain.EpsilonLoop{}}
	for _, cycle := range d.cycles {
		loop := domain.EpsilonLoop{States: cycle}
		for _, s := range cycle {
			if reachable[s] {
				loop.Reachable = true
				break
			}
		}
		report.Loops = append(report.Loops, loop)
		report.Summary.HasReachableLoops = report.Summary.HasReachableLoops || loop.Reachable
	}
	report.HasEpsilonLoops = len(report.Loops) > 0
	report.Summary.HasEpsilonLoops = report.HasEpsilonLoops
	return report
}

// HasReachableEpsilonLoop is the pre-check used before unbounded exploration.
func HasReachableEpsilonLoop(f *domain.FSA) bool {
	return DetectEpsilonLoops(f).Summary.HasReachableLoops
}

type loopDetector struct {
	fsa    *domain.FSA
	colors map[domain.State]color
	stack  []domain.State
	cycles [][]domain.State
	seen   map[string]struct{}
}

func (d *loopDetector) visit(s domain.State) {
	d.colors[s] = gray
	d.stack = append(d.stack, s)

	for _, next := range d.fsa.EpsilonTargets(s) {
		switch d.colors[next] {
		case white:
			d.visit(next)
		case gray:
			d.record(next)
		}
	}

	d.stack = d.stack[:len(d.stack)-1]
	d.colors[s] = black
}

// record extracts the cycle closed by a back edge to head.
func (d *loopDetector) record(head domain.State) {
	start := len(d.stack) - 1
	for start >= 0 && d.stack[start] != head {
		start--
	}
	if start < 0 {
		return
	}
	cycle := canonicalCycle(d.stack[start:])
	key := strings.Join(cycle, "\x00")
	if _, dup := d.seen[key]; dup {
		return
	}
	d.seen[key] = struct{}{}
	d.cycles = append(d.cycles, cycle)
}

func canonicalCycle(states []domain.State) []domain.State {
	min := 0
	for i, s := range states {
		if s < states[min] {
			min = i
		}
	}
	out := make([]domain.State, 0, len(states))
	out = append(out, states[min:]...)
	out = append(out, states[:min]...)
	return out
}
