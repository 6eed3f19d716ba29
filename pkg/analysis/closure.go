package analysis

import (
	"sort"

	"github.com/aretw0/automata/pkg/domain"
)

// Closure returns every state reachable from states using epsilon transitions only,
// the input states included. The result is sorted.
// Each state is enqueued at most once, so cost is O(states + epsilon edges) even on cyclic graphs.
func Closure(f *domain.FSA, states ...domain.State) []domain.State {
	visited := make(map[domain.State]struct{}, len(states))
	queue := make([]domain.State, 0, len(states))
	for _, s := range states {
		if _, ok := visited[s]; ok {
			continue
		}
		visited[s] = struct{}{}
		queue = append(queue, s)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range f.EpsilonTargets(current) {
			if _, ok := visited[next]; ok {
				continue
			}
			visited[next] = struct{}{}
			queue = append(queue, next)
		}
	}

	out := make([]domain.State, 0, len(visited))
	for s := range visited {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// ClosureAccepts reports whether the epsilon closure of states contains an accepting state.
func ClosureAccepts(f *domain.FSA, states ...domain.State) bool {
	for _, s := range Closure(f, states...) {
		if f.IsAccepting(s) {
			return true
		}
	}
	return false
}

// Reachable returns the set of states reachable from the starting state over all transitions.
func Reachable(f *domain.FSA) map[domain.State]bool {
	visited := map[domain.State]bool{f.StartingState: true}
	queue := []domain.State{f.StartingState}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range f.Successors(current) {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return visited
}
