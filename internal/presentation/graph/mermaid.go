package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// GraphOverlay contains run data to visualize on the graph.
type GraphOverlay struct {
	// Path highlights the states and edges traversed by one run.
	Path *domain.ExecutionPath
}

// GenerateMermaid produces a Mermaid flowchart of the automaton.
// It applies semantic styling:
// - Starting state: ([Stadium])
// - Accepting state: (((Double circle)))
// - Other states: ((Circle))
// Epsilon edges are dotted and labelled ε; parallel symbol edges share one arrow.
func GenerateMermaid(f *domain.FSA, overlay *GraphOverlay) string {
	ids := make(map[domain.State]string, len(f.States))
	for i, s := range f.States {
		ids[s] = fmt.Sprintf("q%d", i)
	}

	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, s := range f.States {
		opener, closer := "((", "))"
		switch {
		case f.IsAccepting(s):
			opener, closer = "(((", ")))"
		case s == f.StartingState:
			opener, closer = "([", "])"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", ids[s], opener, escapeLabel(s), closer)
	}

	for _, e := range collectEdges(f) {
		from, to := ids[e.from], ids[e.to]
		if len(e.symbols) > 0 {
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", from, escapeLabel(strings.Join(e.symbols, ", ")), to)
		}
		if e.epsilon {
			fmt.Fprintf(&sb, "    %s -. \"ε\" .-> %s\n", from, to)
		}
	}

	sb.WriteString("\n    classDef start stroke-width:3px;\n")
	fmt.Fprintf(&sb, "    class %s start;\n", ids[f.StartingState])

	if overlay != nil && overlay.Path != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visited := map[string]bool{}
		mark := func(s domain.State) {
			id, ok := ids[s]
			if ok && !visited[id] && s != overlay.Path.FinalState {
				visited[id] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", id)
			}
		}
		mark(f.StartingState)
		for _, step := range overlay.Path.Steps {
			mark(step.From)
			mark(step.To)
		}

		if id, ok := ids[overlay.Path.FinalState]; ok {
			fmt.Fprintf(&sb, "    class %s current;\n", id)
		}
	}

	return sb.String()
}

type edge struct {
	from, to domain.State
	symbols  []domain.Symbol
	epsilon  bool
}

// collectEdges groups transitions by (from, to), in state then target order.
func collectEdges(f *domain.FSA) []*edge {
	index := map[[2]domain.State]*edge{}
	var edges []*edge
	get := func(from, to domain.State) *edge {
		k := [2]domain.State{from, to}
		e, ok := index[k]
		if !ok {
			e = &edge{from: from, to: to}
			index[k] = e
			edges = append(edges, e)
		}
		return e
	}

	for _, from := range f.States {
		for _, sym := range f.Symbols(from) {
			for _, to := range f.Targets(from, sym) {
				e := get(from, to)
				e.symbols = append(e.symbols, sym)
			}
		}
		for _, to := range f.EpsilonTargets(from) {
			get(from, to).epsilon = true
		}
	}

	order := map[domain.State]int{}
	for i, s := range f.States {
		order[s] = i
	}
	sort.SliceStable(edges, func(i, j int) bool {
		if edges[i].from != edges[j].from {
			return order[edges[i].from] < order[edges[j].from]
		}
		return order[edges[i].to] < order[edges[j].to]
	})
	return edges
}

// escapeLabel keeps labels inside Mermaid double quotes.
func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}
