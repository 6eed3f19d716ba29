package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// ReportMarkdown formats an analysis report as a markdown document.
func ReportMarkdown(title string, r *domain.AnalysisReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)

	sb.WriteString("| Property | Result |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Deterministic | %s |\n", yesNo(r.Deterministic))
	fmt.Fprintf(&sb, "| Complete | %s |\n", yesNo(r.Complete))
	fmt.Fprintf(&sb, "| Connected | %s |\n", yesNo(r.Connected))
	fmt.Fprintf(&sb, "| Epsilon loops | %s |\n", yesNo(r.EpsilonLoops.HasEpsilonLoops))
	fmt.Fprintf(&sb, "| Reachable epsilon loops | %s |\n", yesNo(r.EpsilonLoops.Summary.HasReachableLoops))

	if len(r.UnreachableStates) > 0 {
		sb.WriteString("\n## Unreachable states\n\n")
		for _, s := range r.UnreachableStates {
			fmt.Fprintf(&sb, "- `%s`\n", s)
		}
	}

	if len(r.EpsilonLoops.Loops) > 0 {
		sb.WriteString("\n## Epsilon loops\n\n")
		for _, l := range r.EpsilonLoops.Loops {
			tag := "unreachable"
			if l.Reachable {
				tag = "**reachable**"
			}
			fmt.Fprintf(&sb, "- `%s` (%s)\n", LoopString(l), tag)
		}
	}

	fmt.Fprintf(&sb, "\n_fingerprint: %s_\n", r.Fingerprint)
	return sb.String()
}

// LoopString renders a cycle as S1 → S2 → S1.
func LoopString(l domain.EpsilonLoop) string {
	if len(l.States) == 0 {
		return ""
	}
	return strings.Join(append(append([]domain.State{}, l.States...), l.States[0]), " → ")
}

// PathString renders a path as S0 -a-> S1 -ε-> S2.
func PathString(start domain.State, p *domain.ExecutionPath) string {
	var sb strings.Builder
	sb.WriteString(start)
	for _, step := range p.Steps {
		sym := step.Symbol
		if sym == domain.Epsilon {
			sym = "ε"
		}
		fmt.Fprintf(&sb, " -%s-> %s", sym, step.To)
	}
	return sb.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
