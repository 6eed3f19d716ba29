package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/domain"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// CheckResult is the analysis of one automaton file.
type CheckResult struct {
	Path   string                 `json:"path"`
	Report *domain.AnalysisReport `json:"report,omitempty"`
	Error  string                 `json:"error,omitempty"`
}

// Check loads and analyzes every file in paths, at most limit at a time.
// Results keep the order of paths. The returned error combines every file that failed.
func Check(ctx context.Context, engine *automata.Engine, paths []string, limit int) ([]CheckResult, error) {
	results := make([]CheckResult, len(paths))
	errs := make([]error, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, path := range paths {
		g.Go(func() error {
			results[i].Path = path
			f, err := engine.LoadFile(path)
			if err == nil {
				results[i].Report, err = engine.Analyze(ctx, f)
			}
			if err != nil {
				results[i].Error = err.Error()
				errs[i] = fmt.Errorf("%s: %w", path, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	return results, multierr.Combine(errs...)
}

// Format selects how check results are printed.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// PrintCheck writes results to w. Markdown output is rendered with glamour.
func PrintCheck(w io.Writer, results []CheckResult, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case FormatMarkdown:
		render, err := tui.NewRenderer(100)
		if err != nil {
			return err
		}
		for _, r := range results {
			md := fmt.Sprintf("# %s\n\n**invalid:** %s\n", filepath.Base(r.Path), r.Error)
			if r.Report != nil {
				md = tui.ReportMarkdown(filepath.Base(r.Path), r.Report)
			}
			out, err := render(md)
			if err != nil {
				return err
			}
			fmt.Fprint(w, out)
		}
		return nil
	default:
		st := tui.NewStyler(w)
		for _, r := range results {
			if r.Report == nil {
				fmt.Fprintf(w, "%s %s\n", st.Rejected("✘ "+r.Path), r.Error)
				continue
			}
			rep := r.Report
			fmt.Fprintf(w, "%s deterministic=%t complete=%t connected=%t epsilon_loops=%t reachable_loops=%t\n",
				st.Accepted("✔ "+r.Path),
				rep.Deterministic, rep.Complete, rep.Connected,
				rep.EpsilonLoops.HasEpsilonLoops, rep.EpsilonLoops.Summary.HasReachableLoops,
			)
			if len(rep.UnreachableStates) > 0 {
				fmt.Fprintf(w, "  %s %v\n", st.Warning("unreachable:"), rep.UnreachableStates)
			}
			for _, l := range rep.EpsilonLoops.Loops {
				fmt.Fprintf(w, "  %s %s\n", st.Warning("epsilon loop:"), tui.LoopString(l))
			}
		}
		return nil
	}
}
