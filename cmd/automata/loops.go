package main

import (
	"fmt"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var loopsCmd = &cobra.Command{
	Use:   "loops <automaton>",
	Short: "List epsilon cycles",
	Long: `Lists every epsilon cycle of the automaton and whether it is reachable from the
starting state. Unbounded exploration is refused when a reachable cycle exists.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stack, err := cli.NewEngine(cmd.Context(), cfg, logger, nil)
		if err != nil {
			return err
		}
		defer stack.Close()

		f, err := stack.Engine.LoadFile(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		st := tui.NewStyler(out)
		report := stack.Engine.EpsilonLoops(f)
		if !report.HasEpsilonLoops {
			fmt.Fprintln(out, st.Accepted("no epsilon loops"))
			return nil
		}
		for _, l := range report.Loops {
			tag := st.Muted("unreachable")
			if l.Reachable {
				tag = st.Warning("reachable")
			}
			fmt.Fprintf(out, "%s  %s\n", tui.LoopString(l), tag)
		}
		if report.Summary.HasReachableLoops {
			fmt.Fprintln(out, st.Warning("exploration requires --max-depth"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loopsCmd)
}
