package main

import (
	"fmt"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph <automaton>",
	Short: "Export the automaton as a Mermaid diagram",
	Long: `Outputs a Mermaid flowchart (graph LR) of the automaton. With --input, the
deterministic run on that input is highlighted.`,
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

		var overlay *graph.GraphOverlay
		if cmd.Flags().Changed("input") {
			input, _ := cmd.Flags().GetString("input")
			path, err := stack.Engine.Simulate(cmd.Context(), f, input)
			if err != nil {
				return err
			}
			overlay = &graph.GraphOverlay{Path: path}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(f, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("input", "", "Highlight the deterministic run on this input")
}
