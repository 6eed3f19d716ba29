package main

import (
	"context"
	"os"

	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <automaton> <input>",
	Short: "Run an automaton on an input string",
	Long: `Runs the automaton on the input. Deterministic automata are simulated directly;
nondeterministic ones are explored branch by branch and every completed path is
printed as it is found. Use --json for machine-readable output (JSON Lines for
explorations). The exit code is 2 when the input is rejected.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		modeFlag, _ := cmd.Flags().GetString("mode")
		mode, err := cli.ParseMode(modeFlag)
		if err != nil {
			return err
		}
		jsonOut, _ := cmd.Flags().GetBool("json")

		opts := cli.SimulateOptions{Mode: mode, JSON: jsonOut, Logger: logger}
		if cmd.Flags().Changed("max-depth") {
			depth, _ := cmd.Flags().GetInt("max-depth")
			opts.MaxDepth = &depth
		}

		stack, err := cli.NewEngine(cmd.Context(), cfg, logger, nil)
		if err != nil {
			return err
		}
		defer stack.Close()

		f, err := stack.Engine.LoadFile(args[0])
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		accepted, err := cli.Simulate(ctx, cmd.OutOrStdout(), stack.Engine, f, args[1], opts)
		if err != nil {
			return err
		}
		if !accepted {
			stack.Close()
			os.Exit(2)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().String("mode", "auto", "Simulation mode: auto, dfa or nfa")
	simulateCmd.Flags().Int("max-depth", -1, "Maximum consecutive epsilon moves per branch (-1: unbounded)")
	simulateCmd.Flags().Bool("json", false, "Write JSON output")
}
