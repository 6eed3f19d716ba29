package main

import (
	"context"

	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <automaton>",
	Short: "Re-check an automaton whenever its file changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stack, err := cli.NewEngine(cmd.Context(), cfg, logger, nil)
		if err != nil {
			return err
		}
		defer stack.Close()

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		return cli.Watch(ctx, cmd.OutOrStdout(), stack.Engine, args[0], logger)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
