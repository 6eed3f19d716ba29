package main

import (
	"fmt"

	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

var checkCmd = &cobra.Command{
	Use:   "check <automaton>...",
	Short: "Validate automata and report their properties",
	Long: `Loads every automaton, reporting validation errors, determinism, completeness,
connectivity and epsilon loops. Files are checked concurrently.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		jobs, _ := cmd.Flags().GetInt("jobs")

		stack, err := cli.NewEngine(cmd.Context(), cfg, logger, nil)
		if err != nil {
			return err
		}
		defer stack.Close()

		results, checkErr := cli.Check(cmd.Context(), stack.Engine, args, jobs)
		if err := cli.PrintCheck(cmd.OutOrStdout(), results, cli.Format(format)); err != nil {
			return err
		}
		if checkErr != nil {
			return fmt.Errorf("%d of %d automata are invalid", len(multierr.Errors(checkErr)), len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringP("format", "f", "text", "Output format: text, markdown or json")
	checkCmd.Flags().IntP("jobs", "j", 4, "Files checked in parallel")
}
