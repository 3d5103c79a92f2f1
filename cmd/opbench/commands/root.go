// Package commands wires the OpBench CLI together with cobra.
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	dbPath  string
	verbose bool
)

// Execute runs the root command.
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "opbench",
		Short: "OpBench - composable benchmark operations for build tools",
		Long: `OpBench benchmarks build and packaging tools through a chain of
composable operations. A session walks from tool selection to timed
measurements to a markdown report, leaving one log artifact per
logger-owning operation and a run-history entry in a local database.

Interactive prompts can be replayed deterministically with --simulate,
which feeds answers from a pre-declared script instead of stdin.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "opbench.db", "run-history database path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newHistoryCommand())
	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newSysinfoCommand())

	return rootCmd
}
