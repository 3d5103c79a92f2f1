package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opbench/opbench/pkg/report"
)

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <file>",
		Short: "Parse and summarize a markdown benchmark report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			rep, err := report.ParseMarkdown(f)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			fmt.Printf("%s (generated %s)\n", rep.Title, rep.Generated.Format("2006-01-02 15:04"))
			if rep.System != "" {
				fmt.Printf("system: %s\n", rep.System)
			}
			for _, res := range rep.Results {
				fmt.Printf("  %-20s %d iterations, mean %s (min %s, max %s)\n",
					res.Tool, res.Iterations, res.Mean, res.Min, res.Max)
			}
			return nil
		},
	}

	return cmd
}
