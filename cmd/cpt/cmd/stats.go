package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show tracking statistics",
		Example: `  cpt stats
  cpt stats --output json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			stats, err := c.Stats(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(stats)
			}
			return printStats(stats)
		},
	}
}
