package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Trigger a price check",
		Long:  "Triggers one check cycle on the server: fetch prices, update history, notify drops.",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			result, err := c.Check(context.Background())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(result)
			}
			fmt.Printf("Observed %d, appended %d, skipped %d, notified %d.\n",
				result.Observed, result.Appended, result.Skipped, result.Notified)
			return nil
		},
	}
}
