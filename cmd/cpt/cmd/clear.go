package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func clearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear all tracked history",
		Long:  "Removes every product record from the server. Settings are kept.",
		RunE: func(_ *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear without --yes")
			}

			c := newClient()
			if err := c.ClearHistory(context.Background()); err != nil {
				return err
			}

			fmt.Println("History cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm clearing all history")
	return cmd
}
