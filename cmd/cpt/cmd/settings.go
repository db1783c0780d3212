package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func settingsCmd() *cobra.Command {
	settingsRoot := &cobra.Command{
		Use:   "settings",
		Short: "View and change tracking settings",
	}

	settingsRoot.AddCommand(
		settingsGetCmd(),
		settingsSetCmd(),
	)

	return settingsRoot
}

func settingsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show current settings",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			settings, err := c.GetSettings(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(settings)
			}
			return printSettings(settings)
		},
	}
}

func settingsSetCmd() *cobra.Command {
	var (
		notifications bool
		interval      int
		threshold     float64
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update settings",
		Long: "Updates tracking settings. Flags not given keep their current value;\n" +
			"the server validates the result as a whole.",
		Example: `  cpt settings set --interval 30
  cpt settings set --threshold 0.1 --notifications=false`,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			c := newClient()

			current, err := c.GetSettings(context.Background())
			if err != nil {
				return err
			}

			next := *current
			if cobraCmd.Flags().Changed("notifications") {
				next.NotificationsEnabled = notifications
			}
			if cobraCmd.Flags().Changed("interval") {
				next.CheckIntervalMinutes = interval
			}
			if cobraCmd.Flags().Changed("threshold") {
				next.PriceDropThreshold = threshold
			}

			updated, err := c.UpdateSettings(context.Background(), next)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(updated)
			}
			fmt.Println("Settings updated.")
			return printSettings(updated)
		},
	}

	cmd.Flags().BoolVar(&notifications, "notifications", true, "enable drop notifications")
	cmd.Flags().IntVar(&interval, "interval", 60, "check interval in minutes")
	cmd.Flags().Float64Var(&threshold, "threshold", 0.05, "drop threshold as a fraction (0.05 = 5%)")

	return cmd
}
