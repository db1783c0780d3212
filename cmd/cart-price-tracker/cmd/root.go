// Package cmd implements the CLI commands for the cart-price-tracker server.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "cart-price-tracker",
	Short: "Track prices of shopping cart items over time",
	Long: "A service that periodically observes the prices of items sitting in a " +
		"shopping cart, keeps a bounded per-product price history, computes drop " +
		"statistics, and sends notifications when prices fall past a threshold.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
