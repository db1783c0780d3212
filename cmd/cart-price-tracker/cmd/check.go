package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/cart-price-tracker/internal/config"
	"github.com/donaldgifford/cart-price-tracker/pkg/logger"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one price check and exit",
	Long: "Fetches current cart prices, updates the stored history, and fires " +
		"drop notifications, without starting the API server.",
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	tr, st, err := buildTracker(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()

	result, err := tr.RunCheck(ctx)
	if err != nil {
		return fmt.Errorf("running check: %w", err)
	}

	fmt.Printf("observed %d, appended %d, skipped %d, notified %d\n",
		result.Observed, result.Appended, result.Skipped, result.Notified)
	return nil
}
