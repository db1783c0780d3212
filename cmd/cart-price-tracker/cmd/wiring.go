package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/donaldgifford/cart-price-tracker/internal/config"
	"github.com/donaldgifford/cart-price-tracker/internal/notify"
	"github.com/donaldgifford/cart-price-tracker/internal/source"
	"github.com/donaldgifford/cart-price-tracker/internal/store"
	"github.com/donaldgifford/cart-price-tracker/internal/tracker"
)

// buildStore constructs the configured snapshot store. The caller owns Close.
func buildStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Storage.Backend {
	case "postgres":
		return store.NewPostgresStore(ctx, cfg.Storage.Postgres.DSN())
	default:
		return store.NewFileStore(cfg.Storage.File.Path)
	}
}

// buildSource constructs the configured observation source.
func buildSource(cfg *config.Config, log *slog.Logger) (source.Source, error) {
	switch cfg.Source.Backend {
	case "file":
		return source.NewFileSource(cfg.Source.File.Path), nil
	default:
		return source.NewHTTPSource(
			cfg.Source.HTTP,
			cfg.Tracker.DefaultCurrency,
			source.WithSourceLogger(log),
		)
	}
}

// buildNotifier constructs the configured notifier. Without a configured
// target, drops are logged instead.
func buildNotifier(cfg *config.Config, log *slog.Logger) notify.Notifier {
	if cfg.Notifications.Discord.Enabled {
		return notify.NewDiscordNotifier(cfg.Notifications.Discord.WebhookURL)
	}
	return notify.NewNoopNotifier(log)
}

// buildTracker wires the full check pipeline from configuration.
func buildTracker(ctx context.Context, cfg *config.Config, log *slog.Logger) (*tracker.Tracker, store.Store, error) {
	st, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("building store: %w", err)
	}

	src, err := buildSource(cfg, log)
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("building source: %w", err)
	}

	tr := tracker.New(st, src, buildNotifier(cfg, log),
		tracker.WithLogger(log),
		tracker.WithMaxHistoryLength(cfg.Tracker.MaxHistoryLength),
	)
	return tr, st, nil
}
