package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/cart-price-tracker/internal/api/handlers"
	"github.com/donaldgifford/cart-price-tracker/internal/api/middleware"
	"github.com/donaldgifford/cart-price-tracker/internal/config"
	"github.com/donaldgifford/cart-price-tracker/internal/store"
	"github.com/donaldgifford/cart-price-tracker/internal/tracker"
	"github.com/donaldgifford/cart-price-tracker/pkg/logger"
	domain "github.com/donaldgifford/cart-price-tracker/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	tr, st, err := buildTracker(ctx, cfg, log)
	cancel()
	if err != nil {
		return err
	}
	defer st.Close()

	// Seed settings from config on first run; an already populated store wins.
	if err := seedSettings(st, cfg); err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())

	healthH := handlers.NewHealthHandler(st)
	e.GET("/healthz", healthH.Healthz)
	e.GET("/readyz", healthH.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("cart-price-tracker API", "1.0.0"))
	handlers.RegisterCheckRoutes(api, handlers.NewCheckHandler(tr))
	handlers.RegisterStatsRoutes(api, handlers.NewStatsHandler(tr))
	handlers.RegisterProductRoutes(api, handlers.NewProductHandler(st))
	handlers.RegisterSettingsRoutes(api, handlers.NewSettingsHandler(st))
	handlers.RegisterTransferRoutes(api, handlers.NewTransferHandler(tr))
	handlers.RegisterHistoryRoutes(api, handlers.NewHistoryHandler(st))

	snap, err := st.LoadSnapshot(context.Background())
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}

	sched := tracker.NewScheduler(tr, log)
	interval := time.Duration(snap.Settings.CheckIntervalMinutes) * time.Minute
	if err := sched.Start(interval); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// seedSettings writes the config file settings into an empty store so the
// first check uses them. A store that already has data is left alone.
func seedSettings(st store.Store, cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	snap, err := st.LoadSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}
	if len(snap.History) > 0 || snap.Settings != domain.DefaultSettings() {
		return nil
	}
	if cfg.Settings == domain.DefaultSettings() {
		return nil
	}
	if err := st.SaveSettings(ctx, cfg.Settings); err != nil {
		return fmt.Errorf("seeding settings: %w", err)
	}
	return nil
}
