// Package main implements a mock cart page server for local development.
// It renders an HTML cart from a JSON fixture so the scraper can be exercised
// without hitting a real shop, and can optionally decay prices over time to
// provoke drop notifications.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"
)

type cartItem struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
}

var cartTemplate = template.Must(template.New("cart").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Mock Cart</title></head>
<body>
{{range .}}<div data-asin="{{.ProductID}}">
  <span class="sc-product-title">{{.Title}}</span>
  <span class="sc-product-price">{{printf "%.2f" .Price}} &euro;</span>
</div>
{{end}}</body>
</html>`))

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-cart/testdata/cart.json", "path to cart fixture")
	decay := flag.Float64("decay", 0, "fractional price drop applied on every request (0.02 = 2%)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	items, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "items", len(items))

	mux := http.NewServeMux()
	mux.Handle("GET /cart", cartHandler(logger, items, *decay))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock cart server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadFixture(path string) ([]cartItem, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var items []cartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return items, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// cartHandler renders the cart page. With a non-zero decay every request
// lowers each price by the given fraction, so repeated checks observe drops.
func cartHandler(logger *slog.Logger, items []cartItem, decay float64) http.Handler {
	var mu sync.Mutex
	current := make([]cartItem, len(items))
	copy(current, items)

	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		page := make([]cartItem, len(current))
		copy(page, current)
		for i := range current {
			current[i].Price *= 1 - decay
		}
		mu.Unlock()

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := cartTemplate.Execute(w, page); err != nil {
			logger.Error("rendering cart", "error", err)
		}
	})
}
