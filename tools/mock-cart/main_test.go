package main

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func loadTestFixture(t *testing.T) []cartItem {
	t.Helper()
	items, err := loadFixture(filepath.Join("testdata", "cart.json"))
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	return items
}

func TestLoadFixture(t *testing.T) {
	items := loadTestFixture(t)
	if len(items) == 0 {
		t.Fatal("expected items in fixture")
	}
	for _, item := range items {
		if item.ProductID == "" || item.Price <= 0 {
			t.Errorf("bad fixture item: %+v", item)
		}
	}
}

func TestCartHandler_RendersItems(t *testing.T) {
	items := loadTestFixture(t)
	handler := cartHandler(testLogger(), items, 0)

	req := httptest.NewRequest(http.MethodGet, "/cart", http.NoBody)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	body := w.Body.String()
	for _, item := range items {
		if !strings.Contains(body, `data-asin="`+item.ProductID+`"`) {
			t.Errorf("expected %s in page", item.ProductID)
		}
		if !strings.Contains(body, item.Title) {
			t.Errorf("expected title %q in page", item.Title)
		}
	}
	if !strings.Contains(body, "34.99") {
		t.Error("expected formatted price in page")
	}
}

func TestCartHandler_DecayLowersPrices(t *testing.T) {
	items := []cartItem{{ProductID: "B0X", Title: "Widget", Price: 100}}
	handler := cartHandler(testLogger(), items, 0.10)

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/cart", http.NoBody))
	if !strings.Contains(first.Body.String(), "100.00") {
		t.Error("first request should serve the original price")
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/cart", http.NoBody))
	if !strings.Contains(second.Body.String(), "90.00") {
		t.Errorf("second request should serve decayed price, got:\n%s", second.Body.String())
	}
}

func TestCartHandler_ZeroDecayStable(t *testing.T) {
	items := loadTestFixture(t)
	handler := cartHandler(testLogger(), items, 0)

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/cart", http.NoBody))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/cart", http.NoBody))

	if first.Body.String() != second.Body.String() {
		t.Error("prices should be stable without decay")
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}
