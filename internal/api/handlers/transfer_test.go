package handlers_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/cart-price-tracker/internal/api/handlers"
	"github.com/donaldgifford/cart-price-tracker/internal/notify"
	"github.com/donaldgifford/cart-price-tracker/internal/store"
	"github.com/donaldgifford/cart-price-tracker/internal/tracker"
	domain "github.com/donaldgifford/cart-price-tracker/pkg/types"
)

type noSource struct{}

func (noSource) Fetch(_ context.Context) ([]domain.RawObservation, error) {
	return nil, nil
}

func transferAPI(t *testing.T, s store.Store) humatest.TestAPI {
	t.Helper()

	tr := tracker.New(s, noSource{}, notify.NewNoopNotifier(nil),
		tracker.WithClock(func() time.Time {
			return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		}),
	)

	_, api := humatest.New(t)
	handlers.RegisterTransferRoutes(api, handlers.NewTransferHandler(tr))
	return api
}

func TestTransferHandler_Export(t *testing.T) {
	t.Parallel()

	api := transferAPI(t, seededMemoryStore(t))

	resp := api.Get("/api/v1/export")
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.Contains(t, body, `"version":"1.0.0"`)
	assert.Contains(t, body, `"exportDate"`)
	assert.Contains(t, body, `"B0TEST01"`)
}

func TestTransferHandler_ImportRoundTrip(t *testing.T) {
	t.Parallel()

	exportAPI := transferAPI(t, seededMemoryStore(t))
	exported := exportAPI.Get("/api/v1/export").Body.String()

	target := store.NewMemoryStore()
	importAPI := transferAPI(t, target)

	resp := importAPI.Post("/api/v1/import",
		"Content-Type: application/json",
		strings.NewReader(exported),
	)
	require.Equal(t, http.StatusOK, resp.Code)

	snap, err := target.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Contains(t, snap.History, "B0TEST01")
	assert.Contains(t, snap.History, "B0TEST02")
}

func TestTransferHandler_ImportRejectsInvalid(t *testing.T) {
	t.Parallel()

	s := seededMemoryStore(t)
	api := transferAPI(t, s)

	resp := api.Post("/api/v1/import",
		"Content-Type: application/json",
		strings.NewReader(`{"version": "1.0.0"}`),
	)
	require.Equal(t, http.StatusBadRequest, resp.Code)

	// Existing data survives a rejected import.
	snap, err := s.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Contains(t, snap.History, "B0TEST01")
}
