package handlers_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/cart-price-tracker/internal/api/handlers"
	"github.com/donaldgifford/cart-price-tracker/internal/store"
	domain "github.com/donaldgifford/cart-price-tracker/pkg/types"
)

func seededMemoryStore(t *testing.T) *store.MemoryStore {
	t.Helper()

	s := store.NewMemoryStore()
	require.NoError(t, s.SaveSnapshot(context.Background(), &domain.Snapshot{
		History: domain.History{
			"B0TEST01": {
				ProductID: "B0TEST01",
				Title:     "USB-C Hub",
				PriceHistory: []domain.PricePoint{
					{Price: 34.99, Currency: "EUR", Timestamp: 1000},
					{Price: 29.99, Currency: "EUR", Timestamp: 2000},
				},
			},
			"B0TEST02": {
				ProductID:    "B0TEST02",
				Title:        "Desk Lamp",
				PriceHistory: []domain.PricePoint{{Price: 19.99, Currency: "EUR", Timestamp: 1000}},
			},
		},
		Settings: domain.DefaultSettings(),
	}))
	return s
}

func TestProductHandler_List(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterProductRoutes(api, handlers.NewProductHandler(seededMemoryStore(t)))

	resp := api.Get("/api/v1/products")
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.Contains(t, body, `"B0TEST01"`)
	assert.Contains(t, body, `"last_price":29.99`)
	assert.Contains(t, body, `"point_count":2`)
	// Ordered by product ID.
	assert.Less(t, strings.Index(body, "B0TEST01"), strings.Index(body, "B0TEST02"))
}

func TestProductHandler_Get(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterProductRoutes(api, handlers.NewProductHandler(seededMemoryStore(t)))

	resp := api.Get("/api/v1/products/B0TEST01")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"USB-C Hub"`)
	assert.Contains(t, resp.Body.String(), `"priceHistory"`)

	resp = api.Get("/api/v1/products/B0MISSING")
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestProductHandler_Delete(t *testing.T) {
	t.Parallel()

	s := seededMemoryStore(t)
	_, api := humatest.New(t)
	handlers.RegisterProductRoutes(api, handlers.NewProductHandler(s))

	resp := api.Delete("/api/v1/products/B0TEST01")
	require.Equal(t, http.StatusOK, resp.Code)

	snap, err := s.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, snap.History, "B0TEST01")

	resp = api.Delete("/api/v1/products/B0TEST01")
	require.Equal(t, http.StatusNotFound, resp.Code)
}
