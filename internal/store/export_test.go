package store_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/cart-price-tracker/internal/store"
	domain "github.com/donaldgifford/cart-price-tracker/pkg/types"
)

func TestExportImport_RoundTrip(t *testing.T) {
	t.Parallel()

	snap := testSnapshot()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	bundle := store.BuildExport(snap, now)
	assert.Equal(t, store.SchemaVersion, bundle.SchemaVersion)
	assert.Equal(t, now, bundle.ExportedAt)

	data, err := json.Marshal(bundle)
	require.NoError(t, err)

	imported, err := store.ParseImport(data)
	require.NoError(t, err)
	assert.Equal(t, snap.History, imported.History)
	assert.Equal(t, snap.Settings, imported.Settings)
}

func TestBuildExport_CopiesHistory(t *testing.T) {
	t.Parallel()

	snap := testSnapshot()
	bundle := store.BuildExport(snap, time.Now())

	bundle.History["B0TEST01"].Title = "mutated"
	assert.Equal(t, "USB-C Hub", snap.History["B0TEST01"].Title)
}

func TestParseImport_UnknownVersionReadAsEarliest(t *testing.T) {
	t.Parallel()

	payload := `{
		"version": "9.9.9",
		"history": {
			"B0X": {"title": "Thing", "priceHistory": [{"price": 5.0, "currency": "EUR", "timestamp": 1}]}
		},
		"settings": {"notificationsEnabled": true, "checkInterval": 60, "priceDropThreshold": 0.05}
	}`

	snap, err := store.ParseImport([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, "Thing", snap.History["B0X"].Title)
	assert.Equal(t, "B0X", snap.History["B0X"].ProductID)
}

func TestParseImport_MissingVersionAndSettings(t *testing.T) {
	t.Parallel()

	payload := `{"history": {}}`

	snap, err := store.ParseImport([]byte(payload))
	require.NoError(t, err)
	assert.Empty(t, snap.History)
	assert.Equal(t, domain.DefaultSettings(), snap.Settings)
}

func TestParseImport_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: `{{{`},
		{name: "missing history", payload: `{"version": "1.0.0"}`},
		{
			name:    "negative price",
			payload: `{"history": {"B0X": {"title": "T", "priceHistory": [{"price": -5, "timestamp": 1}]}}}`,
		},
		{
			name:    "zero price",
			payload: `{"history": {"B0X": {"title": "T", "priceHistory": [{"price": 0, "timestamp": 1}]}}}`,
		},
		{
			name:    "empty product key",
			payload: `{"history": {"": {"title": "T"}}}`,
		},
		{
			name:    "null record",
			payload: `{"history": {"B0X": null}}`,
		},
		{
			name:    "mismatched product id",
			payload: `{"history": {"B0X": {"product_id": "B0Y", "title": "T"}}}`,
		},
		{
			name:    "invalid settings",
			payload: `{"history": {}, "settings": {"notificationsEnabled": true, "checkInterval": -1, "priceDropThreshold": 0.05}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := store.ParseImport([]byte(tt.payload))
			assert.ErrorIs(t, err, store.ErrInvalidImport)
		})
	}
}
