package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSource_Fetch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "observations.json")
	content := `[
		{"product_id": "B0TEST01", "title": "USB-C Hub", "price": 29.99, "currency": "EUR", "timestamp": 1700000000000},
		{"product_id": "B0TEST02", "title": "Desk Lamp", "price": 19.99, "currency": "EUR"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s := NewFileSource(path)
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	observations, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, observations, 2)

	assert.Equal(t, int64(1700000000000), observations[0].Timestamp)
	// Missing timestamps are stamped with the current time.
	assert.Equal(t, fixed.UnixMilli(), observations[1].Timestamp)
}

func TestFileSource_MissingFile(t *testing.T) {
	t.Parallel()

	s := NewFileSource(filepath.Join(t.TempDir(), "missing.json"))
	_, err := s.Fetch(context.Background())
	require.Error(t, err)
}

func TestFileSource_CorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{"), 0o600))

	s := NewFileSource(path)
	_, err := s.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing observations file")
}
