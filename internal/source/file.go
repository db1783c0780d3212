package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	domain "github.com/donaldgifford/cart-price-tracker/pkg/types"
)

// FileSource reads observations from a JSON fixture file. Useful for
// development and for feeding the tracker from an external scraper.
type FileSource struct {
	path string
	now  func() time.Time
}

// NewFileSource creates a FileSource reading from path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path, now: time.Now}
}

// Fetch reads and parses the fixture file. Observations without a timestamp
// are stamped with the current time.
func (s *FileSource) Fetch(_ context.Context) ([]domain.RawObservation, error) {
	data, err := os.ReadFile(s.path) //nolint:gosec // fixture path from trusted config
	if err != nil {
		return nil, fmt.Errorf("reading observations file: %w", err)
	}

	var observations []domain.RawObservation
	if err := json.Unmarshal(data, &observations); err != nil {
		return nil, fmt.Errorf("parsing observations file: %w", err)
	}

	timestamp := s.now().UnixMilli()
	for i := range observations {
		if observations[i].Timestamp == 0 {
			observations[i].Timestamp = timestamp
		}
	}

	return observations, nil
}
