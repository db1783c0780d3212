package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	domain "github.com/donaldgifford/cart-price-tracker/pkg/types"
)

// SchemaVersion tags export bundles so future format changes can be detected
// on import. Importers treat an unknown or missing version as the earliest
// known schema.
const SchemaVersion = "1.0.0"

// ErrInvalidImport is returned when an import payload is rejected. Import is
// all-or-nothing: a rejected payload leaves the existing store untouched.
var ErrInvalidImport = errors.New("invalid import payload")

// BuildExport materializes a snapshot into a versioned export bundle.
func BuildExport(snap *domain.Snapshot, now time.Time) domain.ExportBundle {
	return domain.ExportBundle{
		SchemaVersion: SchemaVersion,
		ExportedAt:    now.UTC(),
		History:       snap.History.Clone(),
		Settings:      snap.Settings,
	}
}

// ParseImport validates an export bundle payload and converts it into a
// snapshot ready for a wholesale SaveSnapshot. Any structural or semantic
// defect rejects the whole payload.
func ParseImport(data []byte) (*domain.Snapshot, error) {
	var bundle domain.ExportBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}

	// Unknown or missing schemaVersion: read as the earliest known schema,
	// which is the layout decoded above.

	if bundle.History == nil {
		return nil, fmt.Errorf("%w: missing history", ErrInvalidImport)
	}

	for id, rec := range bundle.History {
		if id == "" {
			return nil, fmt.Errorf("%w: record with empty product id", ErrInvalidImport)
		}
		if rec == nil {
			return nil, fmt.Errorf("%w: null record for product %s", ErrInvalidImport, id)
		}
		if rec.ProductID == "" {
			rec.ProductID = id
		} else if rec.ProductID != id {
			return nil, fmt.Errorf("%w: record key %s does not match product id %s", ErrInvalidImport, id, rec.ProductID)
		}
		for _, p := range rec.PriceHistory {
			if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) || p.Price <= 0 {
				return nil, fmt.Errorf("%w: product %s has invalid price %g", ErrInvalidImport, id, p.Price)
			}
		}
	}

	settings := bundle.Settings
	if settings == (domain.Settings{}) {
		settings = domain.DefaultSettings()
	} else if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%w: settings: %v", ErrInvalidImport, err)
	}

	return &domain.Snapshot{History: bundle.History, Settings: settings}, nil
}
