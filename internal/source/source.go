// Package source provides observation sources that produce raw price
// observations for the tracker, either by scraping a live cart page or
// by reading a JSON fixture file.
package source

import (
	"context"

	domain "github.com/donaldgifford/cart-price-tracker/pkg/types"
)

// Source defines the interface for fetching raw price observations.
type Source interface {
	Fetch(ctx context.Context) ([]domain.RawObservation, error)
}
