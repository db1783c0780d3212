// Package tracker implements the price history update engine: merging raw
// observations into bounded per-product histories, deriving aggregate
// statistics, and deciding when a price drop is worth notifying about.
package tracker

import (
	"math"
	"sort"

	domain "github.com/donaldgifford/cart-price-tracker/pkg/types"
)

// Skip reasons for malformed observations. Diagnostic only.
const (
	skipMissingProductID = "missing product id"
	skipNonFinitePrice   = "non-finite price"
	skipNonPositivePrice = "non-positive price"
)

// UpdateHistory merges a batch of observations into a history snapshot and
// returns the updated copy. The input history is never mutated; the caller is
// responsible for persisting the result.
//
// Observations are processed in the order received. A record is created on
// first sight of a product ID. The title is refreshed on every observation.
// A price point is appended only when the price differs from the record's
// current last point (exact comparison); the history is then trimmed from the
// front until it fits maxLen. Malformed observations are skipped and reported
// without aborting the rest of the batch.
func UpdateHistory(
	history domain.History,
	observations []domain.RawObservation,
	maxLen int,
) (domain.History, []domain.PriceDelta, []domain.SkippedObservation) {
	updated := history.Clone()

	var deltas []domain.PriceDelta
	var skipped []domain.SkippedObservation

	for _, obs := range observations {
		if reason := validateObservation(obs); reason != "" {
			skipped = append(skipped, domain.SkippedObservation{
				ProductID: obs.ProductID,
				Reason:    reason,
			})
			continue
		}

		rec, ok := updated[obs.ProductID]
		if !ok {
			rec = &domain.ProductRecord{ProductID: obs.ProductID, Title: obs.Title}
			updated[obs.ProductID] = rec
		}

		// Title follows the latest observation even when no point is appended.
		rec.Title = obs.Title

		last := rec.LastPoint()
		if last != nil && last.Price == obs.Price {
			continue
		}

		var previous *domain.PricePoint
		if last != nil {
			p := *last
			previous = &p
		}

		point := domain.PricePoint{
			Price:     obs.Price,
			Currency:  obs.Currency,
			Timestamp: obs.Timestamp,
		}
		rec.PriceHistory = append(rec.PriceHistory, point)

		// Evict oldest-first until the bound holds. A bulk import can push a
		// record more than one point over, so this must loop.
		for len(rec.PriceHistory) > maxLen {
			rec.PriceHistory = rec.PriceHistory[1:]
		}

		deltas = append(deltas, domain.PriceDelta{
			ProductID: obs.ProductID,
			Previous:  previous,
			Current:   point,
		})
	}

	return updated, deltas, skipped
}

func validateObservation(obs domain.RawObservation) string {
	if obs.ProductID == "" {
		return skipMissingProductID
	}
	if math.IsNaN(obs.Price) || math.IsInf(obs.Price, 0) {
		return skipNonFinitePrice
	}
	if obs.Price <= 0 {
		return skipNonPositivePrice
	}
	return ""
}

// sortedProductIDs returns the history's product IDs in lexical order, giving
// the derivation functions a deterministic iteration order.
func sortedProductIDs(history domain.History) []string {
	ids := make([]string, 0, len(history))
	for id := range history {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
