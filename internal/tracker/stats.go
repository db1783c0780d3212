package tracker

import (
	domain "github.com/donaldgifford/cart-price-tracker/pkg/types"
)

// ComputeStats derives aggregate statistics from a history snapshot in a
// single pass. The drop percentage compares the first and last retained
// points of each record. Only records whose price dropped contribute to the
// average and to the biggest-drop candidate; rising prices and records with a
// zero first price are excluded. Pure function, safe to call concurrently
// over the same snapshot.
func ComputeStats(history domain.History) domain.Stats {
	stats := domain.Stats{
		TotalProducts:   len(history),
		TotalDataPoints: history.TotalDataPoints(),
	}

	var dropSum float64
	var dropCount int

	for _, id := range sortedProductIDs(history) {
		rec := history[id]

		dropPercent, ok := rec.DropPercent()
		if !ok || dropPercent <= 0 {
			continue
		}

		dropSum += dropPercent
		dropCount++

		if stats.BiggestDrop == nil || dropPercent > stats.BiggestDrop.Percent {
			stats.BiggestDrop = &domain.BiggestDrop{
				Percent:      dropPercent,
				ProductTitle: rec.Title,
				ProductID:    rec.ProductID,
			}
		}
	}

	if dropCount > 0 {
		stats.AverageDropPercent = dropSum / float64(dropCount)
	}

	return stats
}
