package tracker

import (
	"math"

	domain "github.com/donaldgifford/cart-price-tracker/pkg/types"
)

// EvaluateDropNotifications returns one notification per record whose last
// two points show a price drop of at least threshold (a fraction, inclusive
// comparison). Records with fewer than two points or a zero previous price
// are ignored. The evaluation is idempotent over an unchanged snapshot:
// re-running it yields the same notifications again, so the caller's
// scheduler owns suppression of repeats. Output is ordered by product ID.
func EvaluateDropNotifications(
	history domain.History,
	threshold float64,
) []domain.DropNotification {
	var notifications []domain.DropNotification

	for _, id := range sortedProductIDs(history) {
		rec := history[id]
		if len(rec.PriceHistory) < 2 {
			continue
		}

		current := rec.PriceHistory[len(rec.PriceHistory)-1]
		previous := rec.PriceHistory[len(rec.PriceHistory)-2]
		if previous.Price == 0 {
			continue
		}

		dropFraction := (previous.Price - current.Price) / previous.Price
		if dropFraction < threshold {
			continue
		}

		notifications = append(notifications, domain.DropNotification{
			ProductID:     rec.ProductID,
			Title:         rec.Title,
			PreviousPrice: previous.Price,
			CurrentPrice:  current.Price,
			DropPercent:   roundTo1dp(dropFraction * 100),
		})
	}

	return notifications
}

func roundTo1dp(v float64) float64 {
	return math.Round(v*10) / 10
}
