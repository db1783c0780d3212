package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/cart-price-tracker/pkg/types"
)

func record(id, title string, prices ...float64) *domain.ProductRecord {
	rec := &domain.ProductRecord{ProductID: id, Title: title}
	for i, p := range prices {
		rec.PriceHistory = append(rec.PriceHistory, domain.PricePoint{
			Price:     p,
			Currency:  "EUR",
			Timestamp: int64(i + 1),
		})
	}
	return rec
}

func TestComputeStats_SingleDrop(t *testing.T) {
	t.Parallel()

	history := domain.History{
		"B0X": record("B0X", "Widget", 20, 15),
	}

	stats := ComputeStats(history)
	assert.Equal(t, 1, stats.TotalProducts)
	assert.Equal(t, 2, stats.TotalDataPoints)
	assert.InDelta(t, 25.0, stats.AverageDropPercent, 1e-9)
	require.NotNil(t, stats.BiggestDrop)
	assert.InDelta(t, 25.0, stats.BiggestDrop.Percent, 1e-9)
	assert.Equal(t, "Widget", stats.BiggestDrop.ProductTitle)
	assert.Equal(t, "B0X", stats.BiggestDrop.ProductID)
}

func TestComputeStats_RisingPricesExcluded(t *testing.T) {
	t.Parallel()

	history := domain.History{
		"B0UP":   record("B0UP", "Riser", 10, 15),
		"B0DOWN": record("B0DOWN", "Faller", 10, 8),
	}

	stats := ComputeStats(history)
	assert.Equal(t, 2, stats.TotalProducts)
	// Only the drop contributes to the average.
	assert.InDelta(t, 20.0, stats.AverageDropPercent, 1e-9)
	require.NotNil(t, stats.BiggestDrop)
	assert.Equal(t, "B0DOWN", stats.BiggestDrop.ProductID)
}

func TestComputeStats_BiggestDropPicked(t *testing.T) {
	t.Parallel()

	history := domain.History{
		"B0A": record("B0A", "Small", 100, 95),
		"B0B": record("B0B", "Big", 100, 50),
		"B0C": record("B0C", "Medium", 100, 80),
	}

	stats := ComputeStats(history)
	require.NotNil(t, stats.BiggestDrop)
	assert.Equal(t, "B0B", stats.BiggestDrop.ProductID)
	assert.InDelta(t, 50.0, stats.BiggestDrop.Percent, 1e-9)
}

func TestComputeStats_ZeroFirstPriceExcluded(t *testing.T) {
	t.Parallel()

	history := domain.History{
		"B0X": record("B0X", "Odd", 0, 5),
	}

	stats := ComputeStats(history)
	assert.Zero(t, stats.AverageDropPercent)
	assert.Nil(t, stats.BiggestDrop)
}

func TestComputeStats_SinglePointRecordsExcluded(t *testing.T) {
	t.Parallel()

	history := domain.History{
		"B0X": record("B0X", "Lonely", 10),
	}

	stats := ComputeStats(history)
	assert.Equal(t, 1, stats.TotalProducts)
	assert.Equal(t, 1, stats.TotalDataPoints)
	assert.Zero(t, stats.AverageDropPercent)
	assert.Nil(t, stats.BiggestDrop)
}

func TestComputeStats_Empty(t *testing.T) {
	t.Parallel()

	stats := ComputeStats(domain.History{})
	assert.Zero(t, stats.TotalProducts)
	assert.Zero(t, stats.TotalDataPoints)
	assert.Zero(t, stats.AverageDropPercent)
	assert.Nil(t, stats.BiggestDrop)
}
