// Package domain defines the core business types for the cart price tracker.
package domain

import (
	"errors"
	"fmt"
	"time"
)

// PricePoint is a single observed price for a product at a point in time.
// Points are immutable once appended to a history.
type PricePoint struct {
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
	Timestamp int64   `json:"timestamp"` // epoch milliseconds
}

// Time returns the point's timestamp as a time.Time.
func (p PricePoint) Time() time.Time {
	return time.UnixMilli(p.Timestamp)
}

// ProductRecord holds the tracked state for one product: the last observed
// display title and a bounded, insertion-ordered price history (oldest first).
type ProductRecord struct {
	ProductID    string       `json:"product_id"`
	Title        string       `json:"title"`
	PriceHistory []PricePoint `json:"priceHistory"`
}

// LastPoint returns the most recent price point, or nil when the history is empty.
func (r *ProductRecord) LastPoint() *PricePoint {
	if len(r.PriceHistory) == 0 {
		return nil
	}
	return &r.PriceHistory[len(r.PriceHistory)-1]
}

// DropPercent computes the relative decrease between the first and last retained
// points, as a percentage. The second return is false when the record has fewer
// than two points or the first price is zero (division guard).
func (r *ProductRecord) DropPercent() (float64, bool) {
	if len(r.PriceHistory) < 2 {
		return 0, false
	}
	first := r.PriceHistory[0].Price
	if first == 0 {
		return 0, false
	}
	last := r.PriceHistory[len(r.PriceHistory)-1].Price
	return (first - last) / first * 100, true
}

// Clone returns a deep copy of the record.
func (r *ProductRecord) Clone() *ProductRecord {
	c := &ProductRecord{
		ProductID: r.ProductID,
		Title:     r.Title,
	}
	if r.PriceHistory != nil {
		c.PriceHistory = make([]PricePoint, len(r.PriceHistory))
		copy(c.PriceHistory, r.PriceHistory)
	}
	return c
}

// History maps product IDs to their tracked records.
type History map[string]*ProductRecord

// Clone returns a deep copy of the history.
func (h History) Clone() History {
	c := make(History, len(h))
	for id, rec := range h {
		c[id] = rec.Clone()
	}
	return c
}

// TotalDataPoints returns the number of price points across all records.
func (h History) TotalDataPoints() int {
	var n int
	for _, rec := range h {
		n += len(rec.PriceHistory)
	}
	return n
}

// RawObservation is one price reading delivered by an observation source.
// SourceURL is passed through for diagnostics but unused by the core.
type RawObservation struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
	Timestamp int64   `json:"timestamp"`
	SourceURL string  `json:"source_url,omitempty"`
}

// Settings holds the user-configurable tracking parameters.
type Settings struct {
	NotificationsEnabled bool    `json:"notificationsEnabled" yaml:"notifications_enabled"`
	CheckIntervalMinutes int     `json:"checkInterval"        yaml:"check_interval_minutes"`
	PriceDropThreshold   float64 `json:"priceDropThreshold"   yaml:"price_drop_threshold"`
}

// DefaultSettings returns the settings applied on first run.
func DefaultSettings() Settings {
	return Settings{
		NotificationsEnabled: true,
		CheckIntervalMinutes: 60,
		PriceDropThreshold:   0.05,
	}
}

// Validate checks settings bounds.
func (s Settings) Validate() error {
	var errs []error
	if s.CheckIntervalMinutes <= 0 {
		errs = append(errs, fmt.Errorf("check interval must be positive, got %d", s.CheckIntervalMinutes))
	}
	if s.PriceDropThreshold < 0 || s.PriceDropThreshold > 1 {
		errs = append(errs, fmt.Errorf("price drop threshold must be in [0,1], got %g", s.PriceDropThreshold))
	}
	return errors.Join(errs...)
}

// Snapshot is a fully materialized copy of the store at one point in time.
// The core engines operate on snapshots and never touch storage directly.
type Snapshot struct {
	History  History  `json:"history"`
	Settings Settings `json:"settings"`
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	return &Snapshot{
		History:  s.History.Clone(),
		Settings: s.Settings,
	}
}

// PriceDelta records one appended price point and the point it superseded.
// Previous is nil for a product's first observation.
type PriceDelta struct {
	ProductID string      `json:"product_id"`
	Previous  *PricePoint `json:"previous,omitempty"`
	Current   PricePoint  `json:"current"`
}

// SkippedObservation reports a malformed observation dropped from a batch.
// Skip reasons are diagnostic only and never surfaced to end users.
type SkippedObservation struct {
	ProductID string `json:"product_id"`
	Reason    string `json:"reason"`
}

// BiggestDrop identifies the record with the largest first-to-last price drop.
type BiggestDrop struct {
	Percent      float64 `json:"percent"`
	ProductTitle string  `json:"product_title"`
	ProductID    string  `json:"product_id"`
}

// Stats holds aggregate statistics derived from a history snapshot.
// Recomputed on demand, never persisted.
type Stats struct {
	TotalProducts      int          `json:"total_products"`
	TotalDataPoints    int          `json:"total_data_points"`
	AverageDropPercent float64      `json:"average_drop_percent"`
	BiggestDrop        *BiggestDrop `json:"biggest_drop,omitempty"`
}

// DropNotification describes one notification-worthy price drop between the
// last two points of a record. DropPercent is rounded to one decimal place.
type DropNotification struct {
	ProductID     string  `json:"product_id"`
	Title         string  `json:"title"`
	PreviousPrice float64 `json:"previous_price"`
	CurrentPrice  float64 `json:"current_price"`
	DropPercent   float64 `json:"drop_percent"`
}

// ExportBundle is the versioned whole-store serialization format.
type ExportBundle struct {
	SchemaVersion string    `json:"version"`
	ExportedAt    time.Time `json:"exportDate"`
	History       History   `json:"history"`
	Settings      Settings  `json:"settings"`
}
