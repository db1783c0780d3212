package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/donaldgifford/cart-price-tracker/internal/metrics"
	"github.com/donaldgifford/cart-price-tracker/internal/notify"
	"github.com/donaldgifford/cart-price-tracker/internal/source"
	"github.com/donaldgifford/cart-price-tracker/internal/store"
	domain "github.com/donaldgifford/cart-price-tracker/pkg/types"
)

// ErrCheckInFlight is returned when a check is requested while another
// check is still running. Checks are serialized, never queued.
var ErrCheckInFlight = errors.New("a price check is already in flight")

// Drops of this many products or more are sent as one batched message.
const batchThreshold = 5

// CheckResult summarizes one completed price check.
type CheckResult struct {
	Observed int `json:"observed"`
	Appended int `json:"appended"`
	Skipped  int `json:"skipped"`
	Notified int `json:"notified"`
}

// Tracker orchestrates the check cycle: fetch observations, update the
// stored history, and fire drop notifications.
type Tracker struct {
	store    store.Store
	source   source.Source
	notifier notify.Notifier
	log      *slog.Logger
	maxLen   int
	now      func() time.Time

	checkMu sync.Mutex
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) {
		t.log = l
	}
}

// WithMaxHistoryLength sets the per-product history bound.
func WithMaxHistoryLength(n int) Option {
	return func(t *Tracker) {
		t.maxLen = n
	}
}

// WithClock sets the time source, used in tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// New creates a Tracker.
func New(s store.Store, src source.Source, n notify.Notifier, opts ...Option) *Tracker {
	t := &Tracker{
		store:    s,
		source:   src,
		notifier: n,
		log:      slog.Default(),
		maxLen:   100,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// RunCheck performs one full check cycle. Concurrent calls are rejected
// with ErrCheckInFlight rather than queued.
func (t *Tracker) RunCheck(ctx context.Context) (*CheckResult, error) {
	if !t.checkMu.TryLock() {
		return nil, ErrCheckInFlight
	}
	defer t.checkMu.Unlock()

	start := t.now()
	metrics.ChecksTotal.Inc()

	result, err := t.runCheck(ctx)

	metrics.CheckDuration.Observe(t.now().Sub(start).Seconds())
	if err != nil {
		metrics.CheckErrorsTotal.Inc()
		return nil, err
	}

	t.log.Info("price check complete",
		"observed", result.Observed,
		"appended", result.Appended,
		"skipped", result.Skipped,
		"notified", result.Notified,
		"duration", t.now().Sub(start),
	)
	return result, nil
}

func (t *Tracker) runCheck(ctx context.Context) (*CheckResult, error) {
	snap, err := t.store.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	observations, err := t.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching observations: %w", err)
	}
	metrics.ObservationsTotal.Add(float64(len(observations)))

	updated, deltas, skipped := UpdateHistory(snap.History, observations, t.maxLen)
	metrics.ObservationsSkippedTotal.Add(float64(len(skipped)))
	metrics.PointsAppendedTotal.Add(float64(len(deltas)))

	for _, s := range skipped {
		t.log.Warn("skipped observation", "product_id", s.ProductID, "reason", s.Reason)
	}

	snap.History = updated
	if err := t.store.SaveSnapshot(ctx, snap); err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}

	metrics.ProductsTracked.Set(float64(len(updated)))
	metrics.DataPointsStored.Set(float64(updated.TotalDataPoints()))

	result := &CheckResult{
		Observed: len(observations),
		Appended: len(deltas),
		Skipped:  len(skipped),
	}

	if snap.Settings.NotificationsEnabled {
		drops := EvaluateDropNotifications(updated, snap.Settings.PriceDropThreshold)
		result.Notified = len(drops)
		t.sendDrops(ctx, drops)
	}

	return result, nil
}

// sendDrops delivers notifications. Delivery failures are logged and counted
// but never fail the check; the history is already persisted.
func (t *Tracker) sendDrops(ctx context.Context, drops []domain.DropNotification) {
	if len(drops) == 0 {
		return
	}

	if len(drops) >= batchThreshold {
		if err := t.notifier.SendBatchDrops(ctx, drops); err != nil {
			metrics.NotificationFailuresTotal.Inc()
			t.log.Error("sending batched drop notifications", "count", len(drops), "error", err)
			return
		}
		metrics.NotificationsFiredTotal.Add(float64(len(drops)))
		return
	}

	for _, drop := range drops {
		if err := t.notifier.SendDrop(ctx, drop); err != nil {
			metrics.NotificationFailuresTotal.Inc()
			t.log.Error("sending drop notification", "product_id", drop.ProductID, "error", err)
			continue
		}
		metrics.NotificationsFiredTotal.Inc()
	}
}

// Stats recomputes aggregate statistics from the current snapshot.
func (t *Tracker) Stats(ctx context.Context) (*domain.Stats, error) {
	snap, err := t.store.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	stats := ComputeStats(snap.History)
	return &stats, nil
}

// Export builds a versioned bundle of the entire store.
func (t *Tracker) Export(ctx context.Context) (*domain.ExportBundle, error) {
	snap, err := t.store.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	bundle := store.BuildExport(snap, t.now())
	return &bundle, nil
}

// Import validates and applies a bundle, replacing the entire store.
// Invalid bundles leave the store untouched.
func (t *Tracker) Import(ctx context.Context, data []byte) error {
	snap, err := store.ParseImport(data)
	if err != nil {
		return err
	}
	if err := t.store.SaveSnapshot(ctx, snap); err != nil {
		return fmt.Errorf("saving imported snapshot: %w", err)
	}

	metrics.ProductsTracked.Set(float64(len(snap.History)))
	metrics.DataPointsStored.Set(float64(snap.History.TotalDataPoints()))
	return nil
}
