// Package store defines the snapshot store abstraction for cart-price-tracker.
// All business logic depends on the Store interface, never on concrete
// implementations. The store holds one logical history keyed by product ID;
// reads return a materialized snapshot and writes replace it wholesale.
package store

import (
	"context"
	"errors"

	domain "github.com/donaldgifford/cart-price-tracker/pkg/types"
)

// ErrNotFound is returned when a requested product record does not exist.
var ErrNotFound = errors.New("product not found")

// Store defines all data access operations for cart-price-tracker.
type Store interface {
	// LoadSnapshot returns a materialized copy of the whole store. A store
	// that has never been written returns an empty history with default
	// settings.
	LoadSnapshot(ctx context.Context) (*domain.Snapshot, error)

	// SaveSnapshot replaces the persisted snapshot wholesale. A failed save
	// must leave the previously persisted snapshot intact.
	SaveSnapshot(ctx context.Context, snap *domain.Snapshot) error

	// SaveSettings persists settings without touching the history.
	SaveSettings(ctx context.Context, settings domain.Settings) error

	// DeleteProduct removes a single tracked record.
	DeleteProduct(ctx context.Context, productID string) error

	// Clear removes all tracked records. Settings survive.
	Clear(ctx context.Context) error

	// Migrate applies pending schema migrations. A no-op for backends
	// without a schema.
	Migrate(ctx context.Context) error

	// Ping verifies the backing storage is reachable.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close()
}
