package store

import (
	"context"
	"sync"

	domain "github.com/donaldgifford/cart-price-tracker/pkg/types"
)

// MemoryStore is an in-memory Store. Used in tests and for dry-run checks
// that must not touch durable storage.
type MemoryStore struct {
	mu   sync.Mutex
	snap *domain.Snapshot
}

// NewMemoryStore creates an empty MemoryStore with default settings.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snap: &domain.Snapshot{
			History:  domain.History{},
			Settings: domain.DefaultSettings(),
		},
	}
}

// LoadSnapshot returns a deep copy of the current snapshot.
func (s *MemoryStore) LoadSnapshot(_ context.Context) (*domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone(), nil
}

// SaveSnapshot replaces the current snapshot.
func (s *MemoryStore) SaveSnapshot(_ context.Context, snap *domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap.Clone()
	return nil
}

// SaveSettings replaces the settings, keeping the history.
func (s *MemoryStore) SaveSettings(_ context.Context, settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Settings = settings
	return nil
}

// DeleteProduct removes one record.
func (s *MemoryStore) DeleteProduct(_ context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.snap.History[productID]; !ok {
		return ErrNotFound
	}
	delete(s.snap.History, productID)
	return nil
}

// Clear removes all records, keeping settings.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.History = domain.History{}
	return nil
}

// Migrate is a no-op.
func (*MemoryStore) Migrate(_ context.Context) error { return nil }

// Ping always succeeds.
func (*MemoryStore) Ping(_ context.Context) error { return nil }

// Close is a no-op.
func (*MemoryStore) Close() {}
