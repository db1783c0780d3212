package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	domain "github.com/donaldgifford/cart-price-tracker/pkg/types"
)

// FileStore persists the snapshot as a single JSON document on disk.
// Writes go through a temp file and rename so a crash mid-write never
// corrupts the previous snapshot.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// fileDocument is the on-disk layout.
type fileDocument struct {
	History  domain.History  `json:"history"`
	Settings domain.Settings `json:"settings"`
}

// NewFileStore creates a FileStore backed by the given path. The file is
// created lazily on first save.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("file store path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}
	return &FileStore{path: path}, nil
}

// LoadSnapshot reads the snapshot from disk. A missing file yields an empty
// history with default settings; a corrupt file is an error and the store is
// left untouched.
func (s *FileStore) LoadSnapshot(_ context.Context) (*domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) load() (*domain.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &domain.Snapshot{
			History:  domain.History{},
			Settings: domain.DefaultSettings(),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot file: %w", err)
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing snapshot file: %w", err)
	}
	if doc.History == nil {
		doc.History = domain.History{}
	}

	return &domain.Snapshot{History: doc.History, Settings: doc.Settings}, nil
}

// SaveSnapshot writes the snapshot atomically.
func (s *FileStore) SaveSnapshot(_ context.Context, snap *domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(&fileDocument{History: snap.History, Settings: snap.Settings})
}

// SaveSettings rewrites the document with new settings and the existing history.
func (s *FileStore) SaveSettings(_ context.Context, settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return err
	}
	return s.write(&fileDocument{History: snap.History, Settings: settings})
}

// DeleteProduct removes one record and rewrites the document.
func (s *FileStore) DeleteProduct(_ context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := snap.History[productID]; !ok {
		return ErrNotFound
	}
	delete(snap.History, productID)
	return s.write(&fileDocument{History: snap.History, Settings: snap.Settings})
}

// Clear removes all records, keeping settings.
func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return err
	}
	return s.write(&fileDocument{History: domain.History{}, Settings: snap.Settings})
}

func (s *FileStore) write(doc *fileDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing snapshot temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing snapshot file: %w", err)
	}
	return nil
}

// Migrate is a no-op for the file backend.
func (*FileStore) Migrate(_ context.Context) error { return nil }

// Ping verifies the store directory is accessible.
func (s *FileStore) Ping(_ context.Context) error {
	dir := filepath.Dir(s.path)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("store directory unavailable: %w", err)
	}
	return nil
}

// Close is a no-op for the file backend.
func (*FileStore) Close() {}
