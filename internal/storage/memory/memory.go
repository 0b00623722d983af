// Package memory provides an in-memory implementation of the storage.KV
// interface, used in tests and as a zero-setup development backend.
package memory

import (
	"context"
	"sync"

	"github.com/splitpocket/splitpocket/internal/storage"
)

// Ensure KVStore implements storage.KV
var _ storage.KV = (*KVStore)(nil)

// KVStore implements storage.KV on a map.
type KVStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte

	// SetErr, when non-nil, is returned by every Set call. Tests use it
	// to exercise persistence-failure paths.
	SetErr error
}

// New creates an empty in-memory KV store.
func New() *KVStore {
	return &KVStore{blobs: make(map[string][]byte)}
}

// Get retrieves the blob stored under key.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.blobs[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, true, nil
}

// Set stores a copy of the blob under key.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	if s.SetErr != nil {
		return s.SetErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	s.blobs[key] = cp
	return nil
}

// Close is a no-op for the in-memory store.
func (s *KVStore) Close() error {
	return nil
}
