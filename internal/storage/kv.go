// Package storage provides the persistence abstraction for the ledger.
package storage

import "context"

// KV is the scoped key-value capability the ledger persists through. The
// ledger stores its whole group collection as one serialized blob under one
// well-known key, so the interface is deliberately minimal. This abstraction
// allows swapping backends (SQLite, in-memory, etc.) without touching the
// ledger.
type KV interface {
	// Get returns the blob stored under key. The second return value is
	// false when the key is absent; an absent key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores the blob under key, replacing any previous value. The
	// write is atomic: readers never observe a partial value.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases any resources held by the backend.
	Close() error
}
