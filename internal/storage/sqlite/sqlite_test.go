package sqlite

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestKVStore(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "splitpocket-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("Get on absent key", func(t *testing.T) {
		value, ok, err := store.Get(ctx, "missing")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if ok {
			t.Errorf("Expected absent key, got value %q", value)
		}
	})

	t.Run("Set then Get round-trips", func(t *testing.T) {
		blob := []byte(`{"version":1,"groups":[]}`)
		if err := store.Set(ctx, "ledger/groups", blob); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		value, ok, err := store.Get(ctx, "ledger/groups")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !ok {
			t.Fatal("Expected key to be present")
		}
		if !bytes.Equal(value, blob) {
			t.Errorf("Value mismatch: got %q, want %q", value, blob)
		}
	})

	t.Run("Set overwrites previous value", func(t *testing.T) {
		if err := store.Set(ctx, "ledger/groups", []byte("first")); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := store.Set(ctx, "ledger/groups", []byte("second")); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		value, ok, err := store.Get(ctx, "ledger/groups")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !ok || string(value) != "second" {
			t.Errorf("Expected overwritten value, got %q (present=%v)", value, ok)
		}
	})

	t.Run("value survives reopen", func(t *testing.T) {
		if err := store.Set(ctx, "persist", []byte("kept")); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := store.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}

		reopened, err := New(dbPath)
		if err != nil {
			t.Fatalf("Failed to reopen store: %v", err)
		}
		defer reopened.Close()

		value, ok, err := reopened.Get(ctx, "persist")
		if err != nil {
			t.Fatalf("Get after reopen failed: %v", err)
		}
		if !ok || string(value) != "kept" {
			t.Errorf("Expected persisted value, got %q (present=%v)", value, ok)
		}
	})
}
