package storage

import (
	"context"
	"path/filepath"
	"testing"

	"expenses/internal/core"
)

func openSQLite(t *testing.T) Store {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "data", "expenses.db"), nil)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreContract(t *testing.T) {
	runStoreContract(t, openSQLite)
}

func TestSQLiteStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.db")
	s, err := NewSQLiteStore(path, nil)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	id := mustAppend(t, s, expense("alice", core.NewDate(2024, 1, 5), 50, core.Groceries))
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Migrations are idempotent and data survives.
	s, err = NewSQLiteStore(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.Get(context.Background(), id)
	if err != nil || got.Amount != 50 {
		t.Fatalf("Get after reopen: %+v, %v", got, err)
	}
}
