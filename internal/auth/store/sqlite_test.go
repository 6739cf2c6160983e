package store

import (
	"context"
	"path/filepath"
	"testing"
)

func newSQLiteTestStore(t *testing.T) Store {
	t.Helper()
	s, err := NewSQLite(SQLiteConfig{DSN: filepath.Join(t.TempDir(), "auth.db")})
	if err != nil {
		t.Fatalf("NewSQLite error: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close(context.Background())
	})
	return s
}

func TestSQLiteLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteTestStore(t)

	rec := testRecord("SIG1", "WALLET_A")
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, err := s.Get(ctx, "SIG1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got != rec {
		t.Fatalf("unexpected record: %+v", got)
	}

	if _, err := s.Get(ctx, "MISSING"); err != ErrRecordNotFound {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 1 || list[0] != "SIG1" {
		t.Fatalf("unexpected list: %v", list)
	}

	if err := s.Delete(ctx, "SIG1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := s.Get(ctx, "SIG1"); err != ErrRecordNotFound {
		t.Fatalf("expected ErrRecordNotFound after delete, got %v", err)
	}
}

func TestSQLiteUpsert(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteTestStore(t)

	if err := s.Put(ctx, testRecord("SIG1", "WALLET_A")); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	// Same signature again must not violate the primary key
	if err := s.Put(ctx, testRecord("SIG1", "WALLET_A")); err != nil {
		t.Fatalf("upsert error: %v", err)
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	if stats["total"] != int64(1) {
		t.Fatalf("unexpected stats: %v", stats)
	}
}
