package store

import (
	"context"
	"testing"
)

func TestMigrateCopiesEverything(t *testing.T) {
	ctx := context.Background()

	src, err := NewFile(FileConfig{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewFile error: %v", err)
	}
	dst := NewMemory()

	recs := []string{"SIG1", "SIG2", "SIG3"}
	for _, sig := range recs {
		if err := src.Put(ctx, testRecord(sig, "WALLET_"+sig)); err != nil {
			t.Fatalf("seed Put error: %v", err)
		}
	}

	if err := Migrate(ctx, src, dst); err != nil {
		t.Fatalf("Migrate error: %v", err)
	}

	for _, sig := range recs {
		got, err := dst.Get(ctx, sig)
		if err != nil {
			t.Fatalf("destination missing %s: %v", sig, err)
		}
		if got.SenderWallet.Pubkey != "WALLET_"+sig {
			t.Errorf("record %s corrupted: %+v", sig, got)
		}
	}
}

func TestMigrateEmptySource(t *testing.T) {
	ctx := context.Background()
	if err := Migrate(ctx, NewMemory(), NewMemory()); err != nil {
		t.Fatalf("Migrate of empty store should succeed: %v", err)
	}
}

func TestFactorySelectsDriver(t *testing.T) {
	s, err := New(Config{})
	if err != nil {
		t.Fatalf("default driver error: %v", err)
	}
	stats, _ := s.Stats(context.Background())
	if stats["type"] != "memory" {
		t.Errorf("expected memory default, got %v", stats["type"])
	}

	if _, err := New(Config{Driver: "cassandra"}); err == nil {
		t.Error("expected error for unsupported driver")
	}
	if _, err := New(Config{Driver: DriverFile}); err == nil {
		t.Error("expected error for file driver without directory")
	}
	if _, err := New(Config{Driver: DriverSQLite}); err == nil {
		t.Error("expected error for sqlite driver without DSN")
	}
}
