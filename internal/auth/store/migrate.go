package store

import (
	"context"
	"fmt"
)

// Migrate copies every record from a source store into a destination store.
// This works for:
// - file -> redis (moving a single node onto shared storage)
// - redis -> file (backup/offline)
// Existing records in the destination are overwritten; the copy is idempotent
// because records are keyed by signature.
func Migrate(ctx context.Context, src, dst Store) error {
	sigs, err := src.List(ctx)
	if err != nil {
		return fmt.Errorf("list source records: %w", err)
	}

	for _, sig := range sigs {
		rec, err := src.Get(ctx, sig)
		if err != nil {
			return fmt.Errorf("read record %s: %w", sig, err)
		}
		if err := dst.Put(ctx, rec); err != nil {
			return fmt.Errorf("write record %s: %w", sig, err)
		}
	}
	return nil
}
