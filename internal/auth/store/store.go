// Package store persists auth records keyed by transaction signature.
package store

import (
	"context"
	"errors"

	"github.com/siglink-dev/siglink-gate/pkg/schema"
)

var (
	// ErrRecordNotFound is returned when no record exists for a signature.
	ErrRecordNotFound = errors.New("record not found")
	// ErrEmptySignature is returned when a caller passes an empty signature.
	ErrEmptySignature = errors.New("signature required")
	// ErrUnavailable is returned when the backing store cannot be reached.
	ErrUnavailable = errors.New("record store unavailable")
)

// Store defines the behaviour the signature record manager requires.
// Put is an unconditional upsert; records carry no TTL and are never expired
// by the store itself.
type Store interface {
	Put(ctx context.Context, rec schema.AuthRecord) error
	Get(ctx context.Context, signature string) (schema.AuthRecord, error)
	Delete(ctx context.Context, signature string) error
	List(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) (map[string]any, error)
	Close(ctx context.Context) error
}

// Config describes the high level store selection parameters.
type Config struct {
	Driver string
	Redis  *RedisConfig
	SQLite *SQLiteConfig
	File   *FileConfig
}

// RedisConfig captures connection options.
type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
	Prefix   string
}

// SQLiteConfig provides the database location.
type SQLiteConfig struct {
	DSN string
}

// FileConfig points the file driver at its data directory. When Key is set,
// record files are sealed with AES-GCM before hitting disk.
type FileConfig struct {
	Dir string
	Key []byte
}
