package store

import "fmt"

// Driver identifiers supported by the record store.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

// New creates a record store based on the provided configuration.
func New(cfg Config) (Store, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverMemory
	}

	switch driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFile:
		if cfg.File == nil || cfg.File.Dir == "" {
			return nil, fmt.Errorf("file driver requires a data directory")
		}
		return NewFile(*cfg.File)
	case DriverRedis:
		return NewRedis(cfg)
	case DriverSQLite:
		if cfg.SQLite == nil || cfg.SQLite.DSN == "" {
			return nil, fmt.Errorf("sqlite driver requires a DSN")
		}
		return NewSQLite(*cfg.SQLite)
	default:
		return nil, fmt.Errorf("unsupported record store driver: %s", driver)
	}
}
