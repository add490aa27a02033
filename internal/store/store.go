package store

import (
	"context"
	"errors"
	"fmt"

	"meeting-dashboard/internal/config"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

// UpdateFunc receives the current value (found is false when the key is
// absent) and returns the value to write. Returning an error aborts the write.
type UpdateFunc func(cur string, found bool) (string, error)

// Store is a flat string key/value area, the server-side stand-in for a
// browser's local storage.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Update runs a read-modify-write on one key. Concurrent Updates on the
	// same Store are serialized.
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Ping(ctx context.Context) error
	Close() error
}

// Open builds the backend named by cfg.LedgerBackend.
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	var (
		st  Store
		err error
	)
	switch cfg.LedgerBackend {
	case config.BackendMemory:
		st = NewMemory()
	case config.BackendFile:
		st, err = NewFile(cfg.DataDir)
	case config.BackendSQLite:
		st, err = OpenSQLite(ctx, cfg.DataDir)
	case config.BackendPostgres:
		st, err = OpenPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.LedgerBackend)
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

const createTable = `CREATE TABLE IF NOT EXISTS local_storage (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`
