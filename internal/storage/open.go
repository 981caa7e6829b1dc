package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hammamikhairi/quickmeals/internal/domain"
	"github.com/hammamikhairi/quickmeals/internal/logger"
)

// Driver names accepted by Open.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// SQLiteFileName is the database file created under the data directory.
const SQLiteFileName = "quickmeals.db"

// Options selects and configures a snapshot store.
type Options struct {
	Driver string
	Dir    string // data directory for file and sqlite drivers
	Key    string // snapshot key, e.g. "recipes"
}

// Open builds the store named by opts.Driver.
func Open(ctx context.Context, opts Options, log *logger.Logger) (domain.SnapshotStore, error) {
	switch opts.Driver {
	case DriverMemory:
		return NewMemoryStore(opts.Key, log), nil
	case DriverFile, "":
		return NewFileStore(opts.Dir, opts.Key, log), nil
	case DriverSQLite:
		store, err := OpenSQLite(ctx, filepath.Join(opts.Dir, SQLiteFileName), opts.Key, log)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", opts.Driver)
	}
}
