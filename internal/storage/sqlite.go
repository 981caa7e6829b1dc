package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/hammamikhairi/quickmeals/internal/domain"
	"github.com/hammamikhairi/quickmeals/internal/logger"
	"github.com/hammamikhairi/quickmeals/internal/storage/migrations"
)

// Compile-time interface check.
var _ domain.SnapshotStore = (*SQLiteStore)(nil)

// DBTX is the subset of database/sql used by the store.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLiteStore keeps snapshots in the snapshots table of a SQLite database,
// one row per key.
type SQLiteStore struct {
	db  *sql.DB
	key string
	now func() time.Time
	log *logger.Logger
}

// OpenSQLite opens (or creates) the database at dsn, applies pending
// migrations and returns a store for key. Use ":memory:" for a throwaway
// database.
func OpenSQLite(ctx context.Context, dsn, key string, log *logger.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "open", Err: err}
	}
	// One connection: SQLite has a single writer, and ":memory:" databases
	// are per connection.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, &domain.PersistenceError{Op: "open", Err: err}
	}

	log.Debug("sqlite store ready (dsn=%s, key=%s)", dsn, key)
	return &SQLiteStore{db: db, key: key, now: time.Now, log: log}, nil
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	p, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Load returns the snapshot row for the store's key.
func (s *SQLiteStore) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM snapshots WHERE key = ?`, s.key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		s.log.Debug("snapshot %q not found", s.key)
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load", Err: err}
	}
	return data, nil
}

// Save upserts the snapshot row inside a transaction.
func (s *SQLiteStore) Save(ctx context.Context, data []byte) error {
	err := withTx(ctx, s.db, func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO snapshots (key, data, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
			s.key, data, s.now().UTC())
		return err
	})
	if err != nil {
		return &domain.PersistenceError{Op: "save", Err: err}
	}
	s.log.Debug("saved snapshot %q (%d bytes)", s.key, len(data))
	return nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// withTx begins a transaction, runs fn with it, and commits on success or
// rolls back on error/panic. Panics are rethrown.
func withTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	return fn(ctx, tx)
}
