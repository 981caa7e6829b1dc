package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hammamikhairi/quickmeals/internal/domain"
	"github.com/hammamikhairi/quickmeals/internal/logger"
)

// Compile-time interface check.
var _ domain.SnapshotStore = (*FileStore)(nil)

// FileStore keeps one snapshot per key as <dir>/<key>.json. Saves write a
// temp file in the same directory and rename it over the target, so a
// reader sees either the old or the new snapshot, never a mix.
type FileStore struct {
	path string
	log  *logger.Logger
}

// NewFileStore creates a store for key under dir. The directory is created
// lazily on the first Save.
func NewFileStore(dir, key string, log *logger.Logger) *FileStore {
	return &FileStore{
		path: filepath.Join(dir, key+".json"),
		log:  log,
	}
}

// Load reads the snapshot file.
func (s *FileStore) Load(ctx context.Context) ([]byte, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Debug("snapshot file %s does not exist", s.path)
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load", Err: err}
	}
	return b, nil
}

// Save atomically replaces the snapshot file.
func (s *FileStore) Save(ctx context.Context, data []byte) error {
	if err := s.write(data); err != nil {
		return &domain.PersistenceError{Op: "save", Err: err}
	}
	s.log.Debug("wrote %s (%d bytes)", s.path, len(data))
	return nil
}

func (s *FileStore) write(data []byte) (err error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }
