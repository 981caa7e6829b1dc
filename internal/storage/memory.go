// Package storage provides snapshot store implementations: in-memory, a
// JSON file on disk, and SQLite.
package storage

import (
	"context"
	"sync"

	"github.com/hammamikhairi/quickmeals/internal/domain"
	"github.com/hammamikhairi/quickmeals/internal/logger"
)

// Compile-time interface check.
var _ domain.SnapshotStore = (*MemoryStore)(nil)

// MemoryStore keeps snapshots in a process-local map keyed by name. Stores
// obtained through Shared see each other's writes, which stands in for "same
// device, next process" in tests. Safe for concurrent access.
type MemoryStore struct {
	key string
	b   *memoryBackend
	log *logger.Logger
}

type memoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
	fail error
}

// NewMemoryStore creates an empty in-memory store for key.
func NewMemoryStore(key string, log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		key: key,
		b:   &memoryBackend{data: make(map[string][]byte)},
		log: log,
	}
}

// Shared returns a store for key backed by the same map as s.
func (s *MemoryStore) Shared(key string) *MemoryStore {
	return &MemoryStore{key: key, b: s.b, log: s.log}
}

// FailSaves makes every subsequent Save return err (nil restores normal
// behaviour). Used to exercise quota and I/O failures.
func (s *MemoryStore) FailSaves(err error) {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	s.b.fail = err
}

// Put stores raw bytes under the store's key without any checks, e.g. to
// plant a corrupt snapshot.
func (s *MemoryStore) Put(data []byte) {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	s.b.data[s.key] = append([]byte(nil), data...)
}

// Load returns a copy of the stored snapshot.
func (s *MemoryStore) Load(ctx context.Context) ([]byte, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()

	b, ok := s.b.data[s.key]
	if !ok {
		s.log.Debug("snapshot %q not found", s.key)
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

// Save replaces the snapshot.
func (s *MemoryStore) Save(ctx context.Context, data []byte) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	if s.b.fail != nil {
		return &domain.PersistenceError{Op: "save", Err: s.b.fail}
	}
	s.b.data[s.key] = append([]byte(nil), data...)
	s.log.Debug("saved snapshot %q (%d bytes)", s.key, len(data))
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
