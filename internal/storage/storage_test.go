package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/quickmeals/internal/domain"
	"github.com/hammamikhairi/quickmeals/internal/logger"
)

// storeContract runs the same load/save checks against any implementation.
func storeContract(t *testing.T, store domain.SnapshotStore) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Load(ctx)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.Save(ctx, []byte(`[{"id":"a"}]`)))
	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(got))

	// Each save replaces the whole snapshot.
	require.NoError(t, store.Save(ctx, []byte(`[]`)))
	got, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	require.NoError(t, store.Close())
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewMemoryStore("recipes", logger.New(logger.LevelOff, nil)))
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	storeContract(t, NewFileStore(dir, "recipes", logger.New(logger.LevelOff, nil)))
}

func TestSQLiteStore(t *testing.T) {
	store, err := OpenSQLite(context.Background(), ":memory:", "recipes", logger.New(logger.LevelOff, nil))
	require.NoError(t, err)
	storeContract(t, store)
}

func TestMemoryStoreSharedAndFailures(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	ctx := context.Background()
	a := NewMemoryStore("recipes", log)
	b := a.Shared("recipes")
	other := a.Shared("settings")

	require.NoError(t, a.Save(ctx, []byte("x")))
	got, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "x", string(got))

	_, err = other.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	quota := errors.New("quota exceeded")
	a.FailSaves(quota)
	err = b.Save(ctx, []byte("y"))
	require.ErrorIs(t, err, domain.ErrPersistence)
	require.ErrorIs(t, err, quota)

	got, err = a.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "x", string(got), "failed save must not change the snapshot")
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, "recipes", logger.New(logger.LevelOff, nil))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Save(ctx, []byte("[]")))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "recipes.json", entries[0].Name())
	assert.Equal(t, filepath.Join(dir, "recipes.json"), store.path)
}

func TestFileStoreSaveFailureIsPersistenceError(t *testing.T) {
	dir := t.TempDir()
	// A regular file where the data directory should be.
	blocker := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	store := NewFileStore(blocker, "recipes", logger.New(logger.LevelOff, nil))
	err := store.Save(context.Background(), []byte("[]"))
	require.ErrorIs(t, err, domain.ErrPersistence)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), SQLiteFileName)

	first, err := OpenSQLite(ctx, dsn, "recipes", log)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, []byte(`["kept"]`)))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(ctx, dsn, "recipes", log)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `["kept"]`, string(got))
}

func TestOpen(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		driver  string
		want    any
		wantErr bool
	}{
		{DriverMemory, &MemoryStore{}, false},
		{DriverFile, &FileStore{}, false},
		{"", &FileStore{}, false},
		{DriverSQLite, &SQLiteStore{}, false},
		{"postgres", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			store, err := Open(ctx, Options{Driver: tt.driver, Dir: dir, Key: "recipes"}, log)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, store)
			require.NoError(t, store.Close())
		})
	}
}

func TestOpenSQLiteFailureReturnsNilStore(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no", "such", "dir")

	store, err := Open(context.Background(), Options{Driver: DriverSQLite, Dir: missing, Key: "recipes"}, logger.New(logger.LevelOff, nil))
	require.ErrorIs(t, err, domain.ErrPersistence)
	assert.Nil(t, store)
	assert.True(t, store == nil, "store must be a nil interface")
}
