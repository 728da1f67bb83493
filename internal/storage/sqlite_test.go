package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a migrated test store.
func createTestStore(t *testing.T) (*SQLiteStore, func()) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func TestNewSQLiteStore(t *testing.T) {
	t.Run("rejects empty path", func(t *testing.T) {
		_, err := NewSQLiteStore("")
		require.ErrorIs(t, err, ErrEmptyString)
	})

	t.Run("creates missing directories", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")
		store, err := NewSQLiteStore(dbPath)
		require.NoError(t, err)
		defer func() { _ = store.Close() }()
	})
}

func TestMigrate(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	ctx := context.Background()

	version, err := store.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)

	// Running again is a no-op.
	require.NoError(t, store.Migrate(ctx))
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()

	t.Run("load before any save returns nil", func(t *testing.T) {
		store, cleanup := createTestStore(t)
		defer cleanup()

		data, err := store.LoadSnapshot(ctx)
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("save then load", func(t *testing.T) {
		store, cleanup := createTestStore(t)
		defer cleanup()

		blob := []byte(`{"schemaVersion":2,"startingBudget":1000}`)
		require.NoError(t, store.SaveSnapshot(ctx, blob, 2))

		data, err := store.LoadSnapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, blob, data)
	})

	t.Run("save replaces the previous blob", func(t *testing.T) {
		store, cleanup := createTestStore(t)
		defer cleanup()

		require.NoError(t, store.SaveSnapshot(ctx, []byte(`{"v":1}`), 2))
		require.NoError(t, store.SaveSnapshot(ctx, []byte(`{"v":2}`), 2))

		data, err := store.LoadSnapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"v":2}`), data)
	})

	t.Run("rejects empty blob", func(t *testing.T) {
		store, cleanup := createTestStore(t)
		defer cleanup()

		err := store.SaveSnapshot(ctx, nil, 2)
		require.ErrorIs(t, err, ErrEmptyString)
	})
}
