package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/config"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/repository"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/utils"
)

func TestFileKeyValueStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	store, err := repository.NewFileKeyValueStore(path)
	require.NoError(t, err)

	_, err = store.Get(ctx, "qrSettings")
	assert.True(t, utils.IsNotFoundError(err))

	require.NoError(t, store.Set(ctx, "qrSettings", []byte(`{"size":500}`)))
	require.NoError(t, store.Set(ctx, "qrHistory", []byte(`[]`)))

	reopened, err := repository.NewFileKeyValueStore(path)
	require.NoError(t, err)

	value, err := reopened.Get(ctx, "qrSettings")
	require.NoError(t, err)
	assert.JSONEq(t, `{"size":500}`, string(value))

	require.NoError(t, reopened.Delete(ctx, "qrHistory"))
	_, err = reopened.Get(ctx, "qrHistory")
	assert.True(t, utils.IsNotFoundError(err))

	assert.NoError(t, reopened.Delete(ctx, "missing"))
	assert.NoError(t, reopened.HealthCheck(ctx))
	assert.NoError(t, reopened.Close())
}

func TestFileKeyValueStore_RejectsInvalidJSON(t *testing.T) {
	store, err := repository.NewFileKeyValueStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	err = store.Set(context.Background(), "qrSettings", []byte("not json"))
	assert.Error(t, err)

	_, err = store.Get(context.Background(), "qrSettings")
	assert.True(t, utils.IsNotFoundError(err))
}

func TestFileKeyValueStore_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

	store, err := repository.NewFileKeyValueStore(path)
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "qrHistory")
	assert.True(t, utils.IsNotFoundError(err))

	require.NoError(t, store.Set(context.Background(), "qrHistory", []byte(`[]`)))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"qrHistory":[]}`, string(raw))
}

func TestMemoryKeyValueStore(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryKeyValueStore()

	value := []byte(`{"name":"jane"}`)
	require.NoError(t, store.Set(ctx, "currentUser", value))
	value[0] = 'X'

	got, err := store.Get(ctx, "currentUser")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"jane"}`, string(got), "stored value must not alias the caller's slice")

	require.NoError(t, store.Delete(ctx, "currentUser"))
	_, err = store.Get(ctx, "currentUser")
	assert.True(t, utils.IsNotFoundError(err))
}

func TestNewKeyValueStore(t *testing.T) {
	t.Run("Memory driver", func(t *testing.T) {
		store, err := repository.NewKeyValueStore(&config.StorageSettings{Driver: "memory"}, nil)
		require.NoError(t, err)
		assert.IsType(t, &repository.MemoryKeyValueStore{}, store)
	})

	t.Run("File driver", func(t *testing.T) {
		cfg := &config.StorageSettings{Driver: "file", Path: filepath.Join(t.TempDir(), "state.json")}
		store, err := repository.NewKeyValueStore(cfg, nil)
		require.NoError(t, err)
		assert.IsType(t, &repository.FileKeyValueStore{}, store)
	})

	t.Run("SQL driver without pool", func(t *testing.T) {
		_, err := repository.NewKeyValueStore(&config.StorageSettings{Driver: "postgres"}, nil)
		assert.Error(t, err)
	})
}
