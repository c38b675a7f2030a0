package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/models"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/repository"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/utils"
)

// failingStore is a KeyValueStore whose every operation fails
type failingStore struct {
	repository.MemoryKeyValueStore
	err error
}

func (s *failingStore) Get(context.Context, string) ([]byte, error) { return nil, s.err }
func (s *failingStore) Set(context.Context, string, []byte) error  { return s.err }
func (s *failingStore) Delete(context.Context, string) error       { return s.err }

func newFailingStore() *failingStore {
	return &failingStore{err: errors.New("disk full")}
}

func TestSettingsRepository_LoadAbsent(t *testing.T) {
	repo := repository.NewSettingsRepository(repository.NewMemoryKeyValueStore())

	settings, err := repo.Load(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), settings)
}

func TestSettingsRepository_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryKeyValueStore()
	repo := repository.NewSettingsRepository(store)

	saved := models.DefaultSettings()
	saved.Content = "hello"
	saved.Size = 500
	saved.ApplyPreset(constants.PresetPastel)
	require.NoError(t, repo.Save(ctx, saved))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestSettingsRepository_LoadPartialBlobMergesDefaults(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryKeyValueStore()
	require.NoError(t, store.Set(ctx, constants.StorageKeySettings, []byte(`{"size":700}`)))

	settings, err := repository.NewSettingsRepository(store).Load(ctx)

	require.NoError(t, err)
	assert.Equal(t, 700, settings.Size)
	assert.Equal(t, constants.DefaultDarkColor, settings.DarkColor)
}

func TestSettingsRepository_LoadCorrupt(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryKeyValueStore()
	require.NoError(t, store.Set(ctx, constants.StorageKeySettings, []byte(`{"size":`)))

	settings, err := repository.NewSettingsRepository(store).Load(ctx)

	assert.True(t, utils.IsPersistenceError(err))
	assert.Equal(t, models.DefaultSettings(), settings)
}

func TestSettingsRepository_StoreFailures(t *testing.T) {
	repo := repository.NewSettingsRepository(newFailingStore())

	settings, err := repo.Load(context.Background())
	assert.True(t, utils.IsPersistenceError(err))
	assert.Equal(t, models.DefaultSettings(), settings)

	err = repo.Save(context.Background(), models.DefaultSettings())
	assert.True(t, utils.IsPersistenceError(err))
}

func TestHistoryRepository(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryKeyValueStore()
	repo := repository.NewHistoryRepository(store)

	history, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, history.Len())

	history.Append(models.HistoryItem{ID: 1, Content: "a", Timestamp: "10:00:00", Image: "data:image/png;base64,AA=="})
	history.Append(models.HistoryItem{ID: 2, Content: "b", Timestamp: "10:00:01", Image: "data:image/png;base64,AA=="})
	require.NoError(t, repo.Save(ctx, history))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, history.Items(), loaded.Items())
}

func TestHistoryRepository_LoadCorrupt(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryKeyValueStore()
	require.NoError(t, store.Set(ctx, constants.StorageKeyHistory, []byte(`[{"id":`)))

	history, err := repository.NewHistoryRepository(store).Load(ctx)

	assert.True(t, utils.IsPersistenceError(err))
	require.NotNil(t, history)
	assert.Equal(t, 0, history.Len())
}

func TestHistoryRepository_StoreFailures(t *testing.T) {
	repo := repository.NewHistoryRepository(newFailingStore())

	history, err := repo.Load(context.Background())
	assert.True(t, utils.IsPersistenceError(err))
	assert.Equal(t, 0, history.Len())

	assert.True(t, utils.IsPersistenceError(repo.Save(context.Background(), history)))
}
