package repository

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/models"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/utils"
)

// SettingsRepository defines methods for persisting the generator settings
type SettingsRepository interface {
	// Load returns the defaults merged with the persisted settings. It always
	// returns usable settings; a non-nil error is a persistence error to log.
	Load(ctx context.Context) (models.Settings, error)
	Save(ctx context.Context, settings models.Settings) error
}

// KVSettingsRepository stores the settings under the qrSettings key.
type KVSettingsRepository struct {
	store KeyValueStore
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(store KeyValueStore) SettingsRepository {
	return &KVSettingsRepository{
		store: store,
	}
}

// Load reads the persisted settings.
func (r *KVSettingsRepository) Load(ctx context.Context) (models.Settings, error) {
	blob, err := r.store.Get(ctx, constants.StorageKeySettings)
	if err != nil {
		if utils.IsNotFoundError(err) {
			return models.DefaultSettings(), nil
		}
		return models.DefaultSettings(), utils.NewPersistenceError(constants.StorageKeySettings, err)
	}
	return models.DeserializeSettings(blob)
}

// Save overwrites the persisted settings.
func (r *KVSettingsRepository) Save(ctx context.Context, settings models.Settings) error {
	blob, err := settings.Serialize()
	if err != nil {
		return utils.NewPersistenceError(constants.StorageKeySettings, err)
	}
	if err := r.store.Set(ctx, constants.StorageKeySettings, blob); err != nil {
		return utils.NewPersistenceError(constants.StorageKeySettings, err)
	}

	log.Debug().
		Int("size", settings.Size).
		Str("format", settings.Format).
		Msg("Settings saved")
	return nil
}
