package repository

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/models"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/utils"
)

// HistoryRepository defines methods for persisting the export history
type HistoryRepository interface {
	// Load returns the persisted history, or an empty one when it is absent
	// or unreadable. A non-nil error is a persistence error to log.
	Load(ctx context.Context) (*models.History, error)
	Save(ctx context.Context, history *models.History) error
}

// KVHistoryRepository stores the history under the qrHistory key.
type KVHistoryRepository struct {
	store KeyValueStore
}

// NewHistoryRepository creates a new HistoryRepository
func NewHistoryRepository(store KeyValueStore) HistoryRepository {
	return &KVHistoryRepository{
		store: store,
	}
}

// Load reads the persisted history.
func (r *KVHistoryRepository) Load(ctx context.Context) (*models.History, error) {
	blob, err := r.store.Get(ctx, constants.StorageKeyHistory)
	if err != nil {
		if utils.IsNotFoundError(err) {
			return models.NewHistory(), nil
		}
		return models.NewHistory(), utils.NewPersistenceError(constants.StorageKeyHistory, err)
	}
	return models.DeserializeHistory(blob)
}

// Save overwrites the persisted history with a full snapshot.
func (r *KVHistoryRepository) Save(ctx context.Context, history *models.History) error {
	blob, err := history.Serialize()
	if err != nil {
		return utils.NewPersistenceError(constants.StorageKeyHistory, err)
	}
	if err := r.store.Set(ctx, constants.StorageKeyHistory, blob); err != nil {
		return utils.NewPersistenceError(constants.StorageKeyHistory, err)
	}

	log.Debug().Int("items", history.Len()).Msg("History saved")
	return nil
}
