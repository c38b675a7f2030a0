package repository

import (
	"context"
	"encoding/json"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/models"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/utils"
)

// UserRepository defines methods for persisting the locally signed-in user
type UserRepository interface {
	// Load returns the current user, or nil when nobody is signed in.
	Load(ctx context.Context) (*models.CurrentUser, error)
	Save(ctx context.Context, user *models.CurrentUser) error
	Clear(ctx context.Context) error
}

// KVUserRepository stores the user under the currentUser key.
type KVUserRepository struct {
	store KeyValueStore
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(store KeyValueStore) UserRepository {
	return &KVUserRepository{
		store: store,
	}
}

// Load reads the current user.
func (r *KVUserRepository) Load(ctx context.Context) (*models.CurrentUser, error) {
	blob, err := r.store.Get(ctx, constants.StorageKeyCurrentUser)
	if err != nil {
		if utils.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, utils.NewPersistenceError(constants.StorageKeyCurrentUser, err)
	}

	var user models.CurrentUser
	if err := json.Unmarshal(blob, &user); err != nil {
		return nil, utils.NewPersistenceError(constants.StorageKeyCurrentUser, err)
	}
	return &user, nil
}

// Save stores the current user.
func (r *KVUserRepository) Save(ctx context.Context, user *models.CurrentUser) error {
	blob, err := json.Marshal(user)
	if err != nil {
		return utils.NewPersistenceError(constants.StorageKeyCurrentUser, err)
	}
	if err := r.store.Set(ctx, constants.StorageKeyCurrentUser, blob); err != nil {
		return utils.NewPersistenceError(constants.StorageKeyCurrentUser, err)
	}
	return nil
}

// Clear signs the current user out.
func (r *KVUserRepository) Clear(ctx context.Context) error {
	if err := r.store.Delete(ctx, constants.StorageKeyCurrentUser); err != nil {
		return utils.NewPersistenceError(constants.StorageKeyCurrentUser, err)
	}
	return nil
}
