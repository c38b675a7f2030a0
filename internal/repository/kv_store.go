// Package repository persists the generator state. All state is stored as
// JSON blobs under a handful of fixed keys in a KeyValueStore; the typed
// repositories on top encode and decode those blobs.
package repository

import (
	"context"
	"strings"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/config"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/database"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/utils"
)

// KeyValueStore persists opaque blobs by key. Get reports an absent key with
// a not-found AppError.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	HealthCheck(ctx context.Context) error
	Close() error
}

// NewKeyValueStore opens the store selected by the storage configuration.
// For SQL drivers the pool must already be connected and migrated.
func NewKeyValueStore(cfg *config.StorageSettings, pool *database.Pool) (KeyValueStore, error) {
	switch strings.ToLower(cfg.Driver) {
	case constants.StorageDriverMemory:
		return NewMemoryKeyValueStore(), nil
	case constants.StorageDriverFile, "":
		return NewFileKeyValueStore(cfg.Path)
	default:
		if pool == nil {
			return nil, utils.NewBadRequestError("storage driver " + cfg.Driver + " requires a database connection")
		}
		return NewSQLKeyValueStore(pool), nil
	}
}

func keyNotFound(key string) error {
	return utils.NewNotFoundError("Key", key)
}
