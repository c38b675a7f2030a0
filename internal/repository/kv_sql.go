package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/database"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/utils"
)

// SQLKeyValueStore keeps blobs in the kv_store table of a MySQL, PostgreSQL
// or SQLite database.
type SQLKeyValueStore struct {
	db *database.Pool
}

// NewSQLKeyValueStore creates a store on an open pool.
func NewSQLKeyValueStore(db *database.Pool) *SQLKeyValueStore {
	return &SQLKeyValueStore{
		db: db,
	}
}

// Get retrieves the blob stored under key.
func (s *SQLKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	startTime := time.Now()

	query := s.db.Dialect.Rebind(fmt.Sprintf(
		`SELECT %s FROM %s WHERE %s = ?`,
		constants.ColumnValue, constants.TableKeyValue, constants.ColumnKey,
	))

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)

	utils.LogDBQuery(query, []interface{}{key}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, keyNotFound(key)
		}
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return []byte(value), nil
}

// Set stores value under key, replacing any previous value.
func (s *SQLKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	startTime := time.Now()

	query := s.upsertQuery()
	updatedAt := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, query, key, string(value), updatedAt)

	utils.LogDBQuery(query, []interface{}{key, value, updatedAt}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}

	log.Debug().
		Str("key", key).
		Int("bytes", len(value)).
		Msg("Key stored")
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *SQLKeyValueStore) Delete(ctx context.Context, key string) error {
	startTime := time.Now()

	query := s.db.Dialect.Rebind(fmt.Sprintf(
		`DELETE FROM %s WHERE %s = ?`, constants.TableKeyValue, constants.ColumnKey,
	))

	_, err := s.db.ExecContext(ctx, query, key)

	utils.LogDBQuery(query, []interface{}{key}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// HealthCheck verifies the database connection.
func (s *SQLKeyValueStore) HealthCheck(ctx context.Context) error {
	return s.db.HealthCheck(ctx)
}

// Close closes the underlying pool.
func (s *SQLKeyValueStore) Close() error {
	s.db.Close()
	return nil
}

func (s *SQLKeyValueStore) upsertQuery() string {
	if s.db.Dialect == database.DialectMySQL {
		return fmt.Sprintf(
			`INSERT INTO %[1]s (%[2]s, %[3]s, %[4]s) VALUES (?, ?, ?)
			ON DUPLICATE KEY UPDATE %[3]s = VALUES(%[3]s), %[4]s = VALUES(%[4]s)`,
			constants.TableKeyValue, constants.ColumnKey, constants.ColumnValue, constants.ColumnUpdatedAt,
		)
	}
	return s.db.Dialect.Rebind(fmt.Sprintf(
		`INSERT INTO %[1]s (%[2]s, %[3]s, %[4]s) VALUES (?, ?, ?)
		ON CONFLICT (%[2]s) DO UPDATE SET %[3]s = excluded.%[3]s, %[4]s = excluded.%[4]s`,
		constants.TableKeyValue, constants.ColumnKey, constants.ColumnValue, constants.ColumnUpdatedAt,
	))
}
