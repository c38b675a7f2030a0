package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/database"
)

// createKeyValueTable creates the table holding the persisted state blobs
// (current user, settings and history), one row per key.
func createKeyValueTable() Migration {
	return Migration{
		Name:        "create_kv_store_table",
		Description: "Creates the kv_store table",
		TableName:   constants.TableKeyValue,
		RunSQL: func(ctx context.Context, tx *sql.Tx, dialect database.Dialect) error {
			_, err := tx.ExecContext(ctx, keyValueTableDDL(dialect))
			return err
		},
	}
}

func keyValueTableDDL(dialect database.Dialect) string {
	switch dialect {
	case database.DialectMySQL:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				%s VARCHAR(64) NOT NULL PRIMARY KEY,
				%s LONGTEXT NOT NULL,
				%s TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
			) DEFAULT CHARSET=utf8mb4
		`, constants.TableKeyValue, constants.ColumnKey, constants.ColumnValue, constants.ColumnUpdatedAt)
	case database.DialectPostgres:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				%s VARCHAR(64) PRIMARY KEY,
				%s TEXT NOT NULL,
				%s TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`, constants.TableKeyValue, constants.ColumnKey, constants.ColumnValue, constants.ColumnUpdatedAt)
	default:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				%s TEXT PRIMARY KEY,
				%s TEXT NOT NULL,
				%s TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`, constants.TableKeyValue, constants.ColumnKey, constants.ColumnValue, constants.ColumnUpdatedAt)
	}
}
