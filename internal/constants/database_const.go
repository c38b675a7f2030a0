// Package constants provides shared constant values used throughout the application.
//
// The database_const.go file defines the storage drivers, the key/value table layout
// and the connection parameters used by the SQL-backed stores.
package constants

// Storage Drivers name the supported persistence backends.
const (
	// StorageDriverFile keeps all keys in a single JSON document on disk.
	StorageDriverFile = "file"

	// StorageDriverMemory keeps keys in process memory only.
	StorageDriverMemory = "memory"

	// StorageDriverMySQL stores keys in a MySQL/MariaDB table.
	StorageDriverMySQL = "mysql"

	// StorageDriverPostgres stores keys in a PostgreSQL table.
	StorageDriverPostgres = "postgres"

	// StorageDriverSQLite stores keys in an embedded SQLite database.
	StorageDriverSQLite = "sqlite"
)

// Table Names define the names of database tables used in the application.
const (
	// TableKeyValue is the table holding persisted state blobs.
	TableKeyValue = "kv_store"

	// TableMigrations records the migrations that have been applied.
	TableMigrations = "schema_migrations"
)

// Column Names of the key/value table.
const (
	ColumnKey       = "store_key"
	ColumnValue     = "store_value"
	ColumnUpdatedAt = "updated_at"
)

// Default Storage Locations
const (
	DefaultStoragePath = "./data/qrforge.json"
	DefaultSQLitePath  = "./data/qrforge.db"
)

// PostgreSQL connection string parameters
const (
	PostgresSSLDisable = "sslmode=disable connect_timeout=15"
)
