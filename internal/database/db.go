// Package database opens the SQL connection pool behind the key/value store.
// MySQL, PostgreSQL and SQLite are supported; the Dialect of a Pool tells
// repositories and migrations how to phrase their statements.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/yasinhessnawi1/QRForge_Backend/internal/config"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
)

// Dialect identifies the SQL flavour of a connection.
type Dialect string

// Supported dialects.
const (
	DialectMySQL    Dialect = constants.StorageDriverMySQL
	DialectPostgres Dialect = constants.StorageDriverPostgres
	DialectSQLite   Dialect = constants.StorageDriverSQLite
)

// ParseDialect maps a storage driver name onto its dialect.
func ParseDialect(driver string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(driver)); d {
	case DialectMySQL, DialectPostgres, DialectSQLite:
		return d, nil
	default:
		return "", fmt.Errorf("unsupported SQL driver %q", driver)
	}
}

// DriverName returns the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	return string(d)
}

// Rebind rewrites '?' placeholders into the dialect's positional form.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Pool represents a database connection pool
type Pool struct {
	*sql.DB
	Dialect Dialect
}

// NewPool wraps an open handle.
func NewPool(db *sql.DB, dialect Dialect) *Pool {
	return &Pool{DB: db, Dialect: dialect}
}

// Connect creates a new database connection pool for the configured driver.
func Connect(cfg *config.AppConfig) (*Pool, error) {
	dialect, err := ParseDialect(cfg.Storage.Driver)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.DBConnectionTimeout)
	defer cancel()

	log.Info().
		Str("driver", string(dialect)).
		Str("host", cfg.Storage.Host).
		Int("port", cfg.Storage.Port).
		Str("database", cfg.Storage.Name).
		Str("path", cfg.Storage.Path).
		Msg("Connecting to database")

	switch dialect {
	case DialectMySQL:
		if err := ensureMySQLDatabase(ctx, cfg.Storage.ConnectionString()); err != nil {
			return nil, err
		}
	case DialectSQLite:
		if dir := filepath.Dir(cfg.Storage.Path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open(dialect.DriverName(), cfg.Storage.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	maxConns := cfg.Storage.MaxConns
	if dialect == DialectSQLite {
		// single writer
		maxConns = 1
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(min(cfg.Storage.MinConns, maxConns))
	db.SetConnMaxLifetime(constants.DBConnMaxLifetime)
	db.SetConnMaxIdleTime(constants.DBConnMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Str("driver", string(dialect)).Msg("Successfully connected to database")
	return NewPool(db, dialect), nil
}

// ensureMySQLDatabase connects without a schema and creates the configured
// one if it does not exist yet.
func ensureMySQLDatabase(ctx context.Context, dsn string) error {
	dsnCfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return fmt.Errorf("invalid MySQL DSN: %w", err)
	}
	name := dsnCfg.DBName
	dsnCfg.DBName = ""

	rootDB, err := sql.Open(DialectMySQL.DriverName(), dsnCfg.FormatDSN())
	if err != nil {
		return fmt.Errorf("failed to connect to root database: %w", err)
	}
	defer rootDB.Close()

	if _, err := rootDB.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", name)); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	log.Info().Msgf("Ensured database '%s' exists", name)
	return nil
}

// Close closes the database connection pool
func (p *Pool) Close() {
	if p != nil && p.DB != nil {
		log.Info().Msg("Closing database connection pool")
		p.DB.Close()
	}
}

// Transaction executes a function within a transaction
func (p *Pool) Transaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := p.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("Failed to rollback transaction after panic")
			}
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("failed to rollback transaction: %w", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// HealthCheck performs a health check on the database connection
func (p *Pool) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DBHealthCheckTimeout)
	defer cancel()

	if err := p.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	var result int
	if err := p.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database query test failed: %w", err)
	}

	if result != 1 {
		return fmt.Errorf("database returned unexpected result: %d", result)
	}

	return nil
}
