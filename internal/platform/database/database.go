package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"timetrack/internal/platform/config"
)

// DB couples a connection pool with the SQL dialect it speaks.
type DB struct {
	SQL     *sql.DB
	Dialect Dialect
}

// Open connects using the configured driver and creates the schema if it
// does not exist yet. Opening the same database repeatedly is safe.
func Open(ctx context.Context, cfg config.Config) (*DB, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return OpenSQLite(ctx, cfg.DBPath)
	case config.DriverPostgres:
		return OpenPostgres(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
}

func OpenSQLite(ctx context.Context, dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer at a time; a transaction holds the only connection.
	db.SetMaxOpenConns(1)
	return initialize(ctx, db, SQLite{})
}

func OpenPostgres(ctx context.Context, dsn string) (*DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return initialize(ctx, db, Postgres{})
}

func initialize(ctx context.Context, db *sql.DB, dialect Dialect) (*DB, error) {
	out := &DB{SQL: db, Dialect: dialect}
	if err := out.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return out, nil
}

func (d *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range d.Dialect.Schema() {
		if _, err := d.SQL.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create sessions schema: %w", err)
		}
	}
	return nil
}

func (d *DB) Close() error {
	return d.SQL.Close()
}
