package database

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect isolates the statements and encodings that differ per driver.
type Dialect interface {
	Name() string
	Schema() []string
	// Rebind rewrites ? placeholders into the driver's native form.
	Rebind(query string) string
	EncodeTime(t time.Time) any
	IsUniqueViolation(err error) bool
}

// sqliteTimeLayout is fixed width so lexical order matches time order.
const sqliteTimeLayout = "2006-01-02T15:04:05Z"

type SQLite struct{}

func (SQLite) Name() string { return "sqlite" }

func (SQLite) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS sessions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  activity TEXT NOT NULL,
  category TEXT NOT NULL,
  start_time TEXT NOT NULL,
  end_time TEXT,
  duration_minutes INTEGER
)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_start ON sessions(start_time)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_activity ON sessions(activity, category)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_single_open ON sessions((end_time IS NULL)) WHERE end_time IS NULL`,
	}
}

func (SQLite) Rebind(query string) string { return query }

func (SQLite) EncodeTime(t time.Time) any {
	return t.UTC().Format(sqliteTimeLayout)
}

func (SQLite) IsUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}

type Postgres struct{}

func (Postgres) Name() string { return "postgres" }

func (Postgres) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS sessions (
  id BIGSERIAL PRIMARY KEY,
  activity TEXT NOT NULL,
  category TEXT NOT NULL,
  start_time TIMESTAMPTZ NOT NULL,
  end_time TIMESTAMPTZ,
  duration_minutes INTEGER
)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_start ON sessions(start_time)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_activity ON sessions(activity, category)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_single_open ON sessions((end_time IS NULL)) WHERE end_time IS NULL`,
	}
}

func (Postgres) Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
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

func (Postgres) EncodeTime(t time.Time) any {
	return t.UTC()
}

func (Postgres) IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
