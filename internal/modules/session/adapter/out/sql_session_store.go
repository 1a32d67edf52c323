package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"timetrack/internal/modules/session/domain"
	sessionout "timetrack/internal/modules/session/port/out"
	"timetrack/internal/platform/database"
	apperrors "timetrack/internal/platform/errors"
	"timetrack/internal/platform/tx"
)

// SQLSessionStore keeps sessions in the sessions table of a SQLite or
// PostgreSQL database. It joins any transaction carried by the context.
type SQLSessionStore struct {
	db  *database.DB
	log *logrus.Entry
}

func NewSQLSessionStore(db *database.DB, log *logrus.Entry) sessionout.SessionStore {
	return &SQLSessionStore{db: db, log: log}
}

func (s *SQLSessionStore) exec(ctx context.Context) tx.Execer {
	return tx.Executor(ctx, s.db.SQL)
}

func (s *SQLSessionStore) Insert(ctx context.Context, session domain.Session) (int64, error) {
	const stmt = `INSERT INTO sessions (activity, category, start_time) VALUES (?, ?, ?) RETURNING id`
	var id int64
	err := s.exec(ctx).QueryRowContext(ctx, s.db.Dialect.Rebind(stmt),
		session.Activity,
		session.Category,
		s.db.Dialect.EncodeTime(session.StartTime),
	).Scan(&id)
	if err != nil {
		if s.db.Dialect.IsUniqueViolation(err) {
			return 0, apperrors.ErrActiveSessionExists
		}
		return 0, fmt.Errorf("insert session: %w", err)
	}
	s.log.WithField("id", id).Debug("session row inserted")
	return id, nil
}

func (s *SQLSessionStore) FindOpen(ctx context.Context) (domain.Session, error) {
	const query = `
SELECT id, activity, category, start_time
FROM sessions
WHERE end_time IS NULL
ORDER BY id
LIMIT 1`
	var (
		session domain.Session
		start   database.NullTime
	)
	err := s.exec(ctx).QueryRowContext(ctx, query).Scan(&session.ID, &session.Activity, &session.Category, &start)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, apperrors.ErrNoActiveSession
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("find open session: %w", err)
	}
	session.StartTime = start.Time
	return session, nil
}

// Close fixes end time and duration on a still-open row. A row that is gone
// or already closed yields ErrNoActiveSession.
func (s *SQLSessionStore) Close(ctx context.Context, id int64, endTime time.Time, durationMin int) error {
	const stmt = `UPDATE sessions SET end_time = ?, duration_minutes = ? WHERE id = ? AND end_time IS NULL`
	res, err := s.exec(ctx).ExecContext(ctx, s.db.Dialect.Rebind(stmt), s.db.Dialect.EncodeTime(endTime), durationMin, id)
	if err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	if n == 0 {
		return apperrors.ErrNoActiveSession
	}
	s.log.WithFields(logrus.Fields{"id": id, "duration_min": durationMin}).Debug("session row closed")
	return nil
}

func (s *SQLSessionStore) QuerySince(ctx context.Context, since time.Time, category string) ([]domain.ActivityKey, error) {
	query := strings.Builder{}
	query.WriteString(`SELECT DISTINCT activity, category FROM sessions WHERE end_time IS NOT NULL`)
	var args []any
	if !since.IsZero() {
		query.WriteString(` AND start_time >= ?`)
		args = append(args, s.db.Dialect.EncodeTime(since))
	}
	if category != "" {
		query.WriteString(` AND category = ?`)
		args = append(args, category)
	}
	query.WriteString(` ORDER BY activity, category`)

	rows, err := s.exec(ctx).QueryContext(ctx, s.db.Dialect.Rebind(query.String()), args...)
	if err != nil {
		return nil, fmt.Errorf("query activities: %w", err)
	}
	defer rows.Close()

	var out []domain.ActivityKey
	for rows.Next() {
		key := domain.ActivityKey{}
		if err := rows.Scan(&key.Activity, &key.Category); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		out = append(out, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activities: %w", err)
	}
	return out, nil
}

func (s *SQLSessionStore) SessionsFor(ctx context.Context, key domain.ActivityKey, since time.Time) ([]domain.Session, error) {
	query := strings.Builder{}
	query.WriteString(`
SELECT id, activity, category, start_time, end_time, duration_minutes
FROM sessions
WHERE activity = ? AND category = ? AND end_time IS NOT NULL`)
	args := []any{key.Activity, key.Category}
	if !since.IsZero() {
		query.WriteString(` AND start_time >= ?`)
		args = append(args, s.db.Dialect.EncodeTime(since))
	}
	query.WriteString(` ORDER BY start_time DESC, id DESC`)

	rows, err := s.exec(ctx).QueryContext(ctx, s.db.Dialect.Rebind(query.String()), args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []domain.Session
	for rows.Next() {
		var (
			session    domain.Session
			start, end database.NullTime
			duration   sql.NullInt64
		)
		if err := rows.Scan(&session.ID, &session.Activity, &session.Category, &start, &end, &duration); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		session.StartTime = start.Time
		if end.Valid {
			endTime := end.Time
			session.EndTime = &endTime
		}
		session.DurationMin = int(duration.Int64)
		out = append(out, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

func (s *SQLSessionStore) DeleteAll(ctx context.Context) (int, error) {
	res, err := s.exec(ctx).ExecContext(ctx, `DELETE FROM sessions`)
	if err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	return int(n), nil
}
