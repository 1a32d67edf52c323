package out

import (
	"context"
	"time"

	"timetrack/internal/modules/session/domain"
)

// SessionStore persists sessions. A zero since means no lower bound and an
// empty category matches every category.
type SessionStore interface {
	Insert(ctx context.Context, session domain.Session) (int64, error)
	FindOpen(ctx context.Context) (domain.Session, error)
	Close(ctx context.Context, id int64, endTime time.Time, durationMin int) error
	QuerySince(ctx context.Context, since time.Time, category string) ([]domain.ActivityKey, error)
	SessionsFor(ctx context.Context, key domain.ActivityKey, since time.Time) ([]domain.Session, error)
	DeleteAll(ctx context.Context) (int, error)
}

// Confirmer asks the user to approve a destructive operation.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}
