package out

import (
	"context"
	"time"

	"timetrack/internal/modules/report/domain"
)

// HistoryReader reads closed sessions. A zero since means no lower bound and
// an empty category matches all categories.
type HistoryReader interface {
	Activities(ctx context.Context, since time.Time, category string) ([]domain.Key, error)
	Sessions(ctx context.Context, key domain.Key, since time.Time) ([]domain.Session, error)
}
