package out

import (
	"context"
	"time"

	"timetrack/internal/modules/report/domain"
	reportout "timetrack/internal/modules/report/port/out"
	sessiondto "timetrack/internal/modules/session/dto"
	sessionin "timetrack/internal/modules/session/port/in"
)

// SessionHistoryAdapter reads report input through the session module's
// history use case.
type SessionHistoryAdapter struct {
	history sessionin.HistoryUsecase
}

func NewSessionHistoryAdapter(history sessionin.HistoryUsecase) reportout.HistoryReader {
	return &SessionHistoryAdapter{history: history}
}

func (a *SessionHistoryAdapter) Activities(ctx context.Context, since time.Time, category string) ([]domain.Key, error) {
	pairs, err := a.history.ClosedPairs(ctx, sessiondto.HistoryFilter{Since: since, Category: category})
	if err != nil {
		return nil, err
	}
	keys := make([]domain.Key, 0, len(pairs))
	for _, pair := range pairs {
		keys = append(keys, domain.Key{Activity: pair.Activity, Category: pair.Category})
	}
	return keys, nil
}

func (a *SessionHistoryAdapter) Sessions(ctx context.Context, key domain.Key, since time.Time) ([]domain.Session, error) {
	items, err := a.history.ClosedSessions(ctx, sessiondto.ClosedSessionsInput{
		Activity: key.Activity,
		Category: key.Category,
		Since:    since,
	})
	if err != nil {
		return nil, err
	}
	sessions := make([]domain.Session, 0, len(items))
	for _, item := range items {
		sessions = append(sessions, domain.Session{
			ID:          item.ID,
			StartedAt:   item.StartedAt,
			EndedAt:     item.EndedAt,
			DurationMin: item.DurationMin,
		})
	}
	return sessions, nil
}
