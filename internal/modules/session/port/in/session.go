package in

import (
	"context"
	"time"

	"timetrack/internal/modules/session/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	Stop(ctx context.Context) (dto.StopOutput, error)
	GetActive(ctx context.Context) (dto.ActiveSessionOutput, error)
	Clear(ctx context.Context, input dto.ClearInput) (dto.ClearOutput, error)
}

// HistoryUsecase reads closed sessions for reporting.
type HistoryUsecase interface {
	ClosedPairs(ctx context.Context, filter dto.HistoryFilter) ([]dto.ActivityKeyOutput, error)
	ClosedSessions(ctx context.Context, input dto.ClosedSessionsInput) ([]dto.SessionOutput, error)
}

// LiveUsecase streams elapsed time for an open session until ctx is done.
type LiveUsecase interface {
	Watch(ctx context.Context, startedAt time.Time, sink func(dto.ElapsedOutput))
}
