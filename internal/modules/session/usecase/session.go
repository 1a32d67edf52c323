package usecase

import (
	"context"
	"time"

	"timetrack/internal/modules/session/domain"
	sessiondto "timetrack/internal/modules/session/dto"
	sessionin "timetrack/internal/modules/session/port/in"
	sessionout "timetrack/internal/modules/session/port/out"
	"timetrack/internal/modules/session/service"
	apperrors "timetrack/internal/platform/errors"
)

const clearPrompt = "Warning: this will delete all tracking data. Are you sure?"

type Interactor struct {
	svc       *service.SessionService
	live      *service.LiveReporter
	confirmer sessionout.Confirmer
}

func NewInteractor(svc *service.SessionService, live *service.LiveReporter, confirmer sessionout.Confirmer) *Interactor {
	return &Interactor{svc: svc, live: live, confirmer: confirmer}
}

var (
	_ sessionin.Usecase        = (*Interactor)(nil)
	_ sessionin.HistoryUsecase = (*Interactor)(nil)
	_ sessionin.LiveUsecase    = (*Interactor)(nil)
)

func (i *Interactor) Start(ctx context.Context, input sessiondto.StartInput) (sessiondto.StartOutput, error) {
	session, err := i.svc.Start(ctx, input.Activity, input.Category)
	if err != nil {
		return sessiondto.StartOutput{}, err
	}
	return sessiondto.StartOutput{
		SessionID: session.ID,
		Activity:  session.Activity,
		Category:  session.Category,
		StartedAt: session.StartTime,
	}, nil
}

func (i *Interactor) Stop(ctx context.Context) (sessiondto.StopOutput, error) {
	session, err := i.svc.Stop(ctx)
	if err != nil {
		return sessiondto.StopOutput{}, err
	}
	return sessiondto.StopOutput{
		SessionID:   session.ID,
		Activity:    session.Activity,
		Category:    session.Category,
		StartedAt:   session.StartTime,
		EndedAt:     *session.EndTime,
		DurationMin: session.DurationMin,
	}, nil
}

func (i *Interactor) GetActive(ctx context.Context) (sessiondto.ActiveSessionOutput, error) {
	session, elapsed, err := i.svc.Active(ctx)
	if err != nil {
		return sessiondto.ActiveSessionOutput{}, err
	}
	return sessiondto.ActiveSessionOutput{
		SessionID: session.ID,
		Activity:  session.Activity,
		Category:  session.Category,
		StartedAt: session.StartTime,
		Elapsed:   elapsed,
		Formatted: domain.FormatElapsed(elapsed),
	}, nil
}

// Clear deletes all sessions. Without Force the confirmer must approve;
// a declined prompt returns ErrCancelled and deletes nothing.
func (i *Interactor) Clear(ctx context.Context, input sessiondto.ClearInput) (sessiondto.ClearOutput, error) {
	if !input.Force {
		if i.confirmer == nil {
			return sessiondto.ClearOutput{}, apperrors.ErrCancelled
		}
		ok, err := i.confirmer.Confirm(ctx, clearPrompt)
		if err != nil {
			return sessiondto.ClearOutput{}, err
		}
		if !ok {
			return sessiondto.ClearOutput{}, apperrors.ErrCancelled
		}
	}
	deleted, err := i.svc.ClearAll(ctx)
	if err != nil {
		return sessiondto.ClearOutput{}, err
	}
	return sessiondto.ClearOutput{Deleted: deleted}, nil
}

func (i *Interactor) ClosedPairs(ctx context.Context, filter sessiondto.HistoryFilter) ([]sessiondto.ActivityKeyOutput, error) {
	keys, err := i.svc.ClosedPairs(ctx, filter.Since, filter.Category)
	if err != nil {
		return nil, err
	}
	out := make([]sessiondto.ActivityKeyOutput, 0, len(keys))
	for _, key := range keys {
		out = append(out, sessiondto.ActivityKeyOutput{Activity: key.Activity, Category: key.Category})
	}
	return out, nil
}

func (i *Interactor) ClosedSessions(ctx context.Context, input sessiondto.ClosedSessionsInput) ([]sessiondto.SessionOutput, error) {
	sessions, err := i.svc.ClosedSessions(ctx, domain.ActivityKey{Activity: input.Activity, Category: input.Category}, input.Since)
	if err != nil {
		return nil, err
	}
	out := make([]sessiondto.SessionOutput, 0, len(sessions))
	for _, s := range sessions {
		item := sessiondto.SessionOutput{
			ID:          s.ID,
			Activity:    s.Activity,
			Category:    s.Category,
			StartedAt:   s.StartTime,
			DurationMin: s.DurationMin,
		}
		if s.EndTime != nil {
			item.EndedAt = *s.EndTime
		}
		out = append(out, item)
	}
	return out, nil
}

func (i *Interactor) Watch(ctx context.Context, startedAt time.Time, sink func(sessiondto.ElapsedOutput)) {
	if i.live == nil {
		return
	}
	i.live.Run(ctx, startedAt, func(e service.Elapsed) {
		sink(sessiondto.ElapsedOutput{At: e.At, Elapsed: e.Duration, Formatted: e.String()})
	})
}
