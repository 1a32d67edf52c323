package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"timetrack/internal/modules/session/domain"
	sessionout "timetrack/internal/modules/session/port/out"
	"timetrack/internal/platform/clock"
	apperrors "timetrack/internal/platform/errors"
	"timetrack/internal/platform/tx"
)

type SessionService struct {
	clock           clock.Clock
	store           sessionout.SessionStore
	tx              tx.Manager
	defaultCategory string
	log             *logrus.Entry
}

func NewSessionService(clock clock.Clock, store sessionout.SessionStore, txm tx.Manager, defaultCategory string, log *logrus.Entry) *SessionService {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &SessionService{clock: clock, store: store, tx: txm, defaultCategory: defaultCategory, log: log}
}

// now reads the clock at second precision, the resolution sessions are stored at.
func (s *SessionService) now() time.Time {
	return s.clock.Now().Truncate(time.Second)
}

// Start opens a new session unless one is already open. The check and the
// insert share a transaction; the store's single-open index backs it up.
func (s *SessionService) Start(ctx context.Context, activity, category string) (domain.Session, error) {
	activity = strings.TrimSpace(activity)
	if activity == "" {
		return domain.Session{}, fmt.Errorf("%w: activity is required", apperrors.ErrInvalidInput)
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = s.defaultCategory
	}

	var session domain.Session
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		ongoing, err := s.store.FindOpen(ctx)
		if err == nil {
			return &apperrors.AlreadyTrackingError{Activity: ongoing.Activity}
		}
		if !errors.Is(err, apperrors.ErrNoActiveSession) {
			return err
		}

		session = domain.Session{Activity: activity, Category: category, StartTime: s.now()}
		id, err := s.store.Insert(ctx, session)
		if err != nil {
			return err
		}
		session.ID = id
		return nil
	})
	if err != nil {
		return domain.Session{}, err
	}
	s.log.WithFields(logrus.Fields{"id": session.ID, "activity": session.Activity, "category": session.Category}).Info("session started")
	return session, nil
}

// Stop closes the open session and fixes its duration.
func (s *SessionService) Stop(ctx context.Context) (domain.Session, error) {
	var closed domain.Session
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		open, err := s.store.FindOpen(ctx)
		if err != nil {
			return err
		}
		closed = open.Close(s.now())
		return s.store.Close(ctx, closed.ID, *closed.EndTime, closed.DurationMin)
	})
	if err != nil {
		return domain.Session{}, err
	}
	s.log.WithFields(logrus.Fields{"id": closed.ID, "activity": closed.Activity, "duration_min": closed.DurationMin}).Info("session stopped")
	return closed, nil
}

func (s *SessionService) Active(ctx context.Context) (domain.Session, time.Duration, error) {
	open, err := s.store.FindOpen(ctx)
	if err != nil {
		return domain.Session{}, 0, err
	}
	now := s.clock.Now()
	open.StartTime = open.StartTime.In(now.Location())
	elapsed := now.Sub(open.StartTime)
	if elapsed < 0 {
		elapsed = 0
	}
	return open, elapsed, nil
}

// ClearAll deletes every session, open or closed.
func (s *SessionService) ClearAll(ctx context.Context) (int, error) {
	var deleted int
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		n, err := s.store.DeleteAll(ctx)
		deleted = n
		return err
	})
	if err != nil {
		return 0, err
	}
	s.log.WithField("deleted", deleted).Warn("all sessions cleared")
	return deleted, nil
}

func (s *SessionService) ClosedPairs(ctx context.Context, since time.Time, category string) ([]domain.ActivityKey, error) {
	return s.store.QuerySince(ctx, since, category)
}

func (s *SessionService) ClosedSessions(ctx context.Context, key domain.ActivityKey, since time.Time) ([]domain.Session, error) {
	return s.store.SessionsFor(ctx, key, since)
}
