package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"timetrack/internal/modules/session/domain"
	apperrors "timetrack/internal/platform/errors"
)

type fakeClock struct {
	mu     sync.Mutex
	values []time.Time
	idx    int
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.idx >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.idx]
	f.idx++
	return v
}

// memoryStore is an in-memory SessionStore with the same semantics as the
// SQL adapter.
type memoryStore struct {
	sessions []domain.Session
	nextID   int64
	failWith error
}

func (m *memoryStore) Insert(_ context.Context, s domain.Session) (int64, error) {
	if m.failWith != nil {
		return 0, m.failWith
	}
	for _, existing := range m.sessions {
		if existing.IsOpen() && s.IsOpen() {
			return 0, apperrors.ErrActiveSessionExists
		}
	}
	m.nextID++
	s.ID = m.nextID
	m.sessions = append(m.sessions, s)
	return s.ID, nil
}

func (m *memoryStore) FindOpen(context.Context) (domain.Session, error) {
	for _, s := range m.sessions {
		if s.IsOpen() {
			return s, nil
		}
	}
	return domain.Session{}, apperrors.ErrNoActiveSession
}

func (m *memoryStore) Close(_ context.Context, id int64, end time.Time, duration int) error {
	for i, s := range m.sessions {
		if s.ID == id && s.IsOpen() {
			m.sessions[i].EndTime = &end
			m.sessions[i].DurationMin = duration
			return nil
		}
	}
	return apperrors.ErrNoActiveSession
}

func (m *memoryStore) QuerySince(_ context.Context, since time.Time, category string) ([]domain.ActivityKey, error) {
	seen := map[domain.ActivityKey]bool{}
	var out []domain.ActivityKey
	for _, s := range m.sessions {
		if s.IsOpen() || s.StartTime.Before(since) || (category != "" && s.Category != category) {
			continue
		}
		key := domain.ActivityKey{Activity: s.Activity, Category: s.Category}
		if !seen[key] {
			seen[key] = true
			out = append(out, key)
		}
	}
	return out, nil
}

func (m *memoryStore) SessionsFor(_ context.Context, key domain.ActivityKey, since time.Time) ([]domain.Session, error) {
	var out []domain.Session
	for _, s := range m.sessions {
		if s.IsOpen() || s.Activity != key.Activity || s.Category != key.Category || s.StartTime.Before(since) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

func (m *memoryStore) DeleteAll(context.Context) (int, error) {
	n := len(m.sessions)
	m.sessions = nil
	return n, nil
}

func (m *memoryStore) openCount() int {
	n := 0
	for _, s := range m.sessions {
		if s.IsOpen() {
			n++
		}
	}
	return n
}

type manualTicker struct {
	ch      chan time.Time
	stopped chan struct{}
}

func newManualTicker() *manualTicker {
	return &manualTicker{ch: make(chan time.Time), stopped: make(chan struct{})}
}

func (m *manualTicker) C() <-chan time.Time { return m.ch }
func (m *manualTicker) Stop()               { close(m.stopped) }
