package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sessionoutadapter "timetrack/internal/modules/session/adapter/out"
	sessiondto "timetrack/internal/modules/session/dto"
	"timetrack/internal/modules/session/service"
	"timetrack/internal/modules/session/usecase"
	"timetrack/internal/platform/clock"
	"timetrack/internal/platform/database"
	apperrors "timetrack/internal/platform/errors"
	"timetrack/internal/platform/logging"
	"timetrack/internal/platform/tx"
)

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time { return c.now }

type fakeConfirmer struct {
	answer bool
	err    error
	asked  []string
}

func (f *fakeConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	f.asked = append(f.asked, prompt)
	return f.answer, f.err
}

type fixture struct {
	uc        *usecase.Interactor
	clock     *stepClock
	confirmer *fakeConfirmer
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db, err := database.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "timetrack.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	clk := &stepClock{now: time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)}
	confirmer := &fakeConfirmer{}
	store := sessionoutadapter.NewSQLSessionStore(db, logging.NewLogger("session_store"))
	svc := service.NewSessionService(clk, store, tx.NewSQLManager(db.SQL), "work", logging.NewLogger("session"))
	live := service.NewLiveReporter(clk, time.Second, nil)
	return fixture{uc: usecase.NewInteractor(svc, live, confirmer), clock: clk, confirmer: confirmer}
}

func TestStartStopRoundTrip(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	started, err := f.uc.Start(ctx, sessiondto.StartInput{Activity: "writing"})
	require.NoError(t, err)
	assert.Equal(t, "work", started.Category)
	assert.Positive(t, started.SessionID)

	_, err = f.uc.Start(ctx, sessiondto.StartInput{Activity: "reading", Category: "study"})
	var already *apperrors.AlreadyTrackingError
	require.ErrorAs(t, err, &already)
	assert.Equal(t, "writing", already.Activity)

	f.clock.now = f.clock.now.Add(30*time.Minute + 15*time.Second)
	active, err := f.uc.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute+15*time.Second, active.Elapsed)
	assert.Equal(t, "00:30:15", active.Formatted)

	stopped, err := f.uc.Stop(ctx)
	require.NoError(t, err)
	assert.Equal(t, started.SessionID, stopped.SessionID)
	assert.Equal(t, 30, stopped.DurationMin)

	_, err = f.uc.Stop(ctx)
	require.ErrorIs(t, err, apperrors.ErrNoActiveSession)
	_, err = f.uc.GetActive(ctx)
	require.ErrorIs(t, err, apperrors.ErrNoActiveSession)

	pairs, err := f.uc.ClosedPairs(ctx, sessiondto.HistoryFilter{})
	require.NoError(t, err)
	assert.Equal(t, []sessiondto.ActivityKeyOutput{{Activity: "writing", Category: "work"}}, pairs)

	sessions, err := f.uc.ClosedSessions(ctx, sessiondto.ClosedSessionsInput{Activity: "writing", Category: "work"})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 30, sessions[0].DurationMin)
	assert.True(t, sessions[0].EndedAt.Equal(f.clock.now))
}

func TestClearConfirmation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	seed := func(t *testing.T, f fixture) {
		for i := 0; i < 3; i++ {
			_, err := f.uc.Start(ctx, sessiondto.StartInput{Activity: "task"})
			require.NoError(t, err)
			f.clock.now = f.clock.now.Add(10 * time.Minute)
			_, err = f.uc.Stop(ctx)
			require.NoError(t, err)
		}
	}

	t.Run("declined", func(t *testing.T) {
		f := newFixture(t)
		seed(t, f)
		_, err := f.uc.Clear(ctx, sessiondto.ClearInput{})
		require.ErrorIs(t, err, apperrors.ErrCancelled)
		require.Len(t, f.confirmer.asked, 1)

		pairs, err := f.uc.ClosedPairs(ctx, sessiondto.HistoryFilter{})
		require.NoError(t, err)
		assert.Len(t, pairs, 1, "nothing deleted")
	})

	t.Run("confirmed", func(t *testing.T) {
		f := newFixture(t)
		seed(t, f)
		f.confirmer.answer = true
		out, err := f.uc.Clear(ctx, sessiondto.ClearInput{})
		require.NoError(t, err)
		assert.Equal(t, 3, out.Deleted)
	})

	t.Run("forced skips prompt", func(t *testing.T) {
		f := newFixture(t)
		seed(t, f)
		_, err := f.uc.Start(ctx, sessiondto.StartInput{Activity: "open"})
		require.NoError(t, err)
		out, err := f.uc.Clear(ctx, sessiondto.ClearInput{Force: true})
		require.NoError(t, err)
		assert.Equal(t, 4, out.Deleted)
		assert.Empty(t, f.confirmer.asked)

		_, err = f.uc.GetActive(ctx)
		assert.ErrorIs(t, err, apperrors.ErrNoActiveSession)
	})

	t.Run("prompt failure", func(t *testing.T) {
		f := newFixture(t)
		f.confirmer.err = errors.New("stdin closed")
		_, err := f.uc.Clear(ctx, sessiondto.ClearInput{})
		require.EqualError(t, err, "stdin closed")
	})
}

func TestClearWithoutConfirmerIsCancelled(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(nil, nil, nil)
	_, err := uc.Clear(context.Background(), sessiondto.ClearInput{})
	require.ErrorIs(t, err, apperrors.ErrCancelled)
}

func TestWatchStopsOnCancelledContext(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	f.uc.Watch(ctx, f.clock.now, func(sessiondto.ElapsedOutput) { calls++ })
	assert.Zero(t, calls)
}

func TestWatchFormatsElapsed(t *testing.T) {
	t.Parallel()
	clk := &stepClock{now: time.Date(2026, 3, 4, 11, 2, 3, 0, time.UTC)}
	live := service.NewLiveReporter(clk, time.Hour, clock.NewTicker)
	uc := usecase.NewInteractor(nil, live, nil)

	ctx, cancel := context.WithCancel(context.Background())
	var got sessiondto.ElapsedOutput
	uc.Watch(ctx, time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC), func(e sessiondto.ElapsedOutput) {
		got = e
		cancel()
	})
	assert.Equal(t, "02:02:03", got.Formatted)
	assert.Equal(t, 2*time.Hour+2*time.Minute+3*time.Second, got.Elapsed)
}
