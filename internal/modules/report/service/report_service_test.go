package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetrack/internal/modules/report/domain"
	"timetrack/internal/modules/report/service"
	"timetrack/internal/platform/logging"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type storedSession struct {
	key     domain.Key
	session domain.Session
}

// fakeHistory filters like the SQL store: start >= since, exact category.
type fakeHistory struct {
	rows        []storedSession
	err         error
	sinceSeen   []time.Time
	sessionsErr error
}

func (f *fakeHistory) Activities(_ context.Context, since time.Time, category string) ([]domain.Key, error) {
	f.sinceSeen = append(f.sinceSeen, since)
	if f.err != nil {
		return nil, f.err
	}
	seen := map[domain.Key]bool{}
	var out []domain.Key
	for _, row := range f.rows {
		if row.session.StartedAt.Before(since) || (category != "" && row.key.Category != category) {
			continue
		}
		if !seen[row.key] {
			seen[row.key] = true
			out = append(out, row.key)
		}
	}
	return out, nil
}

func (f *fakeHistory) Sessions(_ context.Context, key domain.Key, since time.Time) ([]domain.Session, error) {
	if f.sessionsErr != nil {
		return nil, f.sessionsErr
	}
	var out []domain.Session
	for _, row := range f.rows {
		if row.key == key && !row.session.StartedAt.Before(since) {
			out = append(out, row.session)
		}
	}
	return out, nil
}

func row(activity, category string, start time.Time, minutes int) storedSession {
	return storedSession{
		key: domain.Key{Activity: activity, Category: category},
		session: domain.Session{
			StartedAt:   start,
			EndedAt:     start.Add(time.Duration(minutes) * time.Minute),
			DurationMin: minutes,
		},
	}
}

func TestBuildTodayReport(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 18, 18, 0, 0, 0, time.UTC)
	history := &fakeHistory{rows: []storedSession{
		row("writing", "work", time.Date(2026, 3, 18, 9, 0, 0, 0, time.UTC), 45),
		row("reading", "study", time.Date(2026, 3, 18, 11, 0, 0, 0, time.UTC), 15),
		row("writing", "work", time.Date(2026, 3, 17, 9, 0, 0, 0, time.UTC), 90),
	}}
	svc := service.NewReportService(fixedClock{now: now}, history, logging.NewLogger("report"))

	report, generated, err := svc.Build(context.Background(), domain.PeriodToday, "")
	require.NoError(t, err)
	assert.Equal(t, now, generated)
	assert.Equal(t, time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC), report.Since)
	require.Len(t, report.Groups, 2)
	assert.Equal(t, "writing", report.Groups[0].Activity)
	assert.Equal(t, 45, report.Groups[0].TotalMin)
	assert.Equal(t, "reading", report.Groups[1].Activity)
	assert.Equal(t, 60, report.TotalMin)

	chart := domain.Scale(report.Groups, 40)
	assert.Equal(t, 40, chart.Bars[0].Length)
	assert.Equal(t, 13, chart.Bars[1].Length)
}

func TestBuildCategoryFilterAndAllTime(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 18, 18, 0, 0, 0, time.UTC)
	history := &fakeHistory{rows: []storedSession{
		row("writing", "work", time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC), 30),
		row("reading", "study", time.Date(2026, 3, 18, 11, 0, 0, 0, time.UTC), 15),
	}}
	svc := service.NewReportService(fixedClock{now: now}, history, logging.NewLogger("report"))

	report, _, err := svc.Build(context.Background(), domain.PeriodAll, "work")
	require.NoError(t, err)
	assert.True(t, history.sinceSeen[0].IsZero())
	require.Len(t, report.Groups, 1)
	assert.Equal(t, "writing", report.Groups[0].Activity)
	assert.Equal(t, "All-Time Activity (work)", report.Label)
}

func TestBuildConvertsSessionTimesToClockLocation(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2026, 3, 18, 18, 0, 0, 0, loc)
	history := &fakeHistory{rows: []storedSession{
		row("writing", "work", time.Date(2026, 3, 18, 15, 0, 0, 0, time.UTC), 30),
	}}
	svc := service.NewReportService(fixedClock{now: now}, history, logging.NewLogger("report"))

	report, _, err := svc.Build(context.Background(), domain.PeriodToday, "")
	require.NoError(t, err)
	require.Len(t, report.Groups, 1)
	start := report.Groups[0].Sessions[0].StartedAt
	assert.Equal(t, loc, start.Location())
	assert.Equal(t, 10, start.Hour())
}

func TestBuildEmpty(t *testing.T) {
	t.Parallel()
	svc := service.NewReportService(fixedClock{now: time.Now()}, &fakeHistory{}, logging.NewLogger("report"))
	report, _, err := svc.Build(context.Background(), domain.PeriodWeek, "")
	require.NoError(t, err)
	assert.True(t, report.Empty())
	assert.True(t, domain.Scale(report.Groups, 40).NoData)
}

func TestBuildPropagatesStorageErrors(t *testing.T) {
	t.Parallel()
	boom := errors.New("database is locked")
	svc := service.NewReportService(fixedClock{now: time.Now()}, &fakeHistory{err: boom}, logging.NewLogger("report"))
	_, _, err := svc.Build(context.Background(), domain.PeriodAll, "")
	require.ErrorIs(t, err, boom)

	history := &fakeHistory{sessionsErr: boom, rows: []storedSession{row("a", "work", time.Now(), 1)}}
	svc = service.NewReportService(fixedClock{now: time.Now()}, history, logging.NewLogger("report"))
	_, _, err = svc.Build(context.Background(), domain.PeriodAll, "")
	require.ErrorIs(t, err, boom)
}
