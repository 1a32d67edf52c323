package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "timetrack/internal/platform/errors"
)

// Period is a named lower bound on session start times.
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

func ParsePeriod(raw string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(raw))); p {
	case "":
		return PeriodToday, nil
	case PeriodToday, PeriodWeek, PeriodMonth, PeriodAll:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown period %q (want today, week, month or all)", apperrors.ErrInvalidInput, raw)
	}
}

// Start resolves the period against now, in now's location. Weeks start on
// Monday. PeriodAll yields the zero time.
func (p Period) Start(now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch p {
	case PeriodToday:
		return midnight
	case PeriodWeek:
		sinceMonday := (int(now.Weekday()) + 6) % 7
		return midnight.AddDate(0, 0, -sinceMonday)
	case PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Time{}
	}
}

// Label is the report heading, with the category filter appended when set.
func (p Period) Label(category string) string {
	var label string
	switch p {
	case PeriodToday:
		label = "Today's Activity"
	case PeriodWeek:
		label = "This Week's Activity"
	case PeriodMonth:
		label = "This Month's Activity"
	default:
		label = "All-Time Activity"
	}
	if category != "" {
		label += " (" + category + ")"
	}
	return label
}
