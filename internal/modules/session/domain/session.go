package domain

import (
	"fmt"
	"time"
)

// Session is one tracked interval of an activity. A nil EndTime means the
// session is still open.
type Session struct {
	ID          int64
	Activity    string
	Category    string
	StartTime   time.Time
	EndTime     *time.Time
	DurationMin int
}

func (s Session) IsOpen() bool {
	return s.EndTime == nil
}

// Close returns the session closed at end. An end before the start is
// clamped to the start, so the duration never goes negative.
func (s Session) Close(end time.Time) Session {
	if end.Before(s.StartTime) {
		end = s.StartTime
	}
	s.EndTime = &end
	s.DurationMin = DurationMinutes(s.StartTime, end)
	return s
}

// DurationMinutes is floor(seconds/60) of end-start, or 0 if negative.
func DurationMinutes(start, end time.Time) int {
	elapsed := end.Sub(start)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / time.Minute)
}

// ActivityKey identifies a report group.
type ActivityKey struct {
	Activity string
	Category string
}

// FormatElapsed renders d as HH:MM:SS. Hours are not wrapped at 24.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
