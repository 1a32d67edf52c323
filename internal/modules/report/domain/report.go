package domain

import (
	"fmt"
	"sort"
	"time"
)

// Key identifies a group: one activity within one category.
type Key struct {
	Activity string
	Category string
}

// Session is a closed session as seen by reports.
type Session struct {
	ID          int64
	StartedAt   time.Time
	EndedAt     time.Time
	DurationMin int
}

type Group struct {
	Activity string
	Category string
	Sessions []Session
	TotalMin int
}

// NewGroup totals the stored durations of sessions.
func NewGroup(key Key, sessions []Session) Group {
	total := 0
	for _, s := range sessions {
		total += s.DurationMin
	}
	return Group{Activity: key.Activity, Category: key.Category, Sessions: sessions, TotalMin: total}
}

type Report struct {
	Period   Period
	Category string
	Since    time.Time
	Label    string
	Groups   []Group
	TotalMin int
}

func (r Report) Empty() bool {
	return len(r.Groups) == 0
}

// NewReport orders groups by total descending, then activity, then category,
// and sums the grand total.
func NewReport(period Period, category string, since time.Time, groups []Group) Report {
	SortGroups(groups)
	total := 0
	for _, g := range groups {
		total += g.TotalMin
	}
	return Report{
		Period:   period,
		Category: category,
		Since:    since,
		Label:    period.Label(category),
		Groups:   groups,
		TotalMin: total,
	}
}

func SortGroups(groups []Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if a.TotalMin != b.TotalMin {
			return a.TotalMin > b.TotalMin
		}
		if a.Activity != b.Activity {
			return a.Activity < b.Activity
		}
		return a.Category < b.Category
	})
}

// FormatHoursMinutes renders minutes as "{h}h {m}m".
func FormatHoursMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
