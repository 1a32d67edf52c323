package dto

import "time"

type StartInput struct {
	Activity string
	Category string
}

type StartOutput struct {
	SessionID int64
	Activity  string
	Category  string
	StartedAt time.Time
}

type StopOutput struct {
	SessionID   int64
	Activity    string
	Category    string
	StartedAt   time.Time
	EndedAt     time.Time
	DurationMin int
}

type ActiveSessionOutput struct {
	SessionID int64
	Activity  string
	Category  string
	StartedAt time.Time
	Elapsed   time.Duration
	Formatted string
}

type ClearInput struct {
	Force bool
}

type ClearOutput struct {
	Deleted int
}

// HistoryFilter selects closed sessions started at or after Since. A zero
// Since means no lower bound; an empty Category matches every category.
type HistoryFilter struct {
	Since    time.Time
	Category string
}

type ActivityKeyOutput struct {
	Activity string
	Category string
}

type ClosedSessionsInput struct {
	Activity string
	Category string
	Since    time.Time
}

type SessionOutput struct {
	ID          int64
	Activity    string
	Category    string
	StartedAt   time.Time
	EndedAt     time.Time
	DurationMin int
}

// ElapsedOutput is one live display update.
type ElapsedOutput struct {
	At        time.Time
	Elapsed   time.Duration
	Formatted string
}
