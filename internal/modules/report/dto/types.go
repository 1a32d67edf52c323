package dto

import "time"

type ReportInput struct {
	Period   string
	Category string
	// Width is the bar chart width in cells; zero uses the configured default.
	Width int
}

type SessionOutput struct {
	ID          int64     `json:"id"`
	StartedAt   time.Time `json:"started_at"`
	EndedAt     time.Time `json:"ended_at"`
	DurationMin int       `json:"duration_minutes"`
	Duration    string    `json:"duration"`
}

type GroupOutput struct {
	Activity string          `json:"activity"`
	Category string          `json:"category"`
	TotalMin int             `json:"total_minutes"`
	Total    string          `json:"total"`
	Color    string          `json:"color"`
	Sessions []SessionOutput `json:"sessions"`
}

type BarOutput struct {
	Label    string `json:"label"`
	Category string `json:"category"`
	Length   int    `json:"length"`
	Duration string `json:"duration"`
	Color    string `json:"color"`
}

type ChartOutput struct {
	NoData   bool        `json:"no_data"`
	MaxWidth int         `json:"max_width"`
	Bars     []BarOutput `json:"bars"`
}

type ReportOutput struct {
	Title       string        `json:"title"`
	Period      string        `json:"period"`
	Category    string        `json:"category,omitempty"`
	Since       *time.Time    `json:"since,omitempty"`
	GeneratedAt time.Time     `json:"generated_at"`
	Groups      []GroupOutput `json:"groups"`
	TotalMin    int           `json:"total_minutes"`
	Total       string        `json:"total"`
	Chart       ChartOutput   `json:"chart"`
}

func (r ReportOutput) Empty() bool {
	return len(r.Groups) == 0
}
