package domain

import "strings"

const MaxLabelRunes = 20

const (
	ColorBlue   = "blue"
	ColorGreen  = "green"
	ColorYellow = "yellow"
)

type Bar struct {
	Label    string
	Category string
	Length   int
	TotalMin int
	Duration string
	Color    string
}

// Chart is a horizontal bar chart scaled relative to the largest group.
type Chart struct {
	NoData   bool
	MaxWidth int
	Bars     []Bar
}

// Scale maps each group total onto [0, maxWidth] relative to the largest
// total, preserving group order. When every total is zero all bars tie at
// maxWidth.
func Scale(groups []Group, maxWidth int) Chart {
	if len(groups) == 0 {
		return Chart{NoData: true, MaxWidth: maxWidth}
	}
	if maxWidth < 0 {
		maxWidth = 0
	}
	largest := 0
	for _, g := range groups {
		if g.TotalMin > largest {
			largest = g.TotalMin
		}
	}
	bars := make([]Bar, 0, len(groups))
	for _, g := range groups {
		length := maxWidth
		if largest > 0 {
			length = g.TotalMin * maxWidth / largest
		}
		bars = append(bars, Bar{
			Label:    TruncateLabel(g.Activity),
			Category: g.Category,
			Length:   length,
			TotalMin: g.TotalMin,
			Duration: FormatHoursMinutes(g.TotalMin),
			Color:    ColorTag(g.Category),
		})
	}
	return Chart{MaxWidth: maxWidth, Bars: bars}
}

func TruncateLabel(activity string) string {
	runes := []rune(activity)
	if len(runes) <= MaxLabelRunes {
		return activity
	}
	return string(runes[:MaxLabelRunes])
}

// ColorTag picks a display color by category, ignoring case.
func ColorTag(category string) string {
	switch strings.ToLower(category) {
	case "work":
		return ColorBlue
	case "study":
		return ColorGreen
	default:
		return ColorYellow
	}
}
