package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	reportdto "timetrack/internal/modules/report/dto"
	apperrors "timetrack/internal/platform/errors"
	"timetrack/internal/platform/markdown"
	"timetrack/internal/ui/theme"
)

const (
	FormatTable    = "table"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"

	NoDataMessage = "No data available"
)

var columns = []string{"Activity", "Category", "Session Time", "Duration"}

// Render writes the report to w in the given format. An empty format means
// table.
func Render(w io.Writer, out reportdto.ReportOutput, format string) error {
	switch strings.ToLower(format) {
	case "", FormatTable:
		_, err := io.WriteString(w, RenderTable(out))
		return err
	case FormatJSON:
		return RenderJSON(w, out)
	case FormatMarkdown:
		doc, err := RenderMarkdown(out)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, doc)
		return err
	default:
		return fmt.Errorf("%w: unknown format %q (want table, json or markdown)", apperrors.ErrInvalidInput, format)
	}
}

// ─── table ───────────────────────────────────────────────────────────────────

// RenderTable draws the session table, the bar chart panel and the total.
func RenderTable(out reportdto.ReportOutput) string {
	if out.Empty() {
		return theme.Muted.Render(NoDataMessage) + "\n"
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Surface1)).
		Headers(headers()...).
		Rows(tableRows(out, true)...).
		StyleFunc(func(int, int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		})

	var sb strings.Builder
	sb.WriteString(theme.Title.Render(out.Title) + "\n")
	sb.WriteString(t.Render() + "\n\n")
	sb.WriteString(RenderChart(out.Chart) + "\n\n")
	sb.WriteString(theme.Heading.Render("Total Time: ") + theme.Hot.Render(out.Total) + "\n")
	return sb.String()
}

func headers() []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = theme.Heading.Render(c)
	}
	return out
}

// tableRows lists each group's sessions, naming the activity and category on
// the group's first row only. Terminal output separates groups with a blank
// row and colors the category.
func tableRows(out reportdto.ReportOutput, terminal bool) [][]string {
	var rows [][]string
	for gi, group := range out.Groups {
		if gi > 0 && terminal {
			rows = append(rows, []string{"", "", "", ""})
		}
		category := group.Category
		if terminal {
			category = theme.ForTag(group.Color).Render(category)
		}
		for si, session := range group.Sessions {
			activityCell, categoryCell := "", ""
			if si == 0 {
				activityCell, categoryCell = group.Activity, category
			}
			rows = append(rows, []string{
				activityCell,
				categoryCell,
				SessionTime(session.StartedAt, session.EndedAt),
				session.Duration,
			})
		}
	}
	return rows
}

// SessionTime shows start and end as clock times, adding the date to both
// when the session crosses midnight.
func SessionTime(start, end time.Time) string {
	if sameDay(start, end) {
		return start.Format("15:04") + " - " + end.Format("15:04")
	}
	return start.Format("2006-01-02 15:04") + " - " + end.Format("2006-01-02 15:04")
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ─── chart ───────────────────────────────────────────────────────────────────

func RenderChart(chart reportdto.ChartOutput) string {
	var sb strings.Builder
	sb.WriteString(theme.Heading.Render("Time Distribution") + "\n\n")
	if chart.NoData {
		sb.WriteString(theme.Muted.Render(NoDataMessage))
	}
	for i, bar := range chart.Bars {
		if i > 0 {
			sb.WriteString("\n")
		}
		fill := theme.ForTag(bar.Color).Render(strings.Repeat("█", bar.Length))
		pad := strings.Repeat(" ", max(chart.MaxWidth-bar.Length, 0))
		sb.WriteString(fmt.Sprintf("%-20s │ %s%s %s", bar.Label, fill, pad, bar.Duration))
	}
	panel := theme.Pane.Render(sb.String())
	title := theme.Title.Render("Activity Distribution")
	return lipgloss.JoinVertical(lipgloss.Left, title, panel)
}

// ─── json / markdown ─────────────────────────────────────────────────────────

func RenderJSON(w io.Writer, out reportdto.ReportOutput) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

type frontmatter struct {
	Title        string `yaml:"title"`
	Period       string `yaml:"period"`
	Category     string `yaml:"category,omitempty"`
	Since        string `yaml:"since,omitempty"`
	GeneratedAt  string `yaml:"generated_at"`
	TotalMinutes int    `yaml:"total_minutes"`
}

// RenderMarkdown produces a markdown document with YAML frontmatter, the
// session table, the per-activity totals and the grand total.
func RenderMarkdown(out reportdto.ReportOutput) (string, error) {
	meta := frontmatter{
		Title:        out.Title,
		Period:       out.Period,
		Category:     out.Category,
		GeneratedAt:  out.GeneratedAt.Format(time.RFC3339),
		TotalMinutes: out.TotalMin,
	}
	if out.Since != nil {
		meta.Since = out.Since.Format(time.RFC3339)
	}

	var body strings.Builder
	body.WriteString("# " + out.Title + "\n\n")
	if out.Empty() {
		body.WriteString(NoDataMessage + "\n")
		return markdown.RenderFrontmatter(meta, body.String())
	}
	body.WriteString(markdown.Table(columns, tableRows(out, false)))
	body.WriteString("\n## Time Distribution\n\n")
	totals := make([][]string, 0, len(out.Groups))
	for _, group := range out.Groups {
		totals = append(totals, []string{group.Activity, group.Category, group.Total})
	}
	body.WriteString(markdown.Table([]string{"Activity", "Category", "Total"}, totals))
	body.WriteString("\n**Total Time:** " + out.Total + "\n")
	return markdown.RenderFrontmatter(meta, body.String())
}
