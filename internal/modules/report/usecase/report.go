package usecase

import (
	"context"
	"time"

	"timetrack/internal/modules/report/domain"
	reportdto "timetrack/internal/modules/report/dto"
	reportin "timetrack/internal/modules/report/port/in"
	"timetrack/internal/modules/report/service"
)

type Interactor struct {
	svc      *service.ReportService
	barWidth int
}

func NewInteractor(svc *service.ReportService, barWidth int) *Interactor {
	return &Interactor{svc: svc, barWidth: barWidth}
}

var _ reportin.Usecase = (*Interactor)(nil)

func (i *Interactor) BuildReport(ctx context.Context, input reportdto.ReportInput) (reportdto.ReportOutput, error) {
	period, err := domain.ParsePeriod(input.Period)
	if err != nil {
		return reportdto.ReportOutput{}, err
	}
	report, generatedAt, err := i.svc.Build(ctx, period, input.Category)
	if err != nil {
		return reportdto.ReportOutput{}, err
	}

	width := input.Width
	if width <= 0 {
		width = i.barWidth
	}
	return toOutput(report, domain.Scale(report.Groups, width), generatedAt), nil
}

func toOutput(report domain.Report, chart domain.Chart, generatedAt time.Time) reportdto.ReportOutput {
	out := reportdto.ReportOutput{
		Title:       report.Label,
		Period:      string(report.Period),
		Category:    report.Category,
		GeneratedAt: generatedAt,
		Groups:      make([]reportdto.GroupOutput, 0, len(report.Groups)),
		TotalMin:    report.TotalMin,
		Total:       domain.FormatHoursMinutes(report.TotalMin),
		Chart: reportdto.ChartOutput{
			NoData:   chart.NoData,
			MaxWidth: chart.MaxWidth,
			Bars:     make([]reportdto.BarOutput, 0, len(chart.Bars)),
		},
	}
	if !report.Since.IsZero() {
		since := report.Since
		out.Since = &since
	}
	for _, g := range report.Groups {
		group := reportdto.GroupOutput{
			Activity: g.Activity,
			Category: g.Category,
			TotalMin: g.TotalMin,
			Total:    domain.FormatHoursMinutes(g.TotalMin),
			Color:    domain.ColorTag(g.Category),
			Sessions: make([]reportdto.SessionOutput, 0, len(g.Sessions)),
		}
		for _, s := range g.Sessions {
			group.Sessions = append(group.Sessions, reportdto.SessionOutput{
				ID:          s.ID,
				StartedAt:   s.StartedAt,
				EndedAt:     s.EndedAt,
				DurationMin: s.DurationMin,
				Duration:    domain.FormatHoursMinutes(s.DurationMin),
			})
		}
		out.Groups = append(out.Groups, group)
	}
	for _, bar := range chart.Bars {
		out.Chart.Bars = append(out.Chart.Bars, reportdto.BarOutput{
			Label:    bar.Label,
			Category: bar.Category,
			Length:   bar.Length,
			Duration: bar.Duration,
			Color:    bar.Color,
		})
	}
	return out
}
