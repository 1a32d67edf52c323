package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"timetrack/internal/modules/report/domain"
	reportout "timetrack/internal/modules/report/port/out"
	"timetrack/internal/platform/clock"
)

type ReportService struct {
	clock   clock.Clock
	history reportout.HistoryReader
	log     *logrus.Entry
}

func NewReportService(clock clock.Clock, history reportout.HistoryReader, log *logrus.Entry) *ReportService {
	return &ReportService{clock: clock, history: history, log: log}
}

// Build aggregates closed sessions started within period into per-activity
// groups. Session times are returned in the clock's location.
func (s *ReportService) Build(ctx context.Context, period domain.Period, category string) (domain.Report, time.Time, error) {
	now := s.clock.Now()
	since := period.Start(now)

	keys, err := s.history.Activities(ctx, since, category)
	if err != nil {
		return domain.Report{}, now, err
	}
	groups := make([]domain.Group, 0, len(keys))
	for _, key := range keys {
		sessions, err := s.history.Sessions(ctx, key, since)
		if err != nil {
			return domain.Report{}, now, err
		}
		for i := range sessions {
			sessions[i].StartedAt = sessions[i].StartedAt.In(now.Location())
			sessions[i].EndedAt = sessions[i].EndedAt.In(now.Location())
		}
		groups = append(groups, domain.NewGroup(key, sessions))
	}

	report := domain.NewReport(period, category, since, groups)
	s.log.WithFields(logrus.Fields{
		"period":   period,
		"category": category,
		"groups":   len(report.Groups),
		"total":    report.TotalMin,
	}).Debug("report built")
	return report, now, nil
}
