package in

import (
	"context"

	"timetrack/internal/modules/report/dto"
)

type Usecase interface {
	BuildReport(ctx context.Context, input dto.ReportInput) (dto.ReportOutput, error)
}
