package in

import (
	"context"

	reportdto "timetrack/internal/modules/report/dto"
	reportin "timetrack/internal/modules/report/port/in"
)

type CLIHandler struct {
	usecase reportin.Usecase
}

func NewCLIHandler(usecase reportin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Report(ctx context.Context, period, category string, width int) (reportdto.ReportOutput, error) {
	return h.usecase.BuildReport(ctx, reportdto.ReportInput{Period: period, Category: category, Width: width})
}
