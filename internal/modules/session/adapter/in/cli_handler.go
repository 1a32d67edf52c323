package in

import (
	"context"
	"time"

	sessiondto "timetrack/internal/modules/session/dto"
	sessionin "timetrack/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
	live    sessionin.LiveUsecase
}

func NewCLIHandler(usecase sessionin.Usecase, live sessionin.LiveUsecase) CLIHandler {
	return CLIHandler{usecase: usecase, live: live}
}

func (h CLIHandler) Start(ctx context.Context, activity, category string) (sessiondto.StartOutput, error) {
	return h.usecase.Start(ctx, sessiondto.StartInput{Activity: activity, Category: category})
}

func (h CLIHandler) Stop(ctx context.Context) (sessiondto.StopOutput, error) {
	return h.usecase.Stop(ctx)
}

func (h CLIHandler) GetActive(ctx context.Context) (sessiondto.ActiveSessionOutput, error) {
	return h.usecase.GetActive(ctx)
}

func (h CLIHandler) Clear(ctx context.Context, force bool) (sessiondto.ClearOutput, error) {
	return h.usecase.Clear(ctx, sessiondto.ClearInput{Force: force})
}

// Watch blocks, feeding sink with elapsed time until ctx is done.
func (h CLIHandler) Watch(ctx context.Context, startedAt time.Time, sink func(sessiondto.ElapsedOutput)) {
	h.live.Watch(ctx, startedAt, sink)
}
