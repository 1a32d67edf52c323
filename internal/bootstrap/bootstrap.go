package bootstrap

import (
	"context"
	"fmt"
	"io"

	reportinadapter "timetrack/internal/modules/report/adapter/in"
	reportoutadapter "timetrack/internal/modules/report/adapter/out"
	reportservice "timetrack/internal/modules/report/service"
	reportusecase "timetrack/internal/modules/report/usecase"
	sessioninadapter "timetrack/internal/modules/session/adapter/in"
	sessionoutadapter "timetrack/internal/modules/session/adapter/out"
	sessionservice "timetrack/internal/modules/session/service"
	sessionusecase "timetrack/internal/modules/session/usecase"
	"timetrack/internal/platform/clock"
	"timetrack/internal/platform/config"
	"timetrack/internal/platform/database"
	"timetrack/internal/platform/logging"
	"timetrack/internal/platform/tx"
)

type App struct {
	Config     config.Config
	SessionCLI sessioninadapter.CLIHandler
	ReportCLI  reportinadapter.CLIHandler

	db *database.DB
}

// New opens the store and wires both modules. prompt receives the clear
// confirmation question and in supplies the answer.
func New(ctx context.Context, cfg config.Config, in io.Reader, prompt io.Writer) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	clk := clock.InLocation{Clock: clock.SystemClock{}, Location: loc}

	db, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	store := sessionoutadapter.NewSQLSessionStore(db, logging.NewLogger("session_store"))
	sessionSvc := sessionservice.NewSessionService(clk, store, tx.NewSQLManager(db.SQL), cfg.DefaultCategory, logging.NewLogger("session"))
	sessionUC := sessionusecase.NewInteractor(
		sessionSvc,
		sessionservice.NewLiveReporter(clk, sessionservice.DefaultLiveInterval, clock.NewTicker),
		sessionoutadapter.NewPromptConfirmer(in, prompt),
	)

	reportUC := reportusecase.NewInteractor(
		reportservice.NewReportService(clk, reportoutadapter.NewSessionHistoryAdapter(sessionUC), logging.NewLogger("report")),
		cfg.BarWidth,
	)

	logging.NewLogger("bootstrap").WithField("driver", db.Dialect.Name()).Debug("store ready")
	return &App{
		Config:     cfg,
		SessionCLI: sessioninadapter.NewCLIHandler(sessionUC, sessionUC),
		ReportCLI:  reportinadapter.NewCLIHandler(reportUC),
		db:         db,
	}, nil
}

func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}
