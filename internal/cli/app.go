package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"

	"expenses/internal/backend"
	"expenses/internal/config"
	"expenses/internal/core"
	"expenses/internal/log"
	"expenses/internal/sheets"
	gsheet "expenses/internal/sheets/google"
)

// App carries what every subcommand needs. The backend is opened lazily so
// commands such as categories work without touching the ledger.
type App struct {
	Config *config.Config
	Logger *log.Logger
	User   string
	Out    io.Writer
	Err    io.Writer
	Now    func() time.Time

	OpenBackend  func(ctx context.Context) (*backend.BackendResult, error)
	OpenExporter func(ctx context.Context) (sheets.ReportExporter, error)
}

// NewApp wires an App to the configured backend and exporter. Both use
// the App's Logger at the time they are opened.
func NewApp(cfg *config.Config, logger *log.Logger) *App {
	app := &App{
		Config: cfg,
		Logger: logger,
		User:   cfg.LedgerUser,
		Out:    os.Stdout,
		Err:    os.Stderr,
		Now:    time.Now,
	}
	app.OpenBackend = func(ctx context.Context) (*backend.BackendResult, error) {
		bc, err := backend.FromAppConfig(cfg)
		if err != nil {
			return nil, err
		}
		return backend.NewFactory(app.Logger).CreateBackend(ctx, bc)
	}
	app.OpenExporter = func(ctx context.Context) (sheets.ReportExporter, error) {
		if !cfg.ExportEnabled() {
			return nil, errors.New("export disabled: set GOOGLE_SPREADSHEET_ID")
		}
		client, err := gsheet.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName, app.Logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	return app
}

// Register adds every ledger subcommand to c.
func Register(c *subcommands.Commander, app *App) {
	c.Register(&addCmd{app: app}, "ledger")
	c.Register(&recentCmd{app: app}, "ledger")
	c.Register(&listCmd{app: app}, "ledger")
	c.Register(&editCmd{app: app}, "ledger")
	c.Register(&deleteCmd{app: app}, "ledger")

	c.Register(&summaryCmd{app: app}, "reports")
	c.Register(&exportCmd{app: app}, "reports")

	c.Register(&categoriesCmd{app: app}, "")
}

func (a *App) today() core.Date {
	return core.DateOf(a.Now())
}

func (a *App) owner() (string, error) {
	u := strings.TrimSpace(a.User)
	if u == "" {
		return "", errors.New("no user: pass -user or set LEDGER_USER")
	}
	return u, nil
}

// withBackend opens the backend, runs fn and releases the backend.
func (a *App) withBackend(ctx context.Context, fn func(b backend.Backend) error) error {
	res, err := a.OpenBackend(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if res.Cleanup == nil {
			return
		}
		if err := res.Cleanup(); err != nil {
			log.FromContext(ctx).WarnContext(ctx, "Failed to close backend", log.FieldError, err.Error())
		}
	}()
	return fn(res.Backend)
}

// fail reports err and maps it to an exit status. Input errors are usage
// errors; everything else is a failure. The error is also logged through
// the context logger.
func (a *App) fail(ctx context.Context, op string, err error) subcommands.ExitStatus {
	fmt.Fprintf(a.Err, "Error: %v\n", err)

	errorType := log.ErrorTypeInternal
	status := subcommands.ExitFailure
	switch {
	case errors.Is(err, core.ErrValidation):
		errorType, status = log.ErrorTypeValidation, subcommands.ExitUsageError
	case errors.Is(err, core.ErrOutOfRange):
		errorType, status = log.ErrorTypeOutOfRange, subcommands.ExitUsageError
	case errors.Is(err, core.ErrNotFound):
		errorType = log.ErrorTypeNotFound
	case errors.Is(err, core.ErrPersistence):
		errorType = log.ErrorTypePersistence
	}
	log.FromContext(ctx).DebugContext(ctx, "Command failed",
		log.NewFields().WithOperation(op).WithError(err).WithErrorType(errorType).ToSlice()...)
	return status
}
