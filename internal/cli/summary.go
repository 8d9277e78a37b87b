package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"expenses/internal/backend"
	"expenses/internal/log"
	"expenses/internal/summary"
)

type summaryCmd struct {
	app *App
	rng rangeFlags
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "summarize expenses per category" }
func (*summaryCmd) Usage() string {
	return `summary [-month current|previous | -from yyyy-mm-dd [-to yyyy-mm-dd]]

  Shows count, sum, mean, maximum and share of total per category.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) { c.rng.register(f) }

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rep, status, ok := buildReport(ctx, c.app, &c.rng)
	if !ok {
		return status
	}
	if err := printReport(c.app.Out, rep); err != nil {
		return c.app.fail(ctx, log.OpSummary, err)
	}
	return subcommands.ExitSuccess
}

// buildReport resolves the owner and range and summarizes them. When ok is
// false the error has been reported and status is the exit status.
func buildReport(ctx context.Context, app *App, rng *rangeFlags) (rep summary.Report, status subcommands.ExitStatus, ok bool) {
	owner, err := app.owner()
	if err != nil {
		fmt.Fprintf(app.Err, "Error: %v\n", err)
		return rep, subcommands.ExitUsageError, false
	}
	today := app.today()
	r, err := rng.resolve(today)
	if err != nil {
		return rep, app.fail(ctx, log.OpSummary, err), false
	}
	month, byMonth, _ := rng.byMonth()
	err = app.withBackend(ctx, func(b backend.Backend) error {
		if byMonth {
			rep, err = b.MonthSummary(ctx, owner, month, today)
		} else {
			rep, err = b.RangeSummary(ctx, owner, r)
		}
		return err
	})
	if err != nil {
		return rep, app.fail(ctx, log.OpSummary, err), false
	}
	return rep, subcommands.ExitSuccess, true
}
