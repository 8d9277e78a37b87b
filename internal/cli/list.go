package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"expenses/internal/backend"
	"expenses/internal/core"
	"expenses/internal/log"
)

type listCmd struct {
	app *App
	rng rangeFlags
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list expenses in a date range" }
func (*listCmd) Usage() string {
	return `list [-month current|previous | -from yyyy-mm-dd [-to yyyy-mm-dd]]

  Lists the current user's expenses in date order. edit and delete accept
  the ID column, or the row number together with the same range flags.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) { c.rng.register(f) }

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	owner, err := c.app.owner()
	if err != nil {
		fmt.Fprintf(c.app.Err, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	r, err := c.rng.resolve(c.app.today())
	if err != nil {
		return c.app.fail(ctx, log.OpFilter, err)
	}

	var items []core.Expense
	err = c.app.withBackend(ctx, func(b backend.Backend) error {
		items, err = b.ListRange(ctx, owner, r)
		return err
	})
	if err != nil {
		return c.app.fail(ctx, log.OpFilter, err)
	}
	if err := printExpenses(c.app.Out, items); err != nil {
		return c.app.fail(ctx, log.OpFilter, err)
	}
	return subcommands.ExitSuccess
}
