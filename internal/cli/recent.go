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

type recentCmd struct {
	app *App
	n   int
}

func (*recentCmd) Name() string     { return "recent" }
func (*recentCmd) Synopsis() string { return "show the latest expenses" }
func (*recentCmd) Usage() string {
	return `recent [-n <count>]

  Shows the most recent expenses of the current user, newest first.
`
}

func (c *recentCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.n, "n", 0, "number of expenses (default RECENT_ENTRIES)")
}

func (c *recentCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	owner, err := c.app.owner()
	if err != nil {
		fmt.Fprintf(c.app.Err, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	n := c.n
	if n == 0 {
		n = c.app.Config.RecentEntries
	}

	var items []core.Expense
	err = c.app.withBackend(ctx, func(b backend.Backend) error {
		items, err = b.Recent(ctx, owner, n)
		return err
	})
	if err != nil {
		return c.app.fail(ctx, log.OpFilter, err)
	}
	if err := printLatest(c.app.Out, items); err != nil {
		return c.app.fail(ctx, log.OpFilter, err)
	}
	return subcommands.ExitSuccess
}
