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

type deleteCmd struct {
	app    *App
	target targetFlags
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a listed expense" }
func (*deleteCmd) Usage() string {
	return `delete (-id <id> | -row <n> [-expect-id <id>] [range flags])

  Deletes an expense, picked by the id shown by "list" or by its row in
  "list" with the same range flags.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) { c.target.register(f) }

func (c *deleteCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.target.check(); err != nil {
		fmt.Fprintf(c.app.Err, "Error: %v.\n", err)
		return subcommands.ExitUsageError
	}
	owner, err := c.app.owner()
	if err != nil {
		fmt.Fprintf(c.app.Err, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	var deleted core.Expense
	err = c.app.withBackend(ctx, func(b backend.Backend) error {
		if c.target.id != "" {
			deleted, err = b.DeleteByID(ctx, owner, core.ID(c.target.id))
			return err
		}
		view, err := c.target.view(ctx, b, owner, c.app.today())
		if err != nil {
			return err
		}
		deleted, err = b.DeleteByOrdinal(ctx, owner, view, c.target.row)
		return err
	})
	if err != nil {
		return c.app.fail(ctx, log.OpDelete, err)
	}
	printExpense(c.app.Out, "Deleted", deleted)
	return subcommands.ExitSuccess
}
