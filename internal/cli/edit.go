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

type editCmd struct {
	app    *App
	target targetFlags
	field  string
	value  string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "change one field of a listed expense" }
func (*editCmd) Usage() string {
	return `edit (-id <id> | -row <n> [-expect-id <id>] [range flags]) -field <date|amount|category|merchant|country> -value <value>

  Changes one field of an expense, picked by the id shown by "list" or by
  its row in "list" with the same range flags. An empty value for merchant
  or country stores none_given.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	c.target.register(f)
	f.StringVar(&c.field, "field", "", "field to change (required)")
	f.StringVar(&c.value, "value", "", "new value")
}

func (c *editCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.target.check(); err != nil {
		fmt.Fprintf(c.app.Err, "Error: %v.\n", err)
		return subcommands.ExitUsageError
	}
	if c.field == "" {
		fmt.Fprintln(c.app.Err, "Error: -field is required.")
		return subcommands.ExitUsageError
	}
	owner, err := c.app.owner()
	if err != nil {
		fmt.Fprintf(c.app.Err, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	field, err := core.ParseField(c.field)
	if err != nil {
		return c.app.fail(ctx, log.OpUpdate, err)
	}

	var updated core.Expense
	err = c.app.withBackend(ctx, func(b backend.Backend) error {
		if c.target.id != "" {
			updated, err = b.EditByID(ctx, owner, core.ID(c.target.id), field, c.value)
			return err
		}
		view, err := c.target.view(ctx, b, owner, c.app.today())
		if err != nil {
			return err
		}
		updated, err = b.EditByOrdinal(ctx, owner, view, c.target.row, field, c.value)
		return err
	})
	if err != nil {
		return c.app.fail(ctx, log.OpUpdate, err)
	}
	printExpense(c.app.Out, "Updated", updated)
	return subcommands.ExitSuccess
}
