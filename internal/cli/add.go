package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"expenses/internal/backend"
	"expenses/internal/codec"
	"expenses/internal/log"
)

type addCmd struct {
	app      *App
	date     string
	amount   string
	category string
	merchant string
	country  string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a new expense" }
func (*addCmd) Usage() string {
	return `add -amount <amount> -category <code|name> [-date yyyy-mm-dd] [-merchant <name>] [-country <name>]

  Records an expense for the current user:
  - amount: decimal amount, negative for refunds.
  - category: menu code (see "categories") or category name.
  - date: defaults to today.
  - merchant, country: optional, stored as none_given when omitted.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "date", "", "expense date, yyyy-mm-dd (default today)")
	f.StringVar(&c.amount, "amount", "", "amount (required)")
	f.StringVar(&c.category, "category", "", "category code or name (required)")
	f.StringVar(&c.merchant, "merchant", "", "merchant name")
	f.StringVar(&c.country, "country", "", "country name, letters only")
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount == "" || c.category == "" {
		fmt.Fprintln(c.app.Err, "Error: -amount and -category are required.")
		return subcommands.ExitUsageError
	}
	owner, err := c.app.owner()
	if err != nil {
		fmt.Fprintf(c.app.Err, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	date := c.date
	if date == "" {
		date = c.app.today().String()
	}

	e, err := codec.NewExpense(owner, date, c.amount, c.category, c.merchant, c.country)
	if err != nil {
		return c.app.fail(ctx, log.OpAppend, err)
	}

	err = c.app.withBackend(ctx, func(b backend.Backend) error {
		id, err := b.CreateExpense(ctx, e)
		if err != nil {
			return err
		}
		e.ID = id
		return nil
	})
	if err != nil {
		return c.app.fail(ctx, log.OpAppend, err)
	}
	printExpense(c.app.Out, "Saved", e)
	return subcommands.ExitSuccess
}

