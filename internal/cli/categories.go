package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"expenses/internal/core"
)

type categoriesCmd struct {
	app *App
}

func (*categoriesCmd) Name() string     { return "categories" }
func (*categoriesCmd) Synopsis() string { return "list category codes" }
func (*categoriesCmd) Usage() string {
	return `categories

  Lists the categories with the codes accepted by add and edit.
`
}

func (*categoriesCmd) SetFlags(*flag.FlagSet) {}

func (c *categoriesCmd) Execute(context.Context, *flag.FlagSet, ...interface{}) subcommands.ExitStatus {
	tw := newTable(c.app.Out)
	for _, cat := range core.Categories() {
		fmt.Fprintf(tw, "%d\t%s\n", cat.Code(), cat)
	}
	if err := tw.Flush(); err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
