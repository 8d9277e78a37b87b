package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"expenses/internal/log"
)

type exportCmd struct {
	app *App
	rng rangeFlags
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write a summary to Google Sheets" }
func (*exportCmd) Usage() string {
	return `export [-month current|previous | -from yyyy-mm-dd [-to yyyy-mm-dd]]

  Replaces the content of GOOGLE_SHEET_NAME in GOOGLE_SPREADSHEET_ID with the
  category summary of the range.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) { c.rng.register(f) }

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	exporter, err := c.app.OpenExporter(ctx)
	if err != nil {
		return c.app.fail(ctx, log.OpExport, err)
	}
	rep, status, ok := buildReport(ctx, c.app, &c.rng)
	if !ok {
		return status
	}
	owner, _ := c.app.owner()
	if err := exporter.ExportReport(ctx, owner, rep); err != nil {
		return c.app.fail(ctx, log.OpExport, err)
	}
	fmt.Fprintf(c.app.Out, "Exported %d categories for %s\n", len(rep.Categories), rep.Range)
	return subcommands.ExitSuccess
}
