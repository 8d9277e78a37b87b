package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"expenses/internal/codec"
	"expenses/internal/core"
	"expenses/internal/summary"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// printExpenses writes a numbered table. Row numbers are the ordinals
// accepted by edit and delete for the same range.
func printExpenses(w io.Writer, items []core.Expense) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No expenses.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ROW\tDATE\tAMOUNT\tCATEGORY\tMERCHANT\tCOUNTRY\tID")
	for i, e := range items {
		fmt.Fprintf(tw, "%d\t%s\n", i+1, expenseCells(e))
	}
	return tw.Flush()
}

// printLatest writes items without row numbers. Its order is not a list
// view, so it offers only ids to edit and delete.
func printLatest(w io.Writer, items []core.Expense) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No expenses.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "DATE\tAMOUNT\tCATEGORY\tMERCHANT\tCOUNTRY\tID")
	for _, e := range items {
		fmt.Fprintln(tw, expenseCells(e))
	}
	return tw.Flush()
}

func expenseCells(e core.Expense) string {
	return fmt.Sprintf("%s\t%s\t%s\t%s\t%s\t%s",
		e.Date, codec.FormatAmount(e.Amount), e.Category, e.Merchant, e.Country, e.ID)
}

func printReport(w io.Writer, rep summary.Report) error {
	fmt.Fprintf(w, "Summary %s\n", rep.Range)
	if len(rep.Categories) == 0 {
		_, err := fmt.Fprintln(w, "No expenses.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "CATEGORY\tCOUNT\tSUM\tMEAN\tMAX\tSHARE")
	for _, s := range rep.Categories {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t%.2f\t%.1f%%\n",
			s.Category, s.Count, s.Sum, s.Mean, s.Max, s.PercentOfTotal)
	}
	fmt.Fprintf(tw, "TOTAL\t\t%.2f\t\t\t\n", rep.Total)
	return tw.Flush()
}

func printExpense(w io.Writer, verb string, e core.Expense) {
	fmt.Fprintf(w, "%s %s: %s %s %s (%s, %s)\n",
		verb, e.ID, e.Date, codec.FormatAmount(e.Amount), e.Category, e.Merchant, e.Country)
}
