package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"expenses/internal/backend"
	"expenses/internal/codec"
	"expenses/internal/core"
	"expenses/internal/query"
	"expenses/internal/selection"
)

// rangeFlags selects a date range either by month or by explicit bounds.
// With neither, the current month is used.
type rangeFlags struct {
	month string
	from  string
	to    string
}

func (r *rangeFlags) register(f *flag.FlagSet) {
	f.StringVar(&r.month, "month", "", "current or previous calendar month")
	f.StringVar(&r.from, "from", "", "first day, yyyy-mm-dd")
	f.StringVar(&r.to, "to", "", "last day, yyyy-mm-dd (defaults to -from)")
}

// byMonth reports the calendar month selected when no explicit bounds are
// given.
func (r *rangeFlags) byMonth() (query.Month, bool, error) {
	explicit := r.from != "" || r.to != ""
	if explicit && r.month != "" {
		return "", false, &core.ValidationError{Field: "range", Err: errors.New("use either -month or -from/-to")}
	}
	if explicit {
		return "", false, nil
	}
	if r.month == "" {
		return query.CurrentMonth, true, nil
	}
	m, err := query.ParseMonth(r.month)
	if err != nil {
		return "", false, err
	}
	return m, true, nil
}

func (r *rangeFlags) resolve(today core.Date) (core.DateRange, error) {
	m, ok, err := r.byMonth()
	if err != nil {
		return core.DateRange{}, err
	}
	if ok {
		return query.MonthRange(m, today)
	}

	if r.from == "" {
		return core.DateRange{}, &core.ValidationError{Field: "range", Err: errors.New("-to requires -from")}
	}
	start, err := codec.ParseDate(r.from)
	if err != nil {
		return core.DateRange{}, err
	}
	end := start
	if r.to != "" {
		if end, err = codec.ParseDate(r.to); err != nil {
			return core.DateRange{}, err
		}
	}
	return core.NewDateRange(start, end)
}

// targetFlags picks the expense an edit or delete applies to: either its id
// as printed by list, or its row in a list of the same range. -expect-id
// guards a row against the listing having changed since it was shown.
type targetFlags struct {
	id     string
	row    int
	expect string
	rng    rangeFlags
}

func (t *targetFlags) register(f *flag.FlagSet) {
	t.rng.register(f)
	f.StringVar(&t.id, "id", "", "expense id from list")
	f.IntVar(&t.row, "row", 0, "row number from list")
	f.StringVar(&t.expect, "expect-id", "", "fail unless -row still refers to this id")
}

func (t *targetFlags) check() error {
	switch {
	case t.id == "" && t.row == 0:
		return errors.New("-id or -row is required")
	case t.id != "" && t.row != 0:
		return errors.New("use either -id or -row")
	case t.expect != "" && t.row == 0:
		return errors.New("-expect-id requires -row")
	}
	return nil
}

// view lists the range the row refers to and applies the -expect-id guard.
func (t *targetFlags) view(ctx context.Context, b backend.Backend, owner string, today core.Date) ([]core.Expense, error) {
	r, err := t.rng.resolve(today)
	if err != nil {
		return nil, err
	}
	view, err := b.ListRange(ctx, owner, r)
	if err != nil {
		return nil, err
	}
	if t.expect == "" {
		return view, nil
	}
	id, err := selection.ResolveOrdinal(view, t.row)
	if err != nil {
		return nil, err
	}
	if id != core.ID(t.expect) {
		return nil, fmt.Errorf("row %d is now %s: %w", t.row, id, core.NotFound(core.ID(t.expect)))
	}
	return view, nil
}
