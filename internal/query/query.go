// Package query derives views of one owner's ledger: date-range filters,
// the most recent entries and calendar month bounds.
package query

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"expenses/internal/core"
)

// DefaultRecentCount is the size of the recent-entries view.
const DefaultRecentCount = 10

// Scanner is the read side of the ledger store.
type Scanner interface {
	Scan(ctx context.Context, owner string) ([]core.Expense, error)
}

type Engine struct {
	store Scanner
}

func NewEngine(store Scanner) *Engine {
	return &Engine{store: store}
}

// FilterByDateRange returns the owner's expenses dated within r, both ends
// included, in persisted (date-ascending) order. A range whose start is
// after its end is rejected.
func (q *Engine) FilterByDateRange(ctx context.Context, owner string, r core.DateRange) ([]core.Expense, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	items, err := q.store.Scan(ctx, owner)
	if err != nil {
		return nil, err
	}
	out := make([]core.Expense, 0, len(items))
	for _, e := range items {
		if r.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out, nil
}

// RecentN returns at most the last n expenses in persisted order, most
// recent first.
func (q *Engine) RecentN(ctx context.Context, owner string, n int) ([]core.Expense, error) {
	if n < 0 {
		return nil, &core.ValidationError{Field: "count", Value: fmt.Sprint(n), Err: errors.New("must not be negative")}
	}
	items, err := q.store.Scan(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(items) > n {
		items = items[len(items)-n:]
	}
	out := slices.Clone(items)
	slices.Reverse(out)
	return out, nil
}
