// Package storage persists the ledger. Two backends implement Store: the
// CSV table (the historical on-disk format) and SQLite.
package storage

import (
	"context"
	"slices"

	"expenses/internal/core"
)

// Store is the durable collection of expenses for all owners.
//
// Every successful mutation leaves the persisted ledger ordered by date
// (ties keep insertion order) and is visible to the next call. A failed
// mutation leaves the previously persisted state untouched.
type Store interface {
	// Append assigns a fresh id to e and persists it.
	Append(ctx context.Context, e core.Expense) (core.ID, error)
	// Scan returns the owner's expenses in persisted order.
	Scan(ctx context.Context, owner string) ([]core.Expense, error)
	// Get returns a single expense by id.
	Get(ctx context.Context, id core.ID) (core.Expense, error)
	// UpdateField replaces one field of the expense identified by id.
	UpdateField(ctx context.Context, id core.ID, field core.Field, value string) (core.Expense, error)
	// Delete removes the expense identified by id.
	Delete(ctx context.Context, id core.ID) error
	Close() error
}

// sortByDate orders expenses by date, keeping the relative order of
// expenses on the same day.
func sortByDate(items []core.Expense) {
	slices.SortStableFunc(items, func(a, b core.Expense) int {
		return a.Date.Compare(b.Date.Time)
	})
}

func indexOf(items []core.Expense, id core.ID) int {
	return slices.IndexFunc(items, func(e core.Expense) bool { return e.ID == id })
}
