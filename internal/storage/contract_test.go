package storage

import (
	"context"
	"errors"
	"testing"

	"expenses/internal/core"
)

// storeFactory opens a fresh, empty store rooted in a test directory.
type storeFactory func(t *testing.T) Store

func expense(owner string, date core.Date, amount float64, c core.Category) core.Expense {
	return core.Expense{
		Owner:    owner,
		Date:     date,
		Amount:   amount,
		Category: c,
		Merchant: core.NoneGiven,
		Country:  core.NoneGiven,
	}
}

func mustAppend(t *testing.T, s Store, e core.Expense) core.ID {
	t.Helper()
	id, err := s.Append(context.Background(), e)
	if err != nil {
		t.Fatalf("Append(%+v): %v", e, err)
	}
	return id
}

func mustScan(t *testing.T, s Store, owner string) []core.Expense {
	t.Helper()
	items, err := s.Scan(context.Background(), owner)
	if err != nil {
		t.Fatalf("Scan(%q): %v", owner, err)
	}
	return items
}

func dates(items []core.Expense) []string {
	out := make([]string, len(items))
	for i, e := range items {
		out[i] = e.Date.String()
	}
	return out
}

func runStoreContract(t *testing.T, open storeFactory) {
	ctx := context.Background()

	t.Run("append then scan", func(t *testing.T) {
		s := open(t)
		id := mustAppend(t, s, expense("alice", core.NewDate(2024, 1, 5), 50, core.Groceries))
		if id == "" {
			t.Fatal("expected a fresh id")
		}
		items := mustScan(t, s, "alice")
		if len(items) != 1 {
			t.Fatalf("expected 1 expense, got %d", len(items))
		}
		got := items[0]
		if got.ID != id || got.Amount != 50 || got.Category != core.Groceries || got.Merchant != core.NoneGiven {
			t.Fatalf("unexpected expense: %+v", got)
		}
	})

	t.Run("scan of unknown owner is empty", func(t *testing.T) {
		s := open(t)
		mustAppend(t, s, expense("alice", core.NewDate(2024, 1, 5), 50, core.Groceries))
		items := mustScan(t, s, "bob")
		if items == nil || len(items) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", items)
		}
	})

	t.Run("ids are unique and ordering is by date", func(t *testing.T) {
		s := open(t)
		a := mustAppend(t, s, expense("alice", core.NewDate(2024, 1, 5), 50, core.Groceries))
		b := mustAppend(t, s, expense("alice", core.NewDate(2024, 1, 10), 20, core.FuelPetrol))
		c := mustAppend(t, s, expense("alice", core.NewDate(2024, 1, 1), 30, core.Groceries))
		if a == b || b == c || a == c {
			t.Fatalf("ids collide: %s %s %s", a, b, c)
		}
		items := mustScan(t, s, "alice")
		want := []string{"2024-01-01", "2024-01-05", "2024-01-10"}
		got := dates(items)
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("order = %v, want %v", got, want)
			}
		}
		if items[0].ID != c || items[1].ID != a || items[2].ID != b {
			t.Fatal("ids must travel with their records when sorting")
		}
	})

	t.Run("same day keeps insertion order", func(t *testing.T) {
		s := open(t)
		day := core.NewDate(2024, 3, 3)
		first := mustAppend(t, s, expense("alice", day, 1, core.Housing))
		second := mustAppend(t, s, expense("alice", day, 2, core.Housing))
		items := mustScan(t, s, "alice")
		if items[0].ID != first || items[1].ID != second {
			t.Fatalf("same-day order not stable: %+v", items)
		}
	})

	t.Run("owners are isolated", func(t *testing.T) {
		s := open(t)
		mustAppend(t, s, expense("alice", core.NewDate(2024, 1, 5), 50, core.Groceries))
		mustAppend(t, s, expense("bob", core.NewDate(2024, 1, 5), 70, core.Housing))
		for _, e := range mustScan(t, s, "bob") {
			if e.Owner != "bob" {
				t.Fatalf("foreign record leaked: %+v", e)
			}
		}
	})

	t.Run("append rejects invalid expense", func(t *testing.T) {
		s := open(t)
		bad := expense("alice", core.NewDate(2024, 1, 5), 50, "Food")
		if _, err := s.Append(ctx, bad); !errors.Is(err, core.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if n := len(mustScan(t, s, "alice")); n != 0 {
			t.Fatalf("invalid expense persisted: %d rows", n)
		}
	})

	t.Run("get", func(t *testing.T) {
		s := open(t)
		id := mustAppend(t, s, expense("alice", core.NewDate(2024, 1, 5), 50, core.Groceries))
		got, err := s.Get(ctx, id)
		if err != nil || got.ID != id {
			t.Fatalf("Get: %+v, %v", got, err)
		}
		if _, err := s.Get(ctx, "missing"); !errors.Is(err, core.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("update field keeps id and re-sorts", func(t *testing.T) {
		s := open(t)
		a := mustAppend(t, s, expense("alice", core.NewDate(2024, 1, 1), 30, core.Groceries))
		b := mustAppend(t, s, expense("alice", core.NewDate(2024, 1, 5), 50, core.Groceries))

		updated, err := s.UpdateField(ctx, a, core.FieldDate, "2024-02-01")
		if err != nil {
			t.Fatalf("UpdateField: %v", err)
		}
		if updated.ID != a || updated.Date.String() != "2024-02-01" {
			t.Fatalf("unexpected update result: %+v", updated)
		}
		items := mustScan(t, s, "alice")
		if items[0].ID != b || items[1].ID != a {
			t.Fatalf("expected re-sort after date edit: %v", dates(items))
		}

		if _, err := s.UpdateField(ctx, b, core.FieldCategory, "2"); err != nil {
			t.Fatalf("category by code: %v", err)
		}
		got, _ := s.Get(ctx, b)
		if got.Category != core.FuelPetrol {
			t.Fatalf("category = %q", got.Category)
		}
	})

	t.Run("update rejects invalid value and keeps state", func(t *testing.T) {
		s := open(t)
		id := mustAppend(t, s, expense("alice", core.NewDate(2024, 1, 1), 30, core.Groceries))
		if _, err := s.UpdateField(ctx, id, core.FieldAmount, "thirty"); !errors.Is(err, core.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
		got, _ := s.Get(ctx, id)
		if got.Amount != 30 {
			t.Fatalf("amount changed on failed update: %v", got.Amount)
		}
	})

	t.Run("update missing id", func(t *testing.T) {
		s := open(t)
		if _, err := s.UpdateField(ctx, "missing", core.FieldAmount, "1"); !errors.Is(err, core.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("delete removes exactly one and is not idempotent", func(t *testing.T) {
		s := open(t)
		keep := mustAppend(t, s, expense("alice", core.NewDate(2024, 1, 1), 30, core.Groceries))
		gone := mustAppend(t, s, expense("alice", core.NewDate(2024, 1, 5), 50, core.Groceries))
		if err := s.Delete(ctx, gone); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		items := mustScan(t, s, "alice")
		if len(items) != 1 || items[0].ID != keep {
			t.Fatalf("unexpected remaining items: %+v", items)
		}
		if err := s.Delete(ctx, gone); !errors.Is(err, core.ErrNotFound) {
			t.Fatalf("repeated delete must fail with not found, got %v", err)
		}
	})

	t.Run("negative amounts are kept", func(t *testing.T) {
		s := open(t)
		id := mustAppend(t, s, expense("alice", core.NewDate(2024, 1, 1), -12.75, core.Personal))
		got, _ := s.Get(ctx, id)
		if got.Amount != -12.75 {
			t.Fatalf("amount = %v", got.Amount)
		}
	})

	t.Run("stored text reads back as appended", func(t *testing.T) {
		s := open(t)
		e := expense(" alice ", core.NewDate(2024, 1, 1), 3, core.Groceries)
		e.Merchant, e.Country = " Shop ", " "
		id := mustAppend(t, s, e)

		got, err := s.Get(ctx, id)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		items := mustScan(t, s, "alice")
		if len(items) != 1 || items[0].ID != got.ID || items[0].Merchant != got.Merchant {
			t.Fatalf("Scan and Get disagree: %+v vs %+v", items, got)
		}
		if got.Owner != "alice" || got.Merchant != "Shop" || got.Country != core.NoneGiven {
			t.Errorf("unexpected stored text: %+v", got)
		}
	})
}
