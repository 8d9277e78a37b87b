package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"expenses/internal/codec"
	"expenses/internal/core"
	"expenses/internal/log"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the ledger in a SQLite table. The seq column records
// insertion order; every read orders by (txn_date, seq), which is the
// date-ascending, insertion-stable order of the CSV table.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *log.Logger
}

var _ Store = (*SQLiteStore)(nil)

const expenseColumns = `id, owner, txn_date, amount, category, merchant, country`

func NewSQLiteStore(dbPath string, logger *log.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = log.Discard()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, &core.PersistenceError{Op: "create db directory", Path: filepath.Dir(dbPath), Err: err}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, &core.PersistenceError{Op: "open sqlite database", Path: dbPath, Err: err}
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &core.PersistenceError{Op: "ping database", Path: dbPath, Err: err}
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, &core.PersistenceError{Op: "migrate", Path: dbPath, Err: err}
	}

	return &SQLiteStore{
		db:     db,
		path:   dbPath,
		logger: logger.WithComponent(log.ComponentStorage),
	}, nil
}

func (r *SQLiteStore) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteStore) Append(ctx context.Context, e core.Expense) (core.ID, error) {
	e = codec.Normalize(e)
	if err := e.Validate(); err != nil {
		return "", err
	}
	e.ID = newID()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (`+expenseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(e.ID), e.Owner, e.Date.String(), e.Amount, string(e.Category), e.Merchant, e.Country)
	if err != nil {
		return "", r.fail("insert expense", err)
	}

	r.logger.InfoContext(ctx, "Expense saved to SQLite",
		log.NewFields().
			WithOperation(log.OpAppend).
			WithExpense(string(e.ID), e.Owner, e.Date.String(), e.Amount, string(e.Category)).
			ToSlice()...)
	return e.ID, nil
}

func (r *SQLiteStore) Scan(ctx context.Context, owner string) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE owner = ? ORDER BY txn_date, seq`, owner)
	if err != nil {
		return nil, r.fail("query expenses", err)
	}
	defer rows.Close()

	out := []core.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, r.fail("scan expense", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, r.fail("iterate expenses", err)
	}
	return out, nil
}

func (r *SQLiteStore) Get(ctx context.Context, id core.ID) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, string(id))
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, core.NotFound(id)
	}
	if err != nil {
		return core.Expense{}, r.fail("get expense", err)
	}
	return e, nil
}

func (r *SQLiteStore) UpdateField(ctx context.Context, id core.ID, field core.Field, value string) (core.Expense, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Expense{}, r.fail("begin transaction", err)
	}
	defer tx.Rollback()

	current, err := scanExpense(tx.QueryRowContext(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, string(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, core.NotFound(id)
	}
	if err != nil {
		return core.Expense{}, r.fail("get expense", err)
	}

	updated, err := codec.ApplyField(current, field, value)
	if err != nil {
		return core.Expense{}, err
	}
	if err := updated.Validate(); err != nil {
		return core.Expense{}, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE expenses SET txn_date = ?, amount = ?, category = ?, merchant = ?, country = ? WHERE id = ?`,
		updated.Date.String(), updated.Amount, string(updated.Category), updated.Merchant, updated.Country, string(id))
	if err != nil {
		return core.Expense{}, r.fail("update expense", err)
	}
	if err := tx.Commit(); err != nil {
		return core.Expense{}, r.fail("commit update", err)
	}

	r.logger.InfoContext(ctx, "Expense updated",
		log.FieldOperation, log.OpUpdate,
		log.FieldID, id,
		log.FieldField, field.String())
	return updated, nil
}

func (r *SQLiteStore) Delete(ctx context.Context, id core.ID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, string(id))
	if err != nil {
		return r.fail("delete expense", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return r.fail("delete expense", err)
	}
	if n == 0 {
		return core.NotFound(id)
	}

	r.logger.InfoContext(ctx, "Expense deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldID, id)
	return nil
}

func (r *SQLiteStore) fail(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &core.PersistenceError{Op: op, Path: r.path, Err: err}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var (
		id, owner, date, category, merchant, country string
		amount                                       float64
	)
	if err := row.Scan(&id, &owner, &date, &amount, &category, &merchant, &country); err != nil {
		return core.Expense{}, err
	}
	d, err := core.ParseDate(date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("expense %s: %w", id, err)
	}
	return core.Expense{
		ID:       core.ID(id),
		Owner:    owner,
		Date:     d,
		Amount:   amount,
		Category: core.Category(category),
		Merchant: merchant,
		Country:  country,
	}, nil
}
