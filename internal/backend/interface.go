package backend

import (
	"context"
	"time"

	"expenses/internal/core"
	"expenses/internal/query"
	"expenses/internal/summary"
)

// Backend is the ledger as seen by the command line.
type Backend interface {
	CreateExpense(ctx context.Context, e core.Expense) (core.ID, error)
	Recent(ctx context.Context, owner string, n int) ([]core.Expense, error)
	ListRange(ctx context.Context, owner string, r core.DateRange) ([]core.Expense, error)
	EditByOrdinal(ctx context.Context, owner string, view []core.Expense, ordinal int, field core.Field, value string) (core.Expense, error)
	EditByID(ctx context.Context, owner string, id core.ID, field core.Field, value string) (core.Expense, error)
	DeleteByOrdinal(ctx context.Context, owner string, view []core.Expense, ordinal int) (core.Expense, error)
	DeleteByID(ctx context.Context, owner string, id core.ID) (core.Expense, error)
	MonthSummary(ctx context.Context, owner string, which query.Month, today core.Date) (summary.Report, error)
	RangeSummary(ctx context.Context, owner string, r core.DateRange) (summary.Report, error)
}

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the backend instance and optional cleanup function
type BackendResult struct {
	Backend Backend
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend creates a backend instance based on the provided config
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// CSV specific
	CSVDataPath string
	CacheTTL    time.Duration

	// SQLite specific
	SQLiteDBPath string

	// Event publishing, optional for every backend
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// BackendType represents the type of backend
type BackendType string

const (
	CSVBackend    BackendType = "csv"
	SQLiteBackend BackendType = "sqlite"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case CSVBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
