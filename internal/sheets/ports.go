package sheets

import (
	"context"

	"expenses/internal/summary"
)

// Ports for outbound adapters.
type (
	// ReportExporter publishes a summary report outside the ledger.
	ReportExporter interface {
		ExportReport(ctx context.Context, owner string, rep summary.Report) error
	}
)
