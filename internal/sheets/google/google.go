// Package google exports summary reports to a Google Sheets spreadsheet.
package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"expenses/internal/log"
	ports "expenses/internal/sheets"
	"expenses/internal/summary"
)

const defaultSheetName = "Summary"

var reportHeader = []any{"Category", "Count", "Sum", "Mean", "Max", "Percent of total"}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	logger        *log.Logger
}

// Ensure interface conformance
var _ ports.ReportExporter = (*Client)(nil)

// New creates a Sheets client for spreadsheetID. Credentials come from the
// environment, see newSheetsService.
func New(ctx context.Context, spreadsheetID, sheetName string, logger *log.Logger) (*Client, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	sheetName = strings.TrimSpace(sheetName)
	if sheetName == "" {
		sheetName = defaultSheetName
	}
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentSheets)

	svc, err := newSheetsService(ctx, logger)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		logger:        logger,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
// Uses GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context, logger *log.Logger) (*gsheet.Service, error) {
	credentialsJSON, source, err := serviceAccountCredentials()
	if err != nil {
		return nil, err
	}
	logger.DebugContext(ctx, "Creating Google Sheets service",
		"credentials_source", source,
		"scope", gsheet.SpreadsheetsScope)

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func serviceAccountCredentials() ([]byte, string, error) {
	if inline := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON")); inline != "" {
		return []byte(inline), "GOOGLE_SERVICE_ACCOUNT_JSON", nil
	}

	source := "GOOGLE_SERVICE_ACCOUNT_FILE"
	path := strings.TrimSpace(os.Getenv(source))
	if path == "" {
		source = "GOOGLE_APPLICATION_CREDENTIALS"
		path = strings.TrimSpace(os.Getenv(source))
	}
	if path == "" {
		return nil, "", errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read service account file: %w", err)
	}
	return data, source, nil
}

// ExportReport replaces the content of the report sheet with rep.
func (c *Client) ExportReport(ctx context.Context, owner string, rep summary.Report) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, c.sheetName, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear sheet %s: %w", c.sheetName, err)
	}

	values := reportValues(owner, rep)
	rng := fmt.Sprintf("%s!A1", c.sheetName)
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, &gsheet.ValueRange{Values: values}).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write report to %s: %w", rng, err)
	}

	c.logger.InfoContext(ctx, "Report exported",
		log.FieldOperation, log.OpExport,
		log.FieldOwner, owner,
		log.FieldRange, rep.Range.String(),
		"sheet", c.sheetName,
		"rows", len(values))
	return nil
}

// reportValues lays out rep as sheet rows: a title row, the column header,
// one row per category and a total row.
func reportValues(owner string, rep summary.Report) [][]any {
	values := make([][]any, 0, len(rep.Categories)+3)
	values = append(values,
		[]any{owner, rep.Range.Start.String(), rep.Range.End.String()},
		reportHeader,
	)

	count := 0
	var percent float64
	for _, s := range rep.Categories {
		values = append(values, []any{string(s.Category), s.Count, s.Sum, s.Mean, s.Max, s.PercentOfTotal})
		count += s.Count
		percent += s.PercentOfTotal
	}
	values = append(values, []any{"Total", count, rep.Total, "", "", percent})
	return values
}
