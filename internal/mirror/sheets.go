// Package mirror appends ledger events to a Google Sheets audit trail.
// The sheet is a write-only mirror of the SQLite ledger: one row per
// recorded expense, one row per date clearance.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"expensed/internal/core"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type SheetsMirror struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// NewFromEnv creates a Sheets mirror using environment variables.
// Required: GOOGLE_SPREADSHEET_ID. Credentials come from
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS. Optional: GOOGLE_SHEET_NAME
// (default "Ledger").
func NewFromEnv(ctx context.Context) (*SheetsMirror, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Ledger"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &SheetsMirror{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// newSheetsService initializes a Sheets service using Service Account
// credentials.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// AppendExpense mirrors one recorded expense as a sheet row.
func (m *SheetsMirror) AppendExpense(ctx context.Context, rec core.Expense) error {
	row := []interface{}{
		time.Now().UTC().Format(time.RFC3339),
		"recorded",
		rec.Date.String(),
		rec.Category,
		rec.Notes,
		rec.Amount.String(),
		rec.ID,
	}
	return m.appendRow(ctx, row)
}

// AppendClearance mirrors a date-scoped delete as a sheet row.
func (m *SheetsMirror) AppendClearance(ctx context.Context, date string, count int64) error {
	row := []interface{}{
		time.Now().UTC().Format(time.RFC3339),
		"cleared",
		date,
		"", // category
		"", // notes
		"", // amount
		count,
	}
	return m.appendRow(ctx, row)
}

func (m *SheetsMirror) appendRow(ctx context.Context, row []interface{}) error {
	rng := fmt.Sprintf("%s!A:G", m.sheetName)
	vr := &gsheet.ValueRange{Values: [][]interface{}{row}}

	_, err := m.svc.Spreadsheets.Values.
		Append(m.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append mirror row: %w", err)
	}

	slog.DebugContext(ctx, "Appended mirror row",
		"spreadsheet_id", m.spreadsheetID,
		"sheet", m.sheetName)
	return nil
}
