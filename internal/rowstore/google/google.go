// Package google implements the rowstore ports on top of the Google Sheets
// API using service-account credentials.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"budget/internal/rowstore"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Store struct {
	svc           *gsheet.Service
	spreadsheetID string
}

var _ rowstore.Store = (*Store)(nil)

// NewFromEnv creates a Sheets-backed store using environment variables.
// Required: GOOGLE_SPREADSHEET_ID.
// Credentials: GOOGLE_SERVICE_ACCOUNT_JSON (inline), GOOGLE_SERVICE_ACCOUNT_FILE,
// or GOOGLE_APPLICATION_CREDENTIALS (file path).
func NewFromEnv(ctx context.Context) (*Store, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Store{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		b, err := os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = b
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

// EnsureTable implements rowstore.Store. Missing worksheets are created with
// the header row; an existing worksheet whose first row differs from the
// expected headers gets its header row migrated in place, leaving data rows
// alone.
func (s *Store) EnsureTable(ctx context.Context, name string, headers []string) (rowstore.Table, error) {
	if s.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}

	sheetID, err := s.lookupSheetID(ctx, name)
	if err != nil {
		return nil, err
	}
	if sheetID < 0 {
		sheetID, err = s.addSheet(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
		slog.InfoContext(ctx, "Created worksheet", "sheet", name)
	}

	t := &Table{store: s, name: name, sheetID: sheetID}
	if err := t.migrateHeader(ctx, headers); err != nil {
		return nil, fmt.Errorf("ensure header for %s: %w", name, err)
	}
	return t, nil
}

func (s *Store) lookupSheetID(ctx context.Context, name string) (int64, error) {
	meta, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return -1, fmt.Errorf("open spreadsheet %s: %w", s.spreadsheetID, err)
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == name {
			return sh.Properties.SheetId, nil
		}
	}
	return -1, nil
}

func (s *Store) addSheet(ctx context.Context, name string) (int64, error) {
	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{Title: name},
			},
		}},
	}
	resp, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return -1, err
	}
	for _, r := range resp.Replies {
		if r.AddSheet != nil && r.AddSheet.Properties != nil {
			return r.AddSheet.Properties.SheetId, nil
		}
	}
	return -1, errors.New("add sheet reply missing properties")
}

// Table is a handle to one worksheet. Indices are 1-based as in the sheet UI.
type Table struct {
	store   *Store
	name    string
	sheetID int64
}

var _ rowstore.Table = (*Table)(nil)

// migrateHeader rewrites row 1 when it does not exactly match the expected
// header sequence. Data rows below are never touched.
func (t *Table) migrateHeader(ctx context.Context, headers []string) error {
	rng := fmt.Sprintf("%s!1:1", t.name)
	resp, err := t.store.svc.Spreadsheets.Values.Get(t.store.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read %s: %w", rng, err)
	}
	var current []string
	if len(resp.Values) > 0 {
		current = toStrings(resp.Values[0])
	}
	if headersEqual(current, headers) {
		return nil
	}
	if len(current) > 0 {
		slog.WarnContext(ctx, "Header mismatch, migrating header row",
			"sheet", t.name, "have", current, "want", headers)
	}
	vals, width := headerUpdateRow(current, headers)
	target := fmt.Sprintf("%s!A1:%s1", t.name, columnName(width))
	vr := &gsheet.ValueRange{Values: [][]any{vals}}
	_, err = t.store.svc.Spreadsheets.Values.Update(t.store.spreadsheetID, target, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write header %s: %w", target, err)
	}
	return nil
}

func (t *Table) Records(ctx context.Context) ([]rowstore.Record, error) {
	rows, err := t.Rows(ctx)
	if err != nil {
		return nil, err
	}
	return rowstore.RecordsFromRows(rows), nil
}

func (t *Table) Rows(ctx context.Context) ([][]string, error) {
	resp, err := t.store.svc.Spreadsheets.Values.Get(t.store.spreadsheetID, t.name).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", t.name, err)
	}
	out := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		out = append(out, toStrings(row))
	}
	return out, nil
}

func (t *Table) Append(ctx context.Context, values []string) error {
	vals := make([]any, len(values))
	for i, v := range values {
		vals[i] = v
	}
	vr := &gsheet.ValueRange{Values: [][]any{vals}}
	_, err := t.store.svc.Spreadsheets.Values.Append(t.store.spreadsheetID, t.name, vr).
		ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", t.name, err)
	}
	return nil
}

func (t *Table) UpdateCell(ctx context.Context, row, col int, value string) error {
	if row < 1 || col < 1 {
		return fmt.Errorf("invalid cell (%d,%d)", row, col)
	}
	target := fmt.Sprintf("%s!%s%d", t.name, columnName(col), row)
	vr := &gsheet.ValueRange{Values: [][]any{{value}}}
	_, err := t.store.svc.Spreadsheets.Values.Update(t.store.spreadsheetID, target, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", target, err)
	}
	return nil
}

func (t *Table) DeleteRow(ctx context.Context, row int) error {
	if row < 1 {
		return fmt.Errorf("invalid row %d", row)
	}
	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			DeleteDimension: &gsheet.DeleteDimensionRequest{
				Range: &gsheet.DimensionRange{
					SheetId:    t.sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(row - 1),
					EndIndex:   int64(row),
				},
			},
		}},
	}
	if _, err := t.store.svc.Spreadsheets.BatchUpdate(t.store.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete row %d from %s: %w", row, t.name, err)
	}
	return nil
}

// headerUpdateRow builds the replacement header row and its width. The row
// is padded with empty cells out to the current header's length because
// Values.Update never clears cells outside the written range; without the
// padding a hand-added trailing column would survive the migration.
func headerUpdateRow(current, headers []string) ([]any, int) {
	width := len(headers)
	if len(current) > width {
		width = len(current)
	}
	vals := make([]any, width)
	for i := range vals {
		if i < len(headers) {
			vals[i] = headers[i]
		} else {
			vals[i] = ""
		}
	}
	return vals, width
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func headersEqual(have, want []string) bool {
	if len(have) != len(want) {
		return false
	}
	for i := range want {
		if have[i] != want[i] {
			return false
		}
	}
	return true
}

// columnName converts a 1-based column index to its A1 letter form
// (1 -> A, 26 -> Z, 27 -> AA).
func columnName(col int) string {
	name := ""
	for col > 0 {
		col--
		name = string(rune('A'+col%26)) + name
		col /= 26
	}
	return name
}
