// Package rowstore defines the ports for the tabular persistence backend.
// The spreadsheet is the source of truth; everything in memory is a
// disposable snapshot rebuilt from these interfaces.
package rowstore

import "context"

// Record is one data row keyed by the table's header column names. Missing
// trailing cells read as "".
type Record map[string]string

type (
	// Store opens tables by name, creating them on first use.
	Store interface {
		// EnsureTable returns a handle to the named table, creating it with
		// the given header row if it does not exist. When an existing
		// table's first row differs from headers, the header row is migrated
		// to the exact expected sequence; data rows are left untouched.
		EnsureTable(ctx context.Context, name string, headers []string) (Table, error)
	}

	// Table exposes row-level access to one worksheet. Row and column
	// indices are 1-based over the raw rows, so row 1 is the header.
	Table interface {
		// Records returns all data rows keyed by header name, in sheet order.
		Records(ctx context.Context) ([]Record, error)

		// Rows returns the raw ordered rows including the header row. Cell
		// values are trimmed of surrounding whitespace on read, so callers
		// can match on stored values even when the sheet was hand-edited
		// with padding.
		Rows(ctx context.Context) ([][]string, error)

		Append(ctx context.Context, values []string) error
		UpdateCell(ctx context.Context, row, col int, value string) error
		DeleteRow(ctx context.Context, row int) error
	}
)

// RecordsFromRows converts a raw row matrix (header first) into Records.
// Rows shorter than the header are padded with empty strings; extra cells
// beyond the header are dropped.
func RecordsFromRows(rows [][]string) []Record {
	if len(rows) < 2 {
		return nil
	}
	headers := rows[0]
	out := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(headers))
		for i, h := range headers {
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		out = append(out, rec)
	}
	return out
}
