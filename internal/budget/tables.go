// Package budget implements the reconciliation core: loading the domain
// snapshot out of the row store and writing mutations back. The store is
// the source of truth; after every mutation the snapshot is invalidated and
// rebuilt wholesale rather than patched in memory.
package budget

// Persisted layout: two tables, header row mandatory.
var (
	CategoryHeaders = []string{"id", "category", "budget", "type"}
	ExpenseHeaders  = []string{"id", "category", "amount", "note", "date"}
)

// 1-based column positions shared by both tables where they overlap.
const (
	colID       = 1
	colCategory = 2
	colAmount   = 3
	colNote     = 4
)
