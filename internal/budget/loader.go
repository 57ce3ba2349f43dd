package budget

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"budget/internal/core"
	"budget/internal/rowstore"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Snapshot is the in-memory domain model: category name -> Category, plus
// the first-seen name order for stable rendering. It is rebuilt from the row
// store after every mutation.
type Snapshot struct {
	Categories map[string]*core.Category
	Order      []string
	Warnings   []RowWarning
}

// RowWarning records a cell that did not parse cleanly and was coerced to
// its default. The load itself never fails on bad cells.
type RowWarning struct {
	Table string
	Row   int // 1-based sheet row (header is row 1)
	Field string
	Value string
}

func (w RowWarning) String() string {
	return fmt.Sprintf("%s row %d: %s %q coerced to 0", w.Table, w.Row, w.Field, w.Value)
}

// Ordered returns the categories in first-seen order.
func (s *Snapshot) Ordered() []*core.Category {
	out := make([]*core.Category, 0, len(s.Order))
	for _, name := range s.Order {
		out = append(out, s.Categories[name])
	}
	return out
}

// Load rebuilds the domain snapshot from the categories and expenses tables.
//
// The two table reads run concurrently and fail independently: a failed read
// degrades to zero records for that table only. Malformed numeric cells
// coerce to 0 per core.CoerceInt and are reported as Warnings. Rows with an
// empty category name are skipped; duplicate category names keep the
// last-read row; expenses referencing an unknown category synthesize a
// placeholder (budget 0, type Monthly).
func Load(ctx context.Context, cats, exps rowstore.Table) *Snapshot {
	var catRecs, expRecs []rowstore.Record

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recs, err := cats.Records(gctx)
		if err != nil {
			slog.WarnContext(gctx, "Categories read failed, loading empty", "error", err)
			return nil
		}
		catRecs = recs
		return nil
	})
	g.Go(func() error {
		recs, err := exps.Records(gctx)
		if err != nil {
			slog.WarnContext(gctx, "Expenses read failed, loading empty", "error", err)
			return nil
		}
		expRecs = recs
		return nil
	})
	_ = g.Wait()

	snap := &Snapshot{Categories: make(map[string]*core.Category)}

	for i, r := range catRecs {
		name := strings.TrimSpace(r["category"])
		if name == "" {
			continue
		}
		id := r["id"]
		if id == "" {
			id = uuid.NewString()
		}
		b, ok := core.CoerceInt(r["budget"])
		if !ok {
			snap.Warnings = append(snap.Warnings, RowWarning{Table: "categories", Row: i + 2, Field: "budget", Value: r["budget"]})
		}
		typ := core.BudgetType(r["type"])
		if typ == "" {
			typ = core.Monthly
		}
		if _, dup := snap.Categories[name]; dup {
			slog.WarnContext(ctx, "Duplicate category row, last one wins", "category", name, "row", i+2)
		} else {
			snap.Order = append(snap.Order, name)
		}
		snap.Categories[name] = &core.Category{ID: id, Name: name, Budget: b, Type: typ}
	}

	for i, r := range expRecs {
		name := strings.TrimSpace(r["category"])
		if name == "" {
			continue
		}
		id := r["id"]
		if id == "" {
			id = uuid.NewString()
		}
		amount, ok := core.CoerceInt(r["amount"])
		if !ok {
			snap.Warnings = append(snap.Warnings, RowWarning{Table: "expenses", Row: i + 2, Field: "amount", Value: r["amount"]})
		}
		cat, exists := snap.Categories[name]
		if !exists {
			// Orphan expense: its category row is gone. Synthesize a
			// placeholder so the spend still shows up somewhere.
			cat = &core.Category{ID: uuid.NewString(), Name: name, Budget: 0, Type: core.Monthly}
			snap.Categories[name] = cat
			snap.Order = append(snap.Order, name)
		}
		cat.Expenses = append(cat.Expenses, core.Expense{
			ID:       id,
			Category: name,
			Amount:   amount,
			Note:     r["note"],
			Date:     r["date"],
		})
	}

	for _, w := range snap.Warnings {
		slog.WarnContext(ctx, "Coerced malformed cell", "table", w.Table, "row", w.Row, "field", w.Field, "value", w.Value)
	}
	return snap
}
