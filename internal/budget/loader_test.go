package budget

import (
	"context"
	"errors"
	"testing"

	"budget/internal/core"
	"budget/internal/rowstore"
	"budget/internal/rowstore/memory"
)

func newTables(t *testing.T) (rowstore.Table, rowstore.Table) {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	cats, err := store.EnsureTable(ctx, "categories", CategoryHeaders)
	if err != nil {
		t.Fatalf("ensure categories: %v", err)
	}
	exps, err := store.EnsureTable(ctx, "expenses", ExpenseHeaders)
	if err != nil {
		t.Fatalf("ensure expenses: %v", err)
	}
	return cats, exps
}

func TestLoadBasic(t *testing.T) {
	ctx := context.Background()
	cats, exps := newTables(t)
	_ = cats.Append(ctx, []string{"id1", "Food", "500", "Monthly"})
	_ = exps.Append(ctx, []string{"e1", "Food", "100", "lunch", "2024-01-01 12:00:00"})

	snap := Load(ctx, cats, exps)
	if len(snap.Categories) != 1 {
		t.Fatalf("expected 1 category, got %d", len(snap.Categories))
	}
	food := snap.Categories["Food"]
	if food == nil || food.Budget != 500 || food.Type != core.Monthly || food.ID != "id1" {
		t.Fatalf("unexpected category: %+v", food)
	}
	if len(food.Expenses) != 1 {
		t.Fatalf("expected 1 expense, got %d", len(food.Expenses))
	}
	e := food.Expenses[0]
	if e.ID != "e1" || e.Amount != 100 || e.Note != "lunch" || e.Date != "2024-01-01 12:00:00" {
		t.Fatalf("unexpected expense: %+v", e)
	}
	if len(snap.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", snap.Warnings)
	}
}

func TestLoadSynthesizesOrphanCategory(t *testing.T) {
	ctx := context.Background()
	cats, exps := newTables(t)
	_ = exps.Append(ctx, []string{"e1", "Ghost", "42", "", ""})

	snap := Load(ctx, cats, exps)
	ghost := snap.Categories["Ghost"]
	if ghost == nil {
		t.Fatal("expected placeholder category for orphan expense")
	}
	if ghost.Budget != 0 || ghost.Type != core.Monthly || ghost.ID == "" {
		t.Fatalf("unexpected placeholder: %+v", ghost)
	}
	if len(ghost.Expenses) != 1 || ghost.Expenses[0].Amount != 42 {
		t.Fatalf("orphan expense not attached: %+v", ghost.Expenses)
	}
}

func TestLoadCoercion(t *testing.T) {
	ctx := context.Background()
	cats, exps := newTables(t)
	_ = cats.Append(ctx, []string{"c1", "Food", "", ""})
	_ = exps.Append(ctx, []string{"e1", "Food", "abc", "", ""})
	_ = exps.Append(ctx, []string{"e2", "Food", "12.9", "", ""})

	snap := Load(ctx, cats, exps)
	food := snap.Categories["Food"]
	if food.Budget != 0 {
		t.Fatalf("empty budget should coerce to 0, got %d", food.Budget)
	}
	if food.Type != core.Monthly {
		t.Fatalf("empty type should default to Monthly, got %q", food.Type)
	}
	if food.Expenses[0].Amount != 0 {
		t.Fatalf("non-numeric amount should coerce to 0, got %d", food.Expenses[0].Amount)
	}
	if food.Expenses[1].Amount != 12 {
		t.Fatalf("decimal amount should truncate to 12, got %d", food.Expenses[1].Amount)
	}
	// Only "abc" is malformed; "" and "12.9" parse under the policy.
	if len(snap.Warnings) != 1 || snap.Warnings[0].Field != "amount" || snap.Warnings[0].Value != "abc" {
		t.Fatalf("unexpected warnings: %v", snap.Warnings)
	}
}

func TestLoadDuplicateNameLastWins(t *testing.T) {
	ctx := context.Background()
	cats, exps := newTables(t)
	_ = cats.Append(ctx, []string{"c1", "Food", "100", "Monthly"})
	_ = cats.Append(ctx, []string{"c2", "Food", "900", "Yearly"})

	snap := Load(ctx, cats, exps)
	food := snap.Categories["Food"]
	if food.ID != "c2" || food.Budget != 900 || food.Type != core.Yearly {
		t.Fatalf("last duplicate should win, got %+v", food)
	}
	if len(snap.Order) != 1 {
		t.Fatalf("duplicate should not repeat in order: %v", snap.Order)
	}
}

func TestLoadBackfillsMissingIDs(t *testing.T) {
	ctx := context.Background()
	cats, exps := newTables(t)
	_ = cats.Append(ctx, []string{"", "Food", "10", "Monthly"})
	_ = exps.Append(ctx, []string{"", "Food", "5", "", ""})

	snap := Load(ctx, cats, exps)
	food := snap.Categories["Food"]
	if food.ID == "" || food.Expenses[0].ID == "" {
		t.Fatalf("ids not back-filled: cat=%q exp=%q", food.ID, food.Expenses[0].ID)
	}
}

func TestLoadSkipsEmptyCategoryName(t *testing.T) {
	ctx := context.Background()
	cats, exps := newTables(t)
	_ = cats.Append(ctx, []string{"c1", "  ", "10", "Monthly"})
	_ = exps.Append(ctx, []string{"e1", "", "5", "", ""})

	snap := Load(ctx, cats, exps)
	if len(snap.Categories) != 0 {
		t.Fatalf("rows with empty names should be skipped: %v", snap.Categories)
	}
}

type failingTable struct{ rowstore.Table }

func (failingTable) Records(context.Context) ([]rowstore.Record, error) {
	return nil, errors.New("boom")
}

func TestLoadTablesFailIndependently(t *testing.T) {
	ctx := context.Background()
	cats, exps := newTables(t)
	_ = exps.Append(ctx, []string{"e1", "Food", "100", "", ""})

	// Categories read fails entirely; expenses still load and Food is
	// synthesized as a placeholder.
	snap := Load(ctx, failingTable{cats}, exps)
	if len(snap.Categories) != 1 || snap.Categories["Food"] == nil {
		t.Fatalf("expected expenses to load despite categories failure: %v", snap.Categories)
	}

	// Both fail: empty snapshot, not an error.
	snap = Load(ctx, failingTable{cats}, failingTable{exps})
	if len(snap.Categories) != 0 {
		t.Fatalf("expected empty snapshot, got %v", snap.Categories)
	}
}

func TestSnapshotOrderedPreservesInsertion(t *testing.T) {
	ctx := context.Background()
	cats, exps := newTables(t)
	_ = cats.Append(ctx, []string{"c1", "Rent", "900", "Monthly"})
	_ = cats.Append(ctx, []string{"c2", "Food", "500", "Monthly"})

	snap := Load(ctx, cats, exps)
	ordered := snap.Ordered()
	if len(ordered) != 2 || ordered[0].Name != "Rent" || ordered[1].Name != "Food" {
		t.Fatalf("unexpected order: %v", snap.Order)
	}
}
