package budget

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"budget/internal/core"
	"budget/internal/rowstore"

	"github.com/google/uuid"
)

// Service performs the mutation operations against the row store. Every
// method writes through synchronously; callers reload the snapshot
// afterwards to observe the effect.
//
// Row indices are never cached: each index-based mutation re-resolves its
// target from a fresh raw read immediately before deleting or updating, so a
// stale snapshot can at worst miss a row, not hit the wrong one.
type Service struct {
	cats rowstore.Table
	exps rowstore.Table

	newID func() string
}

func NewService(cats, exps rowstore.Table) *Service {
	return &Service{cats: cats, exps: exps, newID: uuid.NewString}
}

// CreateCategory appends a category row and returns its generated id.
// Duplicate-name rejection happens at the caller against the loaded
// snapshot; this layer only enforces field validity.
func (s *Service) CreateCategory(ctx context.Context, name string, budgetAmount int64, typ core.BudgetType) (string, error) {
	c := core.Category{Name: name, Budget: budgetAmount, Type: typ}
	if err := c.Validate(); err != nil {
		return "", err
	}
	id := s.newID()
	row := []string{id, name, strconv.FormatInt(budgetAmount, 10), string(typ)}
	if err := s.cats.Append(ctx, row); err != nil {
		return "", fmt.Errorf("append category: %w", err)
	}
	return id, nil
}

// CreateExpense appends an expense row stamped with at (wall clock at the
// point of submission) and returns its generated id.
func (s *Service) CreateExpense(ctx context.Context, category string, amount int64, note string, at time.Time) (string, error) {
	e := core.Expense{Category: category, Amount: amount, Note: note}
	if err := e.Validate(); err != nil {
		return "", err
	}
	id := s.newID()
	row := []string{id, category, strconv.FormatInt(amount, 10), note, at.Format(core.DateLayout)}
	if err := s.exps.Append(ctx, row); err != nil {
		return "", fmt.Errorf("append expense: %w", err)
	}
	return id, nil
}

// DeleteCategory removes every category row with the given name and then
// every expense row referencing it. The two passes are not transactional: if
// the second pass fails, orphaned expenses re-synthesize as a placeholder
// category on the next load.
func (s *Service) DeleteCategory(ctx context.Context, name string) error {
	if err := s.deleteMatching(ctx, s.cats, name); err != nil {
		return fmt.Errorf("delete category rows: %w", err)
	}
	if err := s.deleteMatching(ctx, s.exps, name); err != nil {
		return fmt.Errorf("delete expense rows: %w", err)
	}
	return nil
}

// deleteMatching deletes all rows whose category column equals name.
// Indexes are collected from a fresh read and deleted in reverse so earlier
// indices stay valid through the pass.
func (s *Service) deleteMatching(ctx context.Context, t rowstore.Table, name string) error {
	rows, err := t.Rows(ctx)
	if err != nil {
		return err
	}
	var targets []int
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) >= colCategory && row[colCategory-1] == name {
			targets = append(targets, i+1)
		}
	}
	for i := len(targets) - 1; i >= 0; i-- {
		if err := t.DeleteRow(ctx, targets[i]); err != nil {
			return err
		}
	}
	return nil
}

// DeleteExpense removes the first expense row whose id matches. The found
// return is false when no row matched; the store is left untouched then.
func (s *Service) DeleteExpense(ctx context.Context, id string) (found bool, err error) {
	row, err := s.findExpenseRow(ctx, id)
	if err != nil || row == 0 {
		return false, err
	}
	if err := s.exps.DeleteRow(ctx, row); err != nil {
		return false, fmt.Errorf("delete expense %s: %w", id, err)
	}
	return true, nil
}

// UpdateExpense overwrites the amount cell of the expense with the given id
// and, when note is non-nil, its note cell. No amount validation here: the
// caller owns input policy.
func (s *Service) UpdateExpense(ctx context.Context, id string, amount int64, note *string) (found bool, err error) {
	row, err := s.findExpenseRow(ctx, id)
	if err != nil || row == 0 {
		return false, err
	}
	if err := s.exps.UpdateCell(ctx, row, colAmount, strconv.FormatInt(amount, 10)); err != nil {
		return false, fmt.Errorf("update expense %s amount: %w", id, err)
	}
	if note != nil {
		if err := s.exps.UpdateCell(ctx, row, colNote, *note); err != nil {
			return false, fmt.Errorf("update expense %s note: %w", id, err)
		}
	}
	return true, nil
}

// findExpenseRow returns the 1-based sheet row of the expense with the given
// id, or 0 when absent.
func (s *Service) findExpenseRow(ctx context.Context, id string) (int, error) {
	rows, err := s.exps.Rows(ctx)
	if err != nil {
		return 0, fmt.Errorf("scan expenses: %w", err)
	}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) >= colID && row[colID-1] == id {
			return i + 1, nil
		}
	}
	return 0, nil
}
