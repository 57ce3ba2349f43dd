package core

import (
	"errors"
	"strings"
)

const (
	Monthly BudgetType = "Monthly"
	Weekly  BudgetType = "Weekly"
	Yearly  BudgetType = "Yearly"
	OneTime BudgetType = "One-time"
)

// DateLayout is the wall-clock timestamp format stored with each expense.
const DateLayout = "2006-01-02 15:04:05"

type (
	// BudgetType describes how often a category's budget renews. Stored as a
	// free-form string; only validated when a user creates a category.
	BudgetType string

	// Category is a named spending bucket with an associated budget and the
	// expenses logged against it, in row-store order.
	Category struct {
		ID       string
		Name     string
		Budget   int64
		Type     BudgetType
		Expenses []Expense
	}

	// Expense is a single spend record. Category is the owning category's
	// name; the row store keys expenses by name, not id.
	Expense struct {
		ID       string
		Category string
		Amount   int64
		Note     string
		Date     string
	}
)

var (
	ErrEmptyName      = errors.New("empty category name")
	ErrNegativeBudget = errors.New("negative budget")
	ErrInvalidType    = errors.New("invalid budget type")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrEmptyCategory  = errors.New("empty category")
)

// ValidTypes lists the budget types offered to users, in display order.
func ValidTypes() []BudgetType {
	return []BudgetType{Monthly, Weekly, Yearly, OneTime}
}

func (t BudgetType) Valid() bool {
	switch t {
	case Monthly, Weekly, Yearly, OneTime:
		return true
	}
	return false
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if c.Budget < 0 {
		return ErrNegativeBudget
	}
	if !c.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

// Spent returns the sum of the category's expense amounts.
func (c Category) Spent() int64 {
	var total int64
	for _, e := range c.Expenses {
		total += e.Amount
	}
	return total
}

// Remaining returns Budget minus Spent. It can go negative when a category
// is over budget.
func (c Category) Remaining() int64 {
	return c.Budget - c.Spent()
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if e.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
