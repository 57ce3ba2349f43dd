package core

import "testing"

func TestCategoryValidate(t *testing.T) {
	cases := []struct {
		name string
		c    Category
		want error
	}{
		{"ok", Category{Name: "Food", Budget: 500, Type: Monthly}, nil},
		{"one-time ok", Category{Name: "Trip", Budget: 0, Type: OneTime}, nil},
		{"empty name", Category{Name: "  ", Budget: 10, Type: Monthly}, ErrEmptyName},
		{"negative budget", Category{Name: "Food", Budget: -1, Type: Monthly}, ErrNegativeBudget},
		{"bad type", Category{Name: "Food", Budget: 10, Type: "Hourly"}, ErrInvalidType},
	}
	for _, tc := range cases {
		if got := tc.c.Validate(); got != tc.want {
			t.Errorf("%s: Validate() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestExpenseValidate(t *testing.T) {
	if err := (Expense{Category: "Food", Amount: 100}).Validate(); err != nil {
		t.Fatalf("valid expense rejected: %v", err)
	}
	if err := (Expense{Category: "", Amount: 100}).Validate(); err != ErrEmptyCategory {
		t.Fatalf("expected ErrEmptyCategory, got %v", err)
	}
	if err := (Expense{Category: "Food", Amount: 0}).Validate(); err != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount for zero amount, got %v", err)
	}
}

func TestCategorySpentAndRemaining(t *testing.T) {
	c := Category{Name: "Food", Budget: 500, Type: Monthly, Expenses: []Expense{
		{Amount: 100}, {Amount: 250},
	}}
	if got := c.Spent(); got != 350 {
		t.Fatalf("Spent() = %d, want 350", got)
	}
	if got := c.Remaining(); got != 150 {
		t.Fatalf("Remaining() = %d, want 150", got)
	}

	over := Category{Name: "Fun", Budget: 50, Expenses: []Expense{{Amount: 80}}}
	if got := over.Remaining(); got != -30 {
		t.Fatalf("Remaining() = %d, want -30", got)
	}
}
