package core

// CategorySummary is one dashboard row: budget, spent and what is left.
type CategorySummary struct {
	Name      string
	Type      BudgetType
	Budget    int64
	Spent     int64
	Remaining int64
}

// Totals aggregates the whole dashboard.
type Totals struct {
	Budget    int64
	Spent     int64
	Remaining int64
}

// Summarize computes per-category rows and grand totals for an ordered list
// of categories. Remaining can be negative for over-budget categories.
func Summarize(cats []*Category) ([]CategorySummary, Totals) {
	rows := make([]CategorySummary, 0, len(cats))
	var t Totals
	for _, c := range cats {
		spent := c.Spent()
		rows = append(rows, CategorySummary{
			Name:      c.Name,
			Type:      c.Type,
			Budget:    c.Budget,
			Spent:     spent,
			Remaining: c.Budget - spent,
		})
		t.Budget += c.Budget
		t.Spent += spent
	}
	t.Remaining = t.Budget - t.Spent
	return rows, t
}
