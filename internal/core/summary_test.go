package core

import "testing"

func TestSummarize(t *testing.T) {
	cats := []*Category{
		{Name: "Food", Type: Monthly, Budget: 500, Expenses: []Expense{{Amount: 100}, {Amount: 50}}},
		{Name: "Rent", Type: Monthly, Budget: 900, Expenses: []Expense{{Amount: 900}}},
		{Name: "Fun", Type: Weekly, Budget: 40, Expenses: []Expense{{Amount: 70}}},
	}
	rows, totals := Summarize(cats)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Spent != 150 || rows[0].Remaining != 350 {
		t.Errorf("Food: spent=%d remaining=%d", rows[0].Spent, rows[0].Remaining)
	}
	if rows[2].Remaining != -30 {
		t.Errorf("Fun remaining = %d, want -30 (over budget)", rows[2].Remaining)
	}
	if totals.Budget != 1440 || totals.Spent != 1120 || totals.Remaining != 320 {
		t.Errorf("totals = %+v", totals)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	rows, totals := Summarize(nil)
	if len(rows) != 0 || totals != (Totals{}) {
		t.Fatalf("expected empty summary, got rows=%v totals=%+v", rows, totals)
	}
}
