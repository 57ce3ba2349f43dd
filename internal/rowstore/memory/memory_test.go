package memory

import (
	"context"
	"testing"
)

func TestEnsureTableCreatesHeader(t *testing.T) {
	s := New()
	tbl, err := s.EnsureTable(context.Background(), "categories", []string{"id", "category", "budget", "type"})
	if err != nil {
		t.Fatalf("EnsureTable: %v", err)
	}
	rows, err := tbl.Rows(context.Background())
	if err != nil || len(rows) != 1 {
		t.Fatalf("rows=%v err=%v", rows, err)
	}
	if rows[0][1] != "category" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
}

func TestEnsureTableMigratesHeaderKeepingData(t *testing.T) {
	s := New()
	headers := []string{"id", "category", "budget", "type"}
	tbl, _ := s.EnsureTable(context.Background(), "categories", []string{"old", "header"})
	_ = tbl.Append(context.Background(), []string{"c1", "Food", "500", "Monthly"})

	tbl2, err := s.EnsureTable(context.Background(), "categories", headers)
	if err != nil {
		t.Fatalf("EnsureTable: %v", err)
	}
	rows, _ := tbl2.Rows(context.Background())
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 data row, got %d", len(rows))
	}
	for i, h := range headers {
		if rows[0][i] != h {
			t.Fatalf("header not migrated: %v", rows[0])
		}
	}
	if rows[1][1] != "Food" {
		t.Fatalf("data row changed during header migration: %v", rows[1])
	}
}

func TestRecordsPadShortRows(t *testing.T) {
	s := New()
	tbl, _ := s.EnsureTable(context.Background(), "expenses", []string{"id", "category", "amount", "note", "date"})
	_ = tbl.Append(context.Background(), []string{"e1", "Food", "100"})

	recs, err := tbl.Records(context.Background())
	if err != nil || len(recs) != 1 {
		t.Fatalf("recs=%v err=%v", recs, err)
	}
	if recs[0]["amount"] != "100" || recs[0]["note"] != "" || recs[0]["date"] != "" {
		t.Fatalf("unexpected record: %v", recs[0])
	}
}

func TestUpdateCellAndDeleteRow(t *testing.T) {
	ctx := context.Background()
	s := New()
	tbl, _ := s.EnsureTable(ctx, "expenses", []string{"id", "category", "amount", "note", "date"})
	_ = tbl.Append(ctx, []string{"e1", "Food", "100", "", ""})
	_ = tbl.Append(ctx, []string{"e2", "Food", "200", "", ""})

	if err := tbl.UpdateCell(ctx, 2, 3, "150"); err != nil {
		t.Fatalf("UpdateCell: %v", err)
	}
	rows, _ := tbl.Rows(ctx)
	if rows[1][2] != "150" {
		t.Fatalf("cell not updated: %v", rows[1])
	}

	if err := tbl.DeleteRow(ctx, 2); err != nil {
		t.Fatalf("DeleteRow: %v", err)
	}
	rows, _ = tbl.Rows(ctx)
	if len(rows) != 2 || rows[1][0] != "e2" {
		t.Fatalf("unexpected rows after delete: %v", rows)
	}

	if err := tbl.DeleteRow(ctx, 9); err == nil {
		t.Fatal("expected out-of-range error")
	}
	if err := tbl.UpdateCell(ctx, 1, 0, "x"); err == nil {
		t.Fatal("expected out-of-range error for column 0")
	}
}

func TestRowsTrimWhitespace(t *testing.T) {
	ctx := context.Background()
	s := New()
	tbl, _ := s.EnsureTable(ctx, "expenses", []string{"id", "category", "amount", "note", "date"})
	_ = tbl.Append(ctx, []string{" e1 ", "Food ", "100", "", ""})

	rows, err := tbl.Rows(ctx)
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if rows[1][0] != "e1" || rows[1][1] != "Food" {
		t.Fatalf("cells not trimmed: %v", rows[1])
	}
	recs, _ := tbl.Records(ctx)
	if recs[0]["category"] != "Food" {
		t.Fatalf("record not trimmed: %v", recs[0])
	}
}
