// Package memory is an in-memory rowstore.Store used for local development
// and tests. It mirrors the sheet semantics: ordered rows, header in row 1,
// 1-based indices.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"budget/internal/rowstore"
)

type Store struct {
	mu     sync.Mutex
	tables map[string]*Table
}

func New() *Store {
	return &Store{tables: make(map[string]*Table)}
}

// EnsureTable implements rowstore.Store. Creation and header migration are
// the same code path as the Google backend: a brand-new table gets the
// header appended; a mismatched header row is overwritten in place.
func (s *Store) EnsureTable(_ context.Context, name string, headers []string) (rowstore.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[name]
	if !ok {
		t = &Table{}
		t.rows = append(t.rows, append([]string(nil), headers...))
		s.tables[name] = t
		return t, nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.rows) == 0 {
		t.rows = append(t.rows, append([]string(nil), headers...))
	} else if !equal(t.rows[0], headers) {
		t.rows[0] = append([]string(nil), headers...)
	}
	return t, nil
}

type Table struct {
	mu   sync.Mutex
	rows [][]string
}

func (t *Table) Records(ctx context.Context) ([]rowstore.Record, error) {
	rows, err := t.Rows(ctx)
	if err != nil {
		return nil, err
	}
	return rowstore.RecordsFromRows(rows), nil
}

func (t *Table) Rows(_ context.Context) ([][]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([][]string, len(t.rows))
	for i, r := range t.rows {
		row := make([]string, len(r))
		for j, c := range r {
			row[j] = strings.TrimSpace(c)
		}
		out[i] = row
	}
	return out, nil
}

func (t *Table) Append(_ context.Context, values []string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, append([]string(nil), values...))
	return nil
}

func (t *Table) UpdateCell(_ context.Context, row, col int, value string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if col < 1 {
		return fmt.Errorf("column %d out of range", col)
	}
	if row < 1 || row > len(t.rows) {
		return fmt.Errorf("row %d out of range (have %d rows)", row, len(t.rows))
	}
	r := t.rows[row-1]
	for len(r) < col {
		r = append(r, "")
	}
	r[col-1] = value
	t.rows[row-1] = r
	return nil
}

func (t *Table) DeleteRow(_ context.Context, row int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if row < 1 || row > len(t.rows) {
		return fmt.Errorf("row %d out of range (have %d rows)", row, len(t.rows))
	}
	t.rows = append(t.rows[:row-1], t.rows[row:]...)
	return nil
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
