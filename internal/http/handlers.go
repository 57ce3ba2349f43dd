package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"budget/internal/core"
	applog "budget/internal/log"
)

type historyRow struct {
	ID       string
	Category string
	Amount   int64
	Note     string
	Date     string
}

type summaryRow struct {
	core.CategorySummary
	Percent int  // spent as % of budget, capped at 100 for the bar
	Over    bool // spent beyond budget
}

type dashboardData struct {
	Rows       []summaryRow
	Totals     core.Totals
	HasData    bool
	History    []historyRow
	Categories []string
	Types      []core.BudgetType
	Warnings   []string
	Notice     string
	Error      string
}

// handleIndex renders the dashboard: summary table, totals, progress bars,
// expense history and the mutation forms.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "Templates not loaded")
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	snap := s.state.Current(ctx)
	cats := snap.Ordered()
	summaries, totals := core.Summarize(cats)

	data := dashboardData{
		Totals:  totals,
		HasData: len(cats) > 0,
		Types:   core.ValidTypes(),
		Notice:  sanitizeInput(r.URL.Query().Get("notice")),
		Error:   sanitizeInput(r.URL.Query().Get("error")),
	}
	for _, row := range summaries {
		percent := 0
		if row.Budget > 0 {
			percent = int(row.Spent * 100 / row.Budget)
			if percent > 100 {
				percent = 100
			}
		}
		data.Rows = append(data.Rows, summaryRow{
			CategorySummary: row,
			Percent:         percent,
			Over:            row.Remaining < 0,
		})
	}
	for _, c := range cats {
		data.Categories = append(data.Categories, c.Name)
		for _, e := range c.Expenses {
			data.History = append(data.History, historyRow{
				ID:       e.ID,
				Category: c.Name,
				Amount:   e.Amount,
				Note:     e.Note,
				Date:     e.Date,
			})
		}
	}
	// Newest first; dates are lexicographically sortable by format.
	sort.SliceStable(data.History, func(i, j int) bool {
		return data.History[i].Date > data.History[j].Date
	})
	for _, wrn := range snap.Warnings {
		data.Warnings = append(data.Warnings, wrn.String())
	}

	if err := s.templates.ExecuteTemplate(w, "dashboard_page", data); err != nil {
		s.logger.ErrorContext(ctx, "Dashboard template execution failed", applog.FieldError, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
