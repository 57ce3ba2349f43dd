package http

import (
	"context"
	"net/http"
	"time"

	"budget/internal/charts"
	"budget/internal/core"
	applog "budget/internal/log"
)

func (s *Server) handleSpendingChart(w http.ResponseWriter, r *http.Request) {
	s.serveChart(w, r, "spending", charts.SpendingPie)
}

func (s *Server) handleBudgetChart(w http.ResponseWriter, r *http.Request) {
	s.serveChart(w, r, "budget", charts.BudgetBars)
}

func (s *Server) serveChart(w http.ResponseWriter, r *http.Request, key string, render func([]core.CategorySummary) ([]byte, error)) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if png, ok := s.chartCache.Get(key); ok {
		writePNG(w, png)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	rows, _ := core.Summarize(s.state.Current(ctx).Ordered())
	png, err := render(rows)
	if err != nil {
		s.logger.ErrorContext(ctx, "Chart rendering failed",
			applog.FieldError, err, "chart", key)
		http.Error(w, "chart rendering failed", http.StatusInternalServerError)
		return
	}
	if png == nil {
		http.Error(w, "no data to chart", http.StatusNotFound)
		return
	}

	s.chartCache.Set(key, png)
	writePNG(w, png)
}

func writePNG(w http.ResponseWriter, png []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}
