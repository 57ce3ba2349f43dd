package http

import (
	"net/http"
	"time"

	applog "budget/internal/log"
)

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	category := formValue(r, "category")
	note := formValue(r, "note")
	amount, err := parseAmount(r.Form.Get("amount"))
	if err != nil || amount <= 0 {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Enter an amount greater than 0.</div>`))
		return
	}

	snap := s.state.Current(r.Context())
	if category == "" || snap.Categories[category] == nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Add a category first.</div>`))
		return
	}

	// Timestamp captured at submission time.
	id, err := s.svc.CreateExpense(r.Context(), category, amount, note, time.Now())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to save expense",
			applog.FieldError, err,
			applog.FieldCategory, category,
			applog.FieldAmount, amount,
			applog.FieldOperation, applog.OpCreate)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Error saving expense</div>`))
		return
	}

	s.invalidate()
	s.logger.InfoContext(r.Context(), "Expense created",
		applog.FieldExpenseID, id,
		applog.FieldCategory, category,
		applog.FieldAmount, amount,
		applog.FieldOperation, applog.OpCreate)

	redirectWithNotice(w, r, "Added expense to "+category+".")
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	id := formValue(r, "id")
	if id == "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Missing expense id.</div>`))
		return
	}

	found, err := s.svc.DeleteExpense(r.Context(), id)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to delete expense",
			applog.FieldError, err,
			applog.FieldExpenseID, id,
			applog.FieldOperation, applog.OpDelete)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Error deleting expense</div>`))
		return
	}
	if !found {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`<div class="error">Expense not found.</div>`))
		return
	}

	s.invalidate()
	s.logger.InfoContext(r.Context(), "Expense deleted",
		applog.FieldExpenseID, id,
		applog.FieldOperation, applog.OpDelete)

	redirectWithNotice(w, r, "Expense deleted.")
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	id := formValue(r, "id")
	if id == "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Missing expense id.</div>`))
		return
	}
	amount, err := parseAmount(r.Form.Get("amount"))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid amount.</div>`))
		return
	}

	// An empty note field leaves the stored note unchanged.
	var note *string
	if v := formValue(r, "note"); v != "" {
		note = &v
	}

	found, err := s.svc.UpdateExpense(r.Context(), id, amount, note)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to update expense",
			applog.FieldError, err,
			applog.FieldExpenseID, id,
			applog.FieldOperation, applog.OpUpdate)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Error updating expense</div>`))
		return
	}
	if !found {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`<div class="error">Expense not found.</div>`))
		return
	}

	s.invalidate()
	s.logger.InfoContext(r.Context(), "Expense updated",
		applog.FieldExpenseID, id,
		applog.FieldAmount, amount,
		applog.FieldOperation, applog.OpUpdate)

	redirectWithNotice(w, r, "Expense updated.")
}
