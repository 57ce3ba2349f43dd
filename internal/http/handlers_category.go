package http

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"budget/internal/core"
	applog "budget/internal/log"
)

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
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

	name := formValue(r, "name")
	typ := core.BudgetType(formValue(r, "type"))
	budgetAmount, err := parseAmount(r.Form.Get("budget"))
	if err != nil || budgetAmount < 0 {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Enter a non-negative budget amount.</div>`))
		return
	}

	// Duplicate check against the loaded snapshot, as the UI layer owns
	// input policy.
	snap := s.state.Current(r.Context())
	if name == "" || snap.Categories[name] != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid or duplicate category name.</div>`))
		return
	}

	id, err := s.svc.CreateCategory(r.Context(), name, budgetAmount, typ)
	if err != nil {
		if errors.Is(err, core.ErrEmptyName) || errors.Is(err, core.ErrNegativeBudget) || errors.Is(err, core.ErrInvalidType) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">Invalid data: ` + template.HTMLEscapeString(err.Error()) + `</div>`))
			return
		}
		s.logger.ErrorContext(r.Context(), "Failed to create category",
			applog.FieldError, err,
			applog.FieldCategory, name,
			applog.FieldOperation, applog.OpCreate)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Error saving category</div>`))
		return
	}

	s.invalidate()
	s.logger.InfoContext(r.Context(), "Category created",
		applog.FieldCategory, name,
		applog.FieldBudget, budgetAmount,
		"id", id,
		applog.FieldOperation, applog.OpCreate)

	redirectWithNotice(w, r, "Category '"+name+"' added.")
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
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

	name := formValue(r, "name")
	snap := s.state.Current(r.Context())
	if name == "" || snap.Categories[name] == nil {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`<div class="error">No such category.</div>`))
		return
	}

	if err := s.svc.DeleteCategory(r.Context(), name); err != nil {
		s.logger.ErrorContext(r.Context(), "Cascade delete failed",
			applog.FieldError, err,
			applog.FieldCategory, name,
			applog.FieldOperation, applog.OpDelete)
		// The two deletion passes are not transactional; reload so the UI
		// reflects whatever half-state the store is in now.
		s.invalidate()
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Error deleting category</div>`))
		return
	}

	s.invalidate()
	s.logger.InfoContext(r.Context(), "Category deleted with its expenses",
		applog.FieldCategory, name,
		applog.FieldOperation, applog.OpDelete)

	redirectWithNotice(w, r, "Deleted category '"+name+"' and its expenses.")
}

func redirectWithNotice(w http.ResponseWriter, r *http.Request, notice string) {
	http.Redirect(w, r, "/?notice="+url.QueryEscape(notice), http.StatusSeeOther)
}
