// Package http serves the budget planner UI: a dashboard rendered from the
// domain snapshot plus form endpoints for every mutation.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"budget/internal/budget"
	applog "budget/internal/log"
	appweb "budget/web"
)

type Server struct {
	http.Server
	templates   *template.Template
	state       *budget.State
	svc         *budget.Service
	rateLimiter *rateLimiter
	logger      *applog.Logger

	// Rendered chart PNGs, purged on every mutation.
	chartCache *lruCache[[]byte]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, state *budget.State, svc *budget.Service, chartTTL time.Duration, logger *applog.Logger) *Server {
	mux := http.NewServeMux()

	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		state:            state,
		svc:              svc,
		rateLimiter:      newRateLimiter(),
		logger:           logger.WithComponent(applog.ComponentHTTP),
		chartCache:       newLRUCache[[]byte](16, chartTTL),
		stopCacheCleanup: make(chan struct{}),
	}
	go s.startCacheCleanup()

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("Failed parsing templates", applog.FieldError, err)
	}
	s.templates = t

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600")
			static.ServeHTTP(w, r)
		}))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.HandleFunc("/", s.withRequestLog(s.withSecurityHeaders(s.handleIndex)))
	mux.HandleFunc("/categories", s.withRequestLog(s.withSecurityHeaders(s.handleCreateCategory)))
	mux.HandleFunc("/categories/delete", s.withRequestLog(s.withSecurityHeaders(s.handleDeleteCategory)))
	mux.HandleFunc("/expenses", s.withRequestLog(s.withSecurityHeaders(s.handleCreateExpense)))
	mux.HandleFunc("/expenses/delete", s.withRequestLog(s.withSecurityHeaders(s.handleDeleteExpense)))
	mux.HandleFunc("/expenses/update", s.withRequestLog(s.withSecurityHeaders(s.handleUpdateExpense)))
	mux.HandleFunc("/charts/spending.png", s.withRequestLog(s.withSecurityHeaders(s.handleSpendingChart)))
	mux.HandleFunc("/charts/budget.png", s.withRequestLog(s.withSecurityHeaders(s.handleBudgetChart)))
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleHealth)

	return s
}

// withRequestLog logs every request with a generated id, method, path,
// status and duration.
func (s *Server) withRequestLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rw, r)
		s.logger.InfoContext(r.Context(), "Request handled",
			applog.FieldRequestID, generateRequestID(),
			applog.FieldClientIP, extractClientIP(r),
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.status,
			applog.FieldDuration, time.Since(start).Milliseconds(),
		)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// invalidate drops both the domain snapshot and the chart cache after a
// mutation; the next render reloads everything from the row store.
func (s *Server) invalidate() {
	s.state.Invalidate()
	s.chartCache.Purge()
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.chartCache.CleanExpired(); cleaned > 0 {
				s.logger.Debug("Chart cache cleanup", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown stops the cleanup goroutines and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		close(s.stopCacheCleanup)
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
