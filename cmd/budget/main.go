package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"budget/internal/budget"
	"budget/internal/cli"
	apphttp "budget/internal/http"
	applog "budget/internal/log"
	"budget/internal/rowstore"
	gsheet "budget/internal/rowstore/google"
	mem "budget/internal/rowstore/memory"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx := context.Background()

	var store rowstore.Store
	switch cfg.DataBackend {
	case "sheets":
		s, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets store", applog.FieldError, err, applog.FieldBackend, cfg.DataBackend)
			os.Exit(1)
		}
		store = s
	default:
		store = mem.New()
	}
	logger.Info("Initialized row store", applog.FieldBackend, cfg.DataBackend)

	// Opening the tables validates credentials and migrates headers up
	// front; a store that cannot be reached is fatal here, not mid-request.
	cats, err := store.EnsureTable(ctx, cfg.CategoriesTable, budget.CategoryHeaders)
	if err != nil {
		logger.Error("Failed to open categories table", applog.FieldError, err, applog.FieldTable, cfg.CategoriesTable)
		os.Exit(1)
	}
	exps, err := store.EnsureTable(ctx, cfg.ExpensesTable, budget.ExpenseHeaders)
	if err != nil {
		logger.Error("Failed to open expenses table", applog.FieldError, err, applog.FieldTable, cfg.ExpensesTable)
		os.Exit(1)
	}

	svc := budget.NewService(cats, exps)
	state := budget.NewState(cats, exps)

	srv := apphttp.NewServer(":"+cfg.Port, state, svc, cfg.ChartCacheTTL, logger)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	done := cli.GracefulShutdown(logger, 30*time.Second, func(shutdownCtx context.Context) {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
	})

	logger.Info("Starting budget server", "port", cfg.Port, applog.FieldBackend, cfg.DataBackend, applog.FieldOperation, applog.OpStartup)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-done.Done()
	logger.Info("Server stopped gracefully")
}
