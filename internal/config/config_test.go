package config

import (
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid memory backend config",
			config: Config{
				Port:            "8081",
				DataBackend:     "memory",
				CategoriesTable: "categories",
				ExpensesTable:   "expenses",
				ChartCacheTTL:   5 * time.Minute,
			},
			wantErr: false,
		},
		{
			name: "valid sheets backend config",
			config: Config{
				Port:                     "8081",
				DataBackend:              "sheets",
				GoogleSpreadsheetID:      "sheet-id",
				GoogleServiceAccountJSON: `{"type":"service_account"}`,
				CategoriesTable:          "categories",
				ExpensesTable:            "expenses",
			},
			wantErr: false,
		},
		{
			name: "invalid port - non-numeric",
			config: Config{
				Port:            "abc",
				DataBackend:     "memory",
				CategoriesTable: "categories",
				ExpensesTable:   "expenses",
			},
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name: "invalid port - out of range",
			config: Config{
				Port:            "70000",
				DataBackend:     "memory",
				CategoriesTable: "categories",
				ExpensesTable:   "expenses",
			},
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name: "invalid data backend",
			config: Config{
				Port:            "8080",
				DataBackend:     "postgres",
				CategoriesTable: "categories",
				ExpensesTable:   "expenses",
			},
			wantErr:     true,
			errorString: "invalid data backend 'postgres'",
		},
		{
			name: "sheets backend missing spreadsheet id",
			config: Config{
				Port:                     "8080",
				DataBackend:              "sheets",
				GoogleServiceAccountJSON: `{}`,
				CategoriesTable:          "categories",
				ExpensesTable:            "expenses",
			},
			wantErr:     true,
			errorString: "Google Spreadsheet ID is required",
		},
		{
			name: "sheets backend missing credentials",
			config: Config{
				Port:                "8080",
				DataBackend:         "sheets",
				GoogleSpreadsheetID: "sheet-id",
				CategoriesTable:     "categories",
				ExpensesTable:       "expenses",
			},
			wantErr:     true,
			errorString: "GOOGLE_SERVICE_ACCOUNT_JSON",
		},
		{
			name: "colliding table names",
			config: Config{
				Port:            "8080",
				DataBackend:     "memory",
				CategoriesTable: "data",
				ExpensesTable:   "data",
			},
			wantErr:     true,
			errorString: "must be distinct",
		},
		{
			name: "negative chart cache ttl",
			config: Config{
				Port:            "8080",
				DataBackend:     "memory",
				CategoriesTable: "categories",
				ExpensesTable:   "expenses",
				ChartCacheTTL:   -time.Second,
			},
			wantErr:     true,
			errorString: "chart cache TTL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DATA_BACKEND", "CATEGORIES_TABLE", "EXPENSES_TABLE", "CHART_CACHE_TTL"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Port != "8081" {
		t.Errorf("default port = %q", cfg.Port)
	}
	if cfg.DataBackend != "memory" {
		t.Errorf("default backend = %q", cfg.DataBackend)
	}
	if cfg.CategoriesTable != "categories" || cfg.ExpensesTable != "expenses" {
		t.Errorf("default tables = %q/%q", cfg.CategoriesTable, cfg.ExpensesTable)
	}
	if cfg.ChartCacheTTL != 5*time.Minute {
		t.Errorf("default chart cache TTL = %v", cfg.ChartCacheTTL)
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "90s")
	if d := getEnvDuration("TEST_DURATION", time.Minute); d != 90*time.Second {
		t.Errorf("getEnvDuration = %v", d)
	}
	t.Setenv("TEST_DURATION", "not-a-duration")
	if d := getEnvDuration("TEST_DURATION", time.Minute); d != time.Minute {
		t.Errorf("fallback = %v", d)
	}
}
