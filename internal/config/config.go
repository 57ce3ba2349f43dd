package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Backend selection: "memory" or "sheets"
	DataBackend string

	// Google Sheets
	GoogleSpreadsheetID      string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string

	// Worksheet names
	CategoriesTable string
	ExpensesTable   string

	// Chart cache
	ChartCacheTTL time.Duration
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8081"),
		DataBackend: getEnv("DATA_BACKEND", "memory"),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),

		CategoriesTable: getEnv("CATEGORIES_TABLE", "categories"),
		ExpensesTable:   getEnv("EXPENSES_TABLE", "expenses"),

		ChartCacheTTL: getEnvDuration("CHART_CACHE_TTL", 5*time.Minute),
	}
}

// Validate checks the configuration and returns one error listing every
// problem found.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "memory", "sheets":
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [memory sheets]", c.DataBackend))
	}

	if c.DataBackend == "sheets" {
		if c.GoogleSpreadsheetID == "" {
			errs = append(errs, "Google Spreadsheet ID is required when using sheets backend")
		}
		hasJSON := c.GoogleServiceAccountJSON != ""
		hasFile := c.GoogleServiceAccountFile != "" || os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != ""
		if !hasJSON && !hasFile {
			errs = append(errs, "either GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS must be provided for sheets backend")
		}
		if c.GoogleServiceAccountFile != "" {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errs = append(errs, fmt.Sprintf("service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	}

	if c.CategoriesTable == "" {
		errs = append(errs, "categories table name cannot be empty")
	}
	if c.ExpensesTable == "" {
		errs = append(errs, "expenses table name cannot be empty")
	}
	if c.CategoriesTable != "" && c.CategoriesTable == c.ExpensesTable {
		errs = append(errs, "categories and expenses tables must be distinct")
	}

	if c.ChartCacheTTL < 0 {
		errs = append(errs, fmt.Sprintf("invalid chart cache TTL %v: must not be negative", c.ChartCacheTTL))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
