package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// BudgetFile is one named budget workbook shown as a tab in the
// Presupuesto view. Its DATA sheet feeds the summarizer.
type BudgetFile struct {
	Title string
	File  string
}

type Config struct {
	// HTTP Server
	Port string

	// Data backend selection: "excel" (local xlsx) or "sheets"
	// (Google Sheets).
	DataBackend string

	// Input workbooks
	DataDir     string
	InvoiceFile string
	BudgetFiles []BudgetFile

	// Google Sheets backend
	GoogleSpreadsheetID string
}

func defaultBudgetFiles() []BudgetFile {
	return []BudgetFile{
		{Title: "Jefatura Astillero", File: "Jefatura Astillero.xlsx"},
		{Title: "Maniobras", File: "Maniobras.xlsx"},
		{Title: "Varadero", File: "Varadero.xlsx"},
	}
}

func Load() *Config {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DataBackend: getEnv("DATA_BACKEND", "excel"),

		DataDir:     getEnv("DATA_DIR", "./data"),
		InvoiceFile: getEnv("INVOICE_FILE", "bd faturacion.xlsx"),
		BudgetFiles: parseBudgetFiles(os.Getenv("BUDGET_FILES")),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
	}
	return cfg
}

// parseBudgetFiles reads a comma-separated list of "Title=file.xlsx"
// entries (a bare file name takes its base name as title). An empty
// value keeps the three standard workbooks.
func parseBudgetFiles(raw string) []BudgetFile {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultBudgetFiles()
	}
	var out []BudgetFile
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if title, file, ok := strings.Cut(part, "="); ok {
			out = append(out, BudgetFile{Title: strings.TrimSpace(title), File: strings.TrimSpace(file)})
			continue
		}
		title := strings.TrimSuffix(filepath.Base(part), filepath.Ext(part))
		out = append(out, BudgetFile{Title: title, File: part})
	}
	if len(out) == 0 {
		return defaultBudgetFiles()
	}
	return out
}

// InvoicePath returns the invoice workbook path under the data dir.
func (c *Config) InvoicePath() string {
	return filepath.Join(c.DataDir, c.InvoiceFile)
}

// BudgetPath returns a budget workbook path under the data dir.
func (c *Config) BudgetPath(f BudgetFile) string {
	return filepath.Join(c.DataDir, f.File)
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "excel", "sheets":
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [excel sheets]", c.DataBackend))
	}

	if strings.TrimSpace(c.InvoiceFile) == "" {
		errs = append(errs, "invoice file cannot be empty")
	}
	if len(c.BudgetFiles) == 0 {
		errs = append(errs, "at least one budget file is required")
	}
	seen := make(map[string]bool)
	for _, f := range c.BudgetFiles {
		if strings.TrimSpace(f.Title) == "" || strings.TrimSpace(f.File) == "" {
			errs = append(errs, fmt.Sprintf("budget file entry '%s=%s' must have both title and file", f.Title, f.File))
		}
		if seen[f.Title] {
			errs = append(errs, fmt.Sprintf("duplicate budget file title '%s'", f.Title))
		}
		seen[f.Title] = true
	}

	if c.DataBackend == "sheets" && c.GoogleSpreadsheetID == "" {
		errs = append(errs, "GOOGLE_SPREADSHEET_ID is required when using the sheets backend")
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
