package config

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/drew/empdash/internal/dashboard"
	"github.com/drew/empdash/internal/dataset"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationResult holds the results of config validation
type ValidationResult struct {
	Valid    bool
	Errors   []ValidationError
	Warnings []ValidationError
}

func newResult() *ValidationResult {
	return &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}
}

func (r *ValidationResult) fail(field, format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field, format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// ValidateConfig validates an already-loaded config
func ValidateConfig(cfg *Config) (*ValidationResult, error) {
	result := newResult()

	if cfg == nil {
		return result, nil
	}

	validateDashboard(&cfg.Dashboard, result)
	validateServer(&cfg.Server, result)
	validateExport(&cfg.Export, result)
	validateLog(&cfg.Log, result)

	return result, nil
}

// ValidateConfigFile validates a TOML config file
func ValidateConfigFile(path string) (*ValidationResult, error) {
	result := newResult()

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	// Try to parse as TOML first
	var cfg Config
	metadata, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		result.fail("", "Invalid TOML syntax: %v", err)
		return result, nil
	}

	// Check for unknown fields
	for _, key := range metadata.Undecoded() {
		result.fail(key.String(), "Unknown configuration field")
	}

	validateDashboard(&cfg.Dashboard, result)
	validateServer(&cfg.Server, result)
	validateExport(&cfg.Export, result)
	validateLog(&cfg.Log, result)

	return result, nil
}

// validateDashboard validates the dashboard section
func validateDashboard(d *DashboardConfig, result *ValidationResult) {
	if d.UIMode != "" {
		validModes := []string{"basic", "full"}
		if !slices.Contains(validModes, d.UIMode) {
			result.fail("dashboard.uiMode", "Invalid UI mode '%s'. Valid options: %s", d.UIMode, strings.Join(validModes, ", "))
		}
	}

	if d.MinSalary != nil && *d.MinSalary < 0 {
		result.fail("dashboard.minSalary", "Minimum salary must be non-negative")
	}

	if d.BonusRate != nil && (*d.BonusRate < 0 || *d.BonusRate > 1) {
		result.fail("dashboard.bonusRate", "Bonus rate must be between 0 and 1")
	}

	known := dataset.Departments(dataset.Sample())
	for _, sel := range d.Departments {
		if !doublestar.ValidatePattern(sel) {
			result.fail("dashboard.departments", "Invalid department pattern '%s'", sel)
			continue
		}
		matched := slices.ContainsFunc(known, func(dept string) bool {
			ok, _ := doublestar.Match(sel, dept)
			return ok
		})
		if !matched {
			result.warn("dashboard.departments", "'%s' matches no department. Known: %s", sel, strings.Join(known, ", "))
		}
	}
}

// validateServer validates the server section
func validateServer(s *ServerConfig, result *ValidationResult) {
	if s.ReadHeaderTimeoutMs < 0 {
		result.fail("server.readHeaderTimeoutMs", "Read header timeout must be non-negative")
	}
	if s.ShutdownTimeoutMs < 0 {
		result.fail("server.shutdownTimeoutMs", "Shutdown timeout must be non-negative")
	}
}

// validateExport validates the export section
func validateExport(e *ExportConfig, result *ValidationResult) {
	if e.FileName == "" {
		return
	}
	if strings.ContainsAny(e.FileName, `/\`) {
		result.fail("export.fileName", "File name must not contain a path separator")
	}
	if dashboard.ReservedName(e.FileName) {
		result.fail("export.fileName", "File name '%s' is reserved for report output", e.FileName)
	}
	if !strings.HasSuffix(strings.ToLower(e.FileName), ".csv") {
		result.warn("export.fileName", "File name '%s' does not end in .csv", e.FileName)
	}
}

// validateLog validates the log section
func validateLog(l *LogConfig, result *ValidationResult) {
	if l.Level != "" {
		validLevels := []string{"debug", "info", "warn", "error"}
		if !slices.Contains(validLevels, l.Level) {
			result.fail("log.level", "Invalid log level '%s'. Valid options: %s", l.Level, strings.Join(validLevels, ", "))
		}
	}
	if l.Format != "" {
		validFormats := []string{"json", "text"}
		if !slices.Contains(validFormats, l.Format) {
			result.fail("log.format", "Invalid log format '%s'. Valid options: %s", l.Format, strings.Join(validFormats, ", "))
		}
	}
}

// PrintValidationResult prints the validation result in a human-readable format
func PrintValidationResult(w io.Writer, path string, result *ValidationResult) {
	fmt.Fprintln(w, strings.Repeat("━", 80))
	fmt.Fprintf(w, "📋 Validating: %s\n", path)

	if result.Valid && len(result.Warnings) == 0 {
		fmt.Fprintln(w, "✅ Configuration is valid!")
		fmt.Fprintln(w)
		return
	}

	if len(result.Errors) > 0 {
		fmt.Fprintf(w, "\n❌ Found %d error(s):\n", len(result.Errors))
		printIssues(w, result.Errors)
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintf(w, "⚠️  Found %d warning(s):\n", len(result.Warnings))
		printIssues(w, result.Warnings)
	}

	if !result.Valid {
		fmt.Fprintln(w, "❌ Configuration is INVALID")
	} else {
		fmt.Fprintln(w, "✅ Configuration is valid (with warnings)")
	}
	fmt.Fprintln(w)
}

func printIssues(w io.Writer, issues []ValidationError) {
	for _, issue := range issues {
		if issue.Field != "" {
			fmt.Fprintf(w, "  • [%s] %s\n", issue.Field, issue.Message)
		} else {
			fmt.Fprintf(w, "  • %s\n", issue.Message)
		}
	}
	fmt.Fprintln(w)
}
