package configloader

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/cppdoc/pkg/config"
)

// ValidationError describes one invalid configuration value.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "autolink.base_url").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult collects validation findings.
type ValidationResult struct {
	// Errors prevent loading.
	Errors []ValidationError

	// Warnings are reported and otherwise ignored.
	Warnings []ValidationError
}

// Valid reports whether there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

//nolint:gochecknoglobals // read-only lookup tables
var (
	knownFlavors = []config.Flavor{config.FlavorCommonMark, config.FlavorGFM}
	knownFormats = []config.OutputFormat{
		config.FormatText, config.FormatTable, config.FormatJSON, config.FormatSummary,
	}
	indexExtensions = []string{".json", ".yml", ".yaml"}
)

// Validate checks a merged configuration.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Flavor != "" && !slices.Contains(knownFlavors, cfg.Flavor) {
		result.fail("flavor", cfg.Flavor, "invalid flavor %q; must be one of: %s", cfg.Flavor, joinValues(knownFlavors))
	}
	if cfg.Format != "" && !slices.Contains(knownFormats, cfg.Format) {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: %s", cfg.Format, joinValues(knownFormats))
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.Source == "" {
		result.fail("source", nil, "source directory must not be empty")
	}
	if cfg.Output == "" {
		result.fail("output", nil, "output directory must not be empty")
	}
	if cfg.Source != "" && filepath.Clean(cfg.Source) == filepath.Clean(cfg.Output) {
		result.fail("output", cfg.Output, "output directory must differ from the source directory")
	}
	if strings.ContainsAny(cfg.Codemo.TriggerTitle, "\"<>") {
		result.warn("codemo.trigger_title", cfg.Codemo.TriggerTitle, "trigger title contains markup characters; they will be escaped")
	}

	validateAutolink(cfg, result)

	for i, pattern := range cfg.Ignore {
		// filepath.Match only fails on malformed patterns.
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	return result
}

func validateAutolink(cfg *config.Config, result *ValidationResult) {
	index := cfg.Autolink.Index
	if !cfg.Autolink.IsEnabled() {
		if index != "" {
			result.warn("autolink.index", index, "autolink is disabled; the index will be ignored")
		}
		return
	}

	if strings.TrimSpace(cfg.Autolink.BaseURL) == "" {
		result.fail("autolink.base_url", nil, "base_url must not be empty when autolink is enabled")
	}
	if index != "" && !slices.Contains(indexExtensions, filepath.Ext(index)) {
		result.fail("autolink.index", index, "index must be a %s file", strings.Join(indexExtensions, ", "))
	}
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
