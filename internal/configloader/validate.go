package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/pepfix/pkg/config"
	"github.com/yaklabco/pepfix/pkg/fsutil"
	"github.com/yaklabco/pepfix/pkg/lint"
)

// Bounds for numeric settings.
const (
	minTabWidth = 1
	maxTabWidth = 16
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "severity.tabs").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown rule categories).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration against the catalogue's categories.
// catalogue may be nil, in which case severity keys are not checked.
func Validate(cfg *config.Config, catalogue *lint.Catalogue) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.MaxPasses < 1 {
		result.fail("max_passes", cfg.MaxPasses, "must be >= 1")
	}
	if cfg.TabWidth < minTabWidth || cfg.TabWidth > maxTabWidth {
		result.fail("tab_width", cfg.TabWidth, "must be between %d and %d", minTabWidth, maxTabWidth)
	}
	if !cfg.FixPolicy.IsValid() {
		result.fail("fix_policy", cfg.FixPolicy, "invalid fix policy %q; must be one of: batch, conservative", cfg.FixPolicy)
	}

	switch fsutil.BackupMode(cfg.Backups.Mode) {
	case "", fsutil.BackupModeSidecar, fsutil.BackupModeCopy, fsutil.BackupModeNone:
	default:
		result.fail("backups.mode", cfg.Backups.Mode,
			"invalid backup mode %q; must be one of: sidecar, copy, none", cfg.Backups.Mode)
	}

	switch cfg.Format {
	case "", config.FormatText, config.FormatJSON, config.FormatDiff:
	default:
		result.fail("format", cfg.Format, "invalid format %q; must be one of: text, json, diff", cfg.Format)
	}

	switch cfg.RuleFormat {
	case "", config.RuleFormatCode, config.RuleFormatName, config.RuleFormatCombined:
	default:
		result.fail("rule_format", cfg.RuleFormat,
			"invalid rule format %q; must be one of: code, name, combined", cfg.RuleFormat)
	}

	for ruleID, sev := range cfg.Severity {
		if !sev.IsValid() {
			result.fail("severity."+ruleID, sev, "invalid severity %q; must be one of: error, warning, info", sev)
		}
		if catalogue != nil {
			if _, ok := catalogue.Lookup(ruleID); !ok {
				result.warn("severity."+ruleID, ruleID, "unknown rule %q; it will be ignored", ruleID)
			}
		}
	}

	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern %q", pattern)
		}
	}

	return result
}
