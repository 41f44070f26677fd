package lint

import (
	"fmt"
	"strconv"

	"github.com/yaklabco/pepfix/pkg/config"
)

// NoColumn marks a diagnostic that is about a whole line or construct.
const NoColumn = -1

// Diagnostic represents a single style violation found in a document.
// A Diagnostic is only valid for the document version it was computed against.
type Diagnostic struct {
	// RuleID is the category that produced this diagnostic (e.g., "tabs").
	RuleID string

	// RuleName is the human-readable name of the category.
	RuleName string

	// Code is the pycodestyle violation code (e.g., "W291").
	Code string

	// Message is the human-readable description of the issue.
	Message string

	// Severity indicates the importance of the diagnostic.
	Severity config.Severity

	// FilePath is the path to the file containing the issue.
	FilePath string

	// Line is the 1-based line number.
	Line int

	// Column is the 0-based column, or NoColumn.
	Column int

	// Expected and Received carry counts for count-based checks such as
	// blank lines. Nil when not applicable.
	Expected *int
	Received *int

	// ForFunction names the def or class the diagnostic is about.
	ForFunction string

	// Construct describes the position within a multi-line construct.
	Construct string
}

// HasColumn reports whether the diagnostic carries a column.
func (d *Diagnostic) HasColumn() bool {
	return d.Column >= 0
}

// Position returns "line:col" (1-based column) or "line" when there is no column.
func (d *Diagnostic) Position() string {
	if !d.HasColumn() {
		return strconv.Itoa(d.Line)
	}
	return fmt.Sprintf("%d:%d", d.Line, d.Column+1)
}
