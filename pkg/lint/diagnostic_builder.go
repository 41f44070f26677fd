package lint

import "github.com/yaklabco/pepfix/pkg/config"

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnosticAt starts building a diagnostic at a line and 0-based column.
// Pass NoColumn for line-level diagnostics.
func NewDiagnosticAt(ruleID, code string, line, column int, message string) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		diag: Diagnostic{
			RuleID:  ruleID,
			Code:    code,
			Message: message,
			Line:    line,
			Column:  column,
		},
	}
}

// WithSeverity sets the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithCounts sets the expected and received counts.
func (b *DiagnosticBuilder) WithCounts(expected, received int) *DiagnosticBuilder {
	b.diag.Expected = &expected
	b.diag.Received = &received
	return b
}

// WithFunction sets the name of the def or class the diagnostic is about.
func (b *DiagnosticBuilder) WithFunction(name string) *DiagnosticBuilder {
	b.diag.ForFunction = name
	return b
}

// WithConstruct sets the position-within-construct context.
func (b *DiagnosticBuilder) WithConstruct(construct string) *DiagnosticBuilder {
	b.diag.Construct = construct
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
