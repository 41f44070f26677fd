package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/pepfix/pkg/config"
	"github.com/yaklabco/pepfix/pkg/lint"
)

// sourceIndent aligns source context under the diagnostic line.
const sourceIndent = "        "

// FormatDiagnostic formats one diagnostic as
//
//	path:line:col  severity  CODE message  (rule)
//
// followed by detail and source context lines when present.
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, showContext bool, sourceLine string, ruleFormat config.RuleFormat) string {
	var builder strings.Builder

	location := s.FilePath.Render(diag.FilePath) + s.Location.Render(":"+diag.Position())

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.RuleID.Render("("+config.FormatRuleRef(ruleFormat, diag.Code, diag.RuleID)+")"),
	)

	if detail := diagnosticDetail(diag); detail != "" {
		builder.WriteString("    " + s.Detail.Render(detail) + "\n")
	}

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.Column))
	}

	return builder.String()
}

func diagnosticDetail(diag *lint.Diagnostic) string {
	var parts []string
	if diag.ForFunction != "" {
		parts = append(parts, "for "+diag.ForFunction)
	}
	if diag.Construct != "" {
		parts = append(parts, diag.Construct)
	}
	return strings.Join(parts, ", ")
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret under the
// 0-based column. A negative column prints the line alone.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	builder.WriteString(sourceIndent + s.SourceLine.Render(line) + "\n")
	if column >= 0 {
		builder.WriteString(sourceIndent + strings.Repeat(" ", column) + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

// FormatFileError formats a file that could not be processed.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("%s: %s\n", s.FilePath.Render(path), s.Error.Render("error: "+err.Error()))
}
