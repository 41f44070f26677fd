package rules

import (
	"strings"

	"github.com/yaklabco/pepfix/pkg/config"
	"github.com/yaklabco/pepfix/pkg/fix"
	"github.com/yaklabco/pepfix/pkg/lint"
	"github.com/yaklabco/pepfix/pkg/pysrc"
)

// TrailingWhitespaceRule reports whitespace at the end of lines.
type TrailingWhitespaceRule struct {
	lint.BaseRule
}

// NewTrailingWhitespaceRule creates the trailing-whitespace category.
func NewTrailingWhitespaceRule() *TrailingWhitespaceRule {
	rule := &TrailingWhitespaceRule{}
	rule.BaseRule = lint.NewBaseRule(
		"trailing-whitespace",
		"Trailing whitespace",
		"Lines should not end with spaces, tabs, vertical tabs or form feeds",
		[]string{"W291", "W293"},
		config.SeverityWarning,
		lint.LineDetector(rule.check),
	)
	return rule
}

func (r *TrailingWhitespaceRule) check(_ *lint.RuleContext, view pysrc.LineView) []lint.Diagnostic {
	stripped := strings.TrimRight(view.Text, " \t\v\f")
	if stripped == view.Text {
		return nil
	}

	if stripped == "" {
		return []lint.Diagnostic{
			lint.NewDiagnosticAt(r.ID(), "W293", view.Number, 0, "whitespace on blank line").Build(),
		}
	}
	return []lint.Diagnostic{
		lint.NewDiagnosticAt(r.ID(), "W291", view.Number, len(stripped), "trailing whitespace").Build(),
	}
}

// Correct deletes everything from the reported column to the terminator.
func (r *TrailingWhitespaceRule) Correct(rc *lint.RuleContext, diags []lint.Diagnostic) ([]fix.TextEdit, error) {
	builder := fix.NewEditBuilder()
	for _, diag := range diags {
		edit, err := replaceSpan(rc, diag.Line, diag.Column, len(rc.Doc.Line(diag.Line)), "")
		if err != nil {
			return nil, err
		}
		builder.Delete(edit.StartOffset, edit.EndOffset)
	}
	return builder.Edits, nil
}
