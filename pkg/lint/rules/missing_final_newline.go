package rules

import (
	"github.com/yaklabco/pepfix/pkg/config"
	"github.com/yaklabco/pepfix/pkg/fix"
	"github.com/yaklabco/pepfix/pkg/lint"
	"github.com/yaklabco/pepfix/pkg/pysrc"
)

// MissingFinalNewlineRule reports a last line without a terminator.
type MissingFinalNewlineRule struct {
	lint.BaseRule
}

// NewMissingFinalNewlineRule creates the missing-final-newline category.
func NewMissingFinalNewlineRule() *MissingFinalNewlineRule {
	rule := &MissingFinalNewlineRule{}
	rule.BaseRule = lint.NewBaseRule(
		"missing-final-newline",
		"Missing final newline",
		"Files should end with a newline",
		[]string{"W292"},
		config.SeverityWarning,
		lint.LineDetector(rule.check),
	).SingleShot()
	return rule
}

func (r *MissingFinalNewlineRule) check(rc *lint.RuleContext, view pysrc.LineView) []lint.Diagnostic {
	if view.Number != rc.Doc.LineCount() || rc.Doc.HasFinalNewline() {
		return nil
	}
	return []lint.Diagnostic{
		lint.NewDiagnosticAt(r.ID(), "W292", view.Number, len(view.Text), "no newline at end of file").Build(),
	}
}

// Correct appends the document's line terminator.
func (r *MissingFinalNewlineRule) Correct(rc *lint.RuleContext, diags []lint.Diagnostic) ([]fix.TextEdit, error) {
	if len(diags) == 0 {
		return nil, nil
	}
	end := len(rc.Doc.Content)
	return []fix.TextEdit{{StartOffset: end, EndOffset: end, NewText: rc.Doc.Newline()}}, nil
}
