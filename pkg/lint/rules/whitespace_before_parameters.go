package rules

import (
	"strings"

	"github.com/yaklabco/pepfix/pkg/config"
	"github.com/yaklabco/pepfix/pkg/fix"
	"github.com/yaklabco/pepfix/pkg/lint"
	"github.com/yaklabco/pepfix/pkg/pysrc"
)

// WhitespaceBeforeParametersRule reports whitespace between a callable name
// and its argument list.
type WhitespaceBeforeParametersRule struct {
	lint.BaseRule

	patterns *Patterns
}

// NewWhitespaceBeforeParametersRule creates the whitespace-before-parameters category.
func NewWhitespaceBeforeParametersRule(patterns *Patterns) *WhitespaceBeforeParametersRule {
	rule := &WhitespaceBeforeParametersRule{patterns: patterns}
	rule.BaseRule = lint.NewBaseRule(
		"whitespace-before-parameters",
		"Whitespace before parameters",
		"Avoid whitespace before the parenthesis that starts an argument list",
		[]string{"E211"},
		config.SeverityError,
		lint.LineDetector(rule.check),
	)
	return rule
}

func (r *WhitespaceBeforeParametersRule) check(_ *lint.RuleContext, view pysrc.LineView) []lint.Diagnostic {
	code := view.Code

	var diags []lint.Diagnostic
	for _, loc := range r.patterns.BeforeParameters.FindAllStringSubmatchIndex(code, -1) {
		word := code[loc[2]:loc[3]]
		if IsKeyword(word) {
			continue
		}
		if precededBy(code[:loc[2]], "class") {
			continue
		}
		diags = append(diags, lint.NewDiagnosticAt(r.ID(), "E211", view.Number, loc[3],
			"whitespace before '('").Build())
	}
	return diags
}

// precededBy reports whether the last word of before is keyword.
func precededBy(before, keyword string) bool {
	fields := strings.Fields(before)
	return len(fields) > 0 && fields[len(fields)-1] == keyword
}

// Correct deletes the whitespace between the name and the parenthesis.
func (r *WhitespaceBeforeParametersRule) Correct(rc *lint.RuleContext, diags []lint.Diagnostic) ([]fix.TextEdit, error) {
	edits := make([]fix.TextEdit, 0, len(diags))
	for _, diag := range diags {
		edit, err := collapseRun(rc, diag, "")
		if err != nil {
			return nil, err
		}
		edits = append(edits, edit)
	}
	return edits, nil
}
