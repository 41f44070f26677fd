package rules

import (
	"fmt"

	"github.com/yaklabco/pepfix/pkg/config"
	"github.com/yaklabco/pepfix/pkg/fix"
	"github.com/yaklabco/pepfix/pkg/lint"
	"github.com/yaklabco/pepfix/pkg/pysrc"
)

// ExtraneousWhitespaceRule reports whitespace just inside brackets and
// before separators.
type ExtraneousWhitespaceRule struct {
	lint.BaseRule

	patterns *Patterns
}

// NewExtraneousWhitespaceRule creates the extraneous-whitespace category.
func NewExtraneousWhitespaceRule(patterns *Patterns) *ExtraneousWhitespaceRule {
	rule := &ExtraneousWhitespaceRule{patterns: patterns}
	rule.BaseRule = lint.NewBaseRule(
		"extraneous-whitespace",
		"Extraneous whitespace",
		"Avoid whitespace after opening brackets and before closing brackets, commas, semicolons and colons",
		[]string{"E201", "E202", "E203"},
		config.SeverityError,
		lint.LineDetector(rule.check),
	)
	return rule
}

func (r *ExtraneousWhitespaceRule) check(_ *lint.RuleContext, view pysrc.LineView) []lint.Diagnostic {
	code := view.Code
	end := codeEnd(code)

	var diags []lint.Diagnostic
	for _, loc := range r.patterns.Extraneous.FindAllStringIndex(code, -1) {
		first, second := code[loc[0]], code[loc[0]+1]

		if isBlank(second) {
			// Opening bracket followed by whitespace. Whitespace running to
			// the end of the code belongs to a continuation.
			if runEnd(code, loc[0]+1) >= end {
				continue
			}
			diags = append(diags, lint.NewDiagnosticAt(r.ID(), "E201", view.Number, loc[0]+1,
				fmt.Sprintf("whitespace after '%c'", first)).Build())
			continue
		}

		start := runStart(code, loc[0]+1)
		if onlyBlanks(code, start) {
			continue
		}
		if code[start-1] == ',' {
			continue
		}
		if second == ':' && loc[1] < len(code) && code[loc[1]] == '=' {
			continue
		}

		errCode := "E203"
		if second == ')' || second == ']' || second == '}' {
			errCode = "E202"
		}
		diags = append(diags, lint.NewDiagnosticAt(r.ID(), errCode, view.Number, start,
			fmt.Sprintf("whitespace before '%c'", second)).Build())
	}
	return diags
}

// Correct deletes each reported whitespace run.
func (r *ExtraneousWhitespaceRule) Correct(rc *lint.RuleContext, diags []lint.Diagnostic) ([]fix.TextEdit, error) {
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
