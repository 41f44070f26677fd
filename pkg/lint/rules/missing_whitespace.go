package rules

import (
	"fmt"

	"github.com/yaklabco/pepfix/pkg/config"
	"github.com/yaklabco/pepfix/pkg/fix"
	"github.com/yaklabco/pepfix/pkg/lint"
	"github.com/yaklabco/pepfix/pkg/pysrc"
)

// MissingWhitespaceRule reports separators that are not followed by whitespace.
type MissingWhitespaceRule struct {
	lint.BaseRule
}

// NewMissingWhitespaceRule creates the missing-whitespace category.
func NewMissingWhitespaceRule() *MissingWhitespaceRule {
	rule := &MissingWhitespaceRule{}
	rule.BaseRule = lint.NewBaseRule(
		"missing-whitespace",
		"Missing whitespace",
		"Commas, semicolons and colons should be followed by whitespace",
		[]string{"E231"},
		config.SeverityError,
		lint.LineDetector(rule.check),
	)
	return rule
}

func (r *MissingWhitespaceRule) check(_ *lint.RuleContext, view pysrc.LineView) []lint.Diagnostic {
	code := view.Code
	end := codeEnd(code)

	var diags []lint.Diagnostic
	var open []byte
	for col := 0; col < end; col++ {
		char := code[col]
		switch char {
		case '(', '[', '{':
			open = append(open, char)
			continue
		case ')', ']', '}':
			if len(open) > 0 {
				open = open[:len(open)-1]
			}
			continue
		case ',', ';', ':':
		default:
			continue
		}

		if col+1 >= end {
			continue
		}
		next := code[col+1]
		if isBlank(next) {
			continue
		}
		if char == ',' && (next == ')' || next == ']' || next == '}') {
			continue
		}
		if char == ':' {
			if next == '=' {
				continue
			}
			if len(open) > 0 && open[len(open)-1] == '[' {
				continue
			}
		}

		diags = append(diags, lint.NewDiagnosticAt(r.ID(), "E231", view.Number, col,
			fmt.Sprintf("missing whitespace after '%c'", char)).Build())
	}
	return diags
}

// Correct inserts a space after each reported separator.
func (r *MissingWhitespaceRule) Correct(rc *lint.RuleContext, diags []lint.Diagnostic) ([]fix.TextEdit, error) {
	builder := fix.NewEditBuilder()
	for _, diag := range diags {
		offset, ok := rc.Offset(diag.Line, diag.Column+1)
		if !ok {
			return nil, fmt.Errorf("%s at line %d: column %d out of range", diag.Code, diag.Line, diag.Column)
		}
		builder.Insert(offset, " ")
	}
	return builder.Edits, nil
}
