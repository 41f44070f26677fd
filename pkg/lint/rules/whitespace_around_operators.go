package rules

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/pepfix/pkg/config"
	"github.com/yaklabco/pepfix/pkg/fix"
	"github.com/yaklabco/pepfix/pkg/lint"
	"github.com/yaklabco/pepfix/pkg/pysrc"
)

// Sides of an operator that lack whitespace, recorded in Diagnostic.Construct.
const (
	sideBefore = "before"
	sideAfter  = "after"
	sideBoth   = "around"
)

// spacedOperators must have whitespace on both sides in strict mode,
// longest first. "=" only counts at bracket depth zero.
//
//nolint:gochecknoglobals // read-only lookup table
var spacedOperators = []string{
	"**=", "//=", ">>=", "<<=",
	"==", "!=", "<=", ">=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "@=", "->", ":=",
	"<", ">", "=",
}

// WhitespaceAroundOperatorsRule reports irregular spacing around operators.
type WhitespaceAroundOperatorsRule struct {
	lint.BaseRule

	patterns *Patterns
	strict   bool
}

// NewWhitespaceAroundOperatorsRule creates the whitespace-around-operators
// category. When strict is set, missing whitespace is reported as well.
func NewWhitespaceAroundOperatorsRule(patterns *Patterns, strict bool) *WhitespaceAroundOperatorsRule {
	rule := &WhitespaceAroundOperatorsRule{patterns: patterns, strict: strict}
	codes := []string{"E221", "E222"}
	if strict {
		codes = append(codes, "E225")
	}
	rule.BaseRule = lint.NewBaseRule(
		"whitespace-around-operators",
		"Whitespace around operators",
		"Operators should be surrounded by a single space",
		codes,
		config.SeverityError,
		lint.LineDetector(rule.check),
	)
	return rule
}

func (r *WhitespaceAroundOperatorsRule) check(_ *lint.RuleContext, view pysrc.LineView) []lint.Diagnostic {
	code := view.Code
	end := codeEnd(code)

	var diags []lint.Diagnostic
	for _, loc := range r.patterns.OperatorSpacing.FindAllStringSubmatchIndex(code, -1) {
		if loc[3]-loc[2] > 1 {
			diags = append(diags, lint.NewDiagnosticAt(r.ID(), "E221", view.Number, loc[2],
				"multiple spaces before operator").Build())
		}
		if loc[5]-loc[4] > 1 && loc[5] < end {
			diags = append(diags, lint.NewDiagnosticAt(r.ID(), "E222", view.Number, loc[4],
				"multiple spaces after operator").Build())
		}
	}

	if r.strict {
		diags = append(diags, r.checkMissing(view)...)
	}

	slices.SortStableFunc(diags, func(a, b lint.Diagnostic) int {
		return cmp.Compare(a.Column, b.Column)
	})
	return diags
}

func (r *WhitespaceAroundOperatorsRule) checkMissing(view pysrc.LineView) []lint.Diagnostic {
	code := view.Code
	end := codeEnd(code)
	depth := view.Depth

	var diags []lint.Diagnostic
	for col := 0; col < end; {
		switch code[col] {
		case '(', '[', '{':
			depth++
			col++
			continue
		case ')', ']', '}':
			depth = max(depth-1, 0)
			col++
			continue
		}

		run := operatorRun(code[:end], col)
		if run == 0 {
			col++
			continue
		}

		op := spacedOperator(code[col : col+run])
		if op == "" || (op == "=" && depth > 0) {
			col += run
			continue
		}

		before := !onlyBlanks(code, col) && !isBlank(code[col-1])
		after := col+len(op) < end && !isBlank(code[col+len(op)])

		var side string
		switch {
		case before && after:
			side = sideBoth
		case before:
			side = sideBefore
		case after:
			side = sideAfter
		}
		if side != "" {
			diags = append(diags, lint.NewDiagnosticAt(r.ID(), "E225", view.Number, col,
				"missing whitespace around operator").WithConstruct(side).Build())
		}
		col += run
	}
	return diags
}

// operatorRun returns the length of the run of operator characters at col.
// A colon only belongs to a run as part of ":=".
func operatorRun(code string, col int) int {
	end := col
	for end < len(code) {
		char := code[end]
		if char == ':' && end+1 < len(code) && code[end+1] == '=' {
			end += 2
			continue
		}
		if !strings.ContainsRune("=<>!+-*/%&|^@~", rune(char)) {
			break
		}
		end++
	}
	return end - col
}

// spacedOperator returns the operator a run starts with when the run is a
// spaced operator, optionally followed by a unary sign.
func spacedOperator(run string) string {
	for _, op := range spacedOperators {
		if run == op {
			return op
		}
	}
	if len(run) > 1 && strings.ContainsRune("-+~", rune(run[len(run)-1])) {
		head := run[:len(run)-1]
		for _, op := range spacedOperators {
			if head == op {
				return op
			}
		}
	}
	return ""
}

// Correct collapses runs of spaces to one and inserts missing spaces.
func (r *WhitespaceAroundOperatorsRule) Correct(rc *lint.RuleContext, diags []lint.Diagnostic) ([]fix.TextEdit, error) {
	builder := fix.NewEditBuilder()
	for _, diag := range diags {
		if diag.Code != "E225" {
			edit, err := collapseRun(rc, diag, " ")
			if err != nil {
				return nil, err
			}
			builder.ReplaceRange(edit.StartOffset, edit.EndOffset, edit.NewText)
			continue
		}

		view, ok := rc.View(diag.Line)
		if !ok || diag.Column >= len(view.Code) {
			return nil, fmt.Errorf("%s at line %d: column %d out of range", diag.Code, diag.Line, diag.Column)
		}
		op := spacedOperator(view.Code[diag.Column : diag.Column+operatorRun(view.Code, diag.Column)])
		if op == "" {
			return nil, fmt.Errorf("%s at line %d: no operator at column %d", diag.Code, diag.Line, diag.Column)
		}

		start, _ := rc.Offset(diag.Line, diag.Column)
		if diag.Construct == sideBefore || diag.Construct == sideBoth {
			builder.Insert(start, " ")
		}
		if diag.Construct == sideAfter || diag.Construct == sideBoth {
			builder.Insert(start+len(op), " ")
		}
	}
	return builder.Edits, nil
}
