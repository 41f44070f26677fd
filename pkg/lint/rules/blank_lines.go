package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/pepfix/pkg/config"
	"github.com/yaklabco/pepfix/pkg/fix"
	"github.com/yaklabco/pepfix/pkg/lint"
	"github.com/yaklabco/pepfix/pkg/pysrc"
)

// Expected blank lines before definitions.
const (
	topLevelBlankLines = 2
	methodBlankLines   = 1
)

// BlankLinesRule reports definitions that are not preceded by the expected
// number of blank lines.
type BlankLinesRule struct {
	lint.BaseRule
}

// NewBlankLinesRule creates the blank-lines category.
func NewBlankLinesRule() *BlankLinesRule {
	rule := &BlankLinesRule{}
	rule.BaseRule = lint.NewBaseRule(
		"blank-lines",
		"Blank lines",
		"Top-level definitions need two blank lines before them, methods need one",
		[]string{"E301", "E302"},
		config.SeverityError,
		lint.TreeDetector(rule.check),
	)
	return rule
}

// spacedDefinition is a definition whose preceding blank lines are checked.
type spacedDefinition struct {
	stmt     *pysrc.Stmt
	expected int
	code     string
	kind     string
}

// spacedDefinitions returns the top-level definitions and the methods
// directly inside top-level classes.
func spacedDefinitions(mod *pysrc.Module) []spacedDefinition {
	var defs []spacedDefinition
	for _, stmt := range mod.Definitions() {
		defs = append(defs, spacedDefinition{
			stmt:     stmt,
			expected: topLevelBlankLines,
			code:     "E302",
			kind:     strings.ToLower(stmt.Kind.String()),
		})
		if stmt.Kind != pysrc.KindClass {
			continue
		}
		for _, child := range stmt.Children {
			if child.Kind == pysrc.KindDef {
				defs = append(defs, spacedDefinition{
					stmt:     child,
					expected: methodBlankLines,
					code:     "E301",
					kind:     "method",
				})
			}
		}
	}
	return defs
}

// anchor returns the first line that belongs to the definition: its first
// decorator, or the comment block directly above.
func anchor(rc *lint.RuleContext, stmt *pysrc.Stmt) int {
	line := stmt.FirstLine()
	for line > 1 {
		view, ok := rc.View(line - 1)
		if !ok || !view.IsComment() {
			break
		}
		line--
	}
	return line
}

// blankLinesAbove counts the blank lines directly above line. It also
// reports whether any non-blank line precedes them.
func blankLinesAbove(doc *pysrc.Document, line int) (int, bool) {
	count := 0
	for current := line - 1; current >= 1; current-- {
		if !doc.IsBlank(current) {
			return count, true
		}
		count++
	}
	return count, false
}

func (r *BlankLinesRule) check(rc *lint.RuleContext, mod *pysrc.Module) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	for _, def := range spacedDefinitions(mod) {
		received, preceded := blankLinesAbove(rc.Doc, anchor(rc, def.stmt))
		if !preceded || received == def.expected {
			continue
		}

		noun := "lines"
		if def.expected == 1 {
			noun = "line"
		}
		diags = append(diags, lint.NewDiagnosticAt(r.ID(), def.code, def.stmt.Line, lint.NoColumn,
			fmt.Sprintf("expected %d blank %s, found %d", def.expected, noun, received)).
			WithCounts(def.expected, received).
			WithFunction(def.stmt.Name).
			WithConstruct(def.kind).
			Build())
	}
	return diags, nil
}

// Correct inserts or deletes blank lines directly above each definition's
// anchor. All edits use the original coordinates.
func (r *BlankLinesRule) Correct(rc *lint.RuleContext, diags []lint.Diagnostic) ([]fix.TextEdit, error) {
	mod, err := rc.Module()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", lint.ErrStructuralParse, err)
	}

	byLine := make(map[int]*pysrc.Stmt)
	for _, def := range spacedDefinitions(mod) {
		byLine[def.stmt.Line] = def.stmt
	}

	doc := rc.Doc
	newline := doc.Newline()
	builder := fix.NewEditBuilder()

	for _, diag := range diags {
		stmt, ok := byLine[diag.Line]
		if !ok || diag.Expected == nil || diag.Received == nil {
			return nil, fmt.Errorf("%s at line %d: no definition", diag.Code, diag.Line)
		}

		line := anchor(rc, stmt)
		info, _ := doc.Info(line)
		diff := *diag.Expected - *diag.Received

		switch {
		case diff > 0:
			builder.Insert(info.StartOffset, strings.Repeat(newline, diff))
		case diff < 0:
			first, ok := doc.Info(line + diff)
			if !ok {
				return nil, fmt.Errorf("%s at line %d: cannot remove %d lines", diag.Code, diag.Line, -diff)
			}
			builder.Delete(first.StartOffset, info.StartOffset)
		}
	}
	return builder.Edits, nil
}
