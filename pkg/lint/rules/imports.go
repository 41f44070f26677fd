package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/pepfix/pkg/config"
	"github.com/yaklabco/pepfix/pkg/fix"
	"github.com/yaklabco/pepfix/pkg/lint"
	"github.com/yaklabco/pepfix/pkg/pysrc"
)

// ImportPlacementRule reports imports that do not form a single block.
type ImportPlacementRule struct {
	lint.BaseRule

	patterns *Patterns
}

// NewImportPlacementRule creates the import-placement category.
func NewImportPlacementRule(patterns *Patterns) *ImportPlacementRule {
	rule := &ImportPlacementRule{patterns: patterns}
	rule.BaseRule = lint.NewBaseRule(
		"import-placement",
		"Import placement",
		"Imports outside functions and classes should form one contiguous block",
		[]string{"E400"},
		config.SeverityError,
		lint.TreeDetector(rule.check),
	)
	return rule
}

// placementCandidates returns the imports that are not inside a def or class.
func placementCandidates(mod *pysrc.Module) []*pysrc.Stmt {
	var candidates []*pysrc.Stmt
	for _, stmt := range mod.Imports() {
		if !stmt.InsideDefinition() {
			candidates = append(candidates, stmt)
		}
	}
	return candidates
}

// contiguous reports whether each statement starts on the line after the
// previous one ends.
func contiguous(stmts []*pysrc.Stmt) bool {
	for idx := 1; idx < len(stmts); idx++ {
		if stmts[idx].Line != stmts[idx-1].EndLine+1 {
			return false
		}
	}
	return true
}

func (r *ImportPlacementRule) check(_ *lint.RuleContext, mod *pysrc.Module) ([]lint.Diagnostic, error) {
	candidates := placementCandidates(mod)
	if contiguous(candidates) {
		return nil, nil
	}

	diags := make([]lint.Diagnostic, 0, len(candidates))
	for _, stmt := range candidates {
		construct := "module"
		if stmt.Parent != nil {
			construct = "nested"
		}
		diags = append(diags, lint.NewDiagnosticAt(r.ID(), "E400", stmt.Line, lint.NoColumn,
			"Import positioning").WithConstruct(construct).Build())
	}
	return diags, nil
}

// Correct moves the module-level imports to the top of the file, after any
// shebang, encoding declaration and module docstring. Imports nested in
// other statements stay where they are.
func (r *ImportPlacementRule) Correct(rc *lint.RuleContext, diags []lint.Diagnostic) ([]fix.TextEdit, error) {
	mod, err := rc.Module()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", lint.ErrStructuralParse, err)
	}

	reported := make(map[int]bool, len(diags))
	for _, diag := range diags {
		reported[diag.Line] = true
	}

	doc := rc.Doc
	newline := doc.Newline()
	builder := fix.NewEditBuilder()

	var block strings.Builder
	for _, stmt := range mod.Body {
		if !stmt.IsImport() || !reported[stmt.Line] {
			continue
		}
		first, _ := doc.Info(stmt.Line)
		last, _ := doc.Info(stmt.EndLine)
		builder.Delete(first.StartOffset, last.EndOffset)

		text := strings.TrimSpace(string(doc.Content[first.StartOffset:last.NewlineStart]))
		block.WriteString(text)
		block.WriteString(newline)
	}
	if block.Len() == 0 {
		return nil, nil
	}

	offset := r.insertionOffset(doc, mod)
	text := block.String()
	if offset == len(doc.Content) && !doc.HasFinalNewline() {
		text = newline + text
	}

	edits := make([]fix.TextEdit, 0, len(builder.Edits)+1)
	edits = append(edits, fix.TextEdit{StartOffset: offset, EndOffset: offset, NewText: text})
	edits = append(edits, builder.Edits...)
	return edits, nil
}

// insertionOffset returns where the import block belongs: after a leading
// shebang or encoding declaration and the module docstring.
func (r *ImportPlacementRule) insertionOffset(doc *pysrc.Document, mod *pysrc.Module) int {
	line := 1
	for line <= doc.LineCount() && line <= 2 {
		text := doc.Line(line)
		if (line == 1 && strings.HasPrefix(text, "#!")) || r.patterns.Encoding.MatchString(text) {
			line++
			continue
		}
		break
	}

	if len(mod.Body) > 0 && mod.Body[0].IsDocstring() && mod.Body[0].EndLine >= line {
		line = mod.Body[0].EndLine + 1
	}

	info, ok := doc.Info(line)
	if !ok {
		return len(doc.Content)
	}
	return info.StartOffset
}

// MultipleImportsRule reports import statements that name several modules.
type MultipleImportsRule struct {
	lint.BaseRule

	patterns *Patterns
}

// NewMultipleImportsRule creates the multiple-imports category.
func NewMultipleImportsRule(patterns *Patterns) *MultipleImportsRule {
	rule := &MultipleImportsRule{patterns: patterns}
	rule.BaseRule = lint.NewBaseRule(
		"multiple-imports",
		"Multiple imports",
		"Each module should be imported on its own line",
		[]string{"E401"},
		config.SeverityError,
		lint.LineDetector(rule.check),
	)
	return rule
}

// importNames returns the names of a combined import statement, or nil when
// the line is not one.
func (r *MultipleImportsRule) importNames(view pysrc.LineView) []string {
	if view.InString || view.Continuation {
		return nil
	}
	code := strings.TrimRight(view.Code, " \t")
	if strings.ContainsAny(code, ";\\()") || !r.patterns.MultipleImports.MatchString(code) {
		return nil
	}

	_, list, ok := strings.Cut(strings.TrimLeft(code, " \t\f"), "import")
	if !ok {
		return nil
	}
	parts := strings.Split(list, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	if len(names) < 2 {
		return nil
	}
	return names
}

func (r *MultipleImportsRule) check(_ *lint.RuleContext, view pysrc.LineView) []lint.Diagnostic {
	if r.importNames(view) == nil {
		return nil
	}
	indent := len(pysrc.LeadingWhitespace(view.Text))
	return []lint.Diagnostic{
		lint.NewDiagnosticAt(r.ID(), "E401", view.Number, indent, "Multiple imports on one line").Build(),
	}
}

// Correct replaces each combined import with one import per line. The new
// lines share the original indentation and terminator; a trailing comment
// stays on the first line.
func (r *MultipleImportsRule) Correct(rc *lint.RuleContext, diags []lint.Diagnostic) ([]fix.TextEdit, error) {
	doc := rc.Doc
	builder := fix.NewEditBuilder()

	for _, diag := range diags {
		view, ok := rc.View(diag.Line)
		if !ok {
			return nil, fmt.Errorf("%s: line %d out of range", diag.Code, diag.Line)
		}
		names := r.importNames(view)
		if names == nil {
			continue
		}

		indent := pysrc.LeadingWhitespace(view.Text)
		terminator := doc.Terminator(diag.Line)
		between := terminator
		if between == "" {
			between = doc.Newline()
		}

		comment := ""
		if view.CommentAt >= 0 {
			comment = "  " + view.Text[view.CommentAt:]
		}

		lines := make([]string, len(names))
		for idx, name := range names {
			lines[idx] = indent + "import " + name
		}
		lines[0] += comment

		info, _ := doc.Info(diag.Line)
		builder.ReplaceRange(info.StartOffset, info.EndOffset, strings.Join(lines, between)+terminator)
	}
	return builder.Edits, nil
}
