package rules

import (
	"strings"

	"github.com/yaklabco/pepfix/pkg/config"
	"github.com/yaklabco/pepfix/pkg/fix"
	"github.com/yaklabco/pepfix/pkg/lint"
	"github.com/yaklabco/pepfix/pkg/pysrc"
)

// TabsRule reports tab characters outside string literals.
type TabsRule struct {
	lint.BaseRule

	replacement string
}

// NewTabsRule creates the tabs category. Tabs are replaced with tabWidth spaces.
func NewTabsRule(tabWidth int) *TabsRule {
	if tabWidth <= 0 {
		tabWidth = config.DefaultTabWidth
	}
	rule := &TabsRule{replacement: strings.Repeat(" ", tabWidth)}
	rule.BaseRule = lint.NewBaseRule(
		"tabs",
		"Tab characters",
		"Indentation should use spaces, not tabs",
		[]string{"W191"},
		config.SeverityWarning,
		lint.LineDetector(rule.check),
	)
	return rule
}

func (r *TabsRule) check(_ *lint.RuleContext, view pysrc.LineView) []lint.Diagnostic {
	if view.IsComment() || !strings.Contains(view.Text, "\t") {
		return nil
	}

	var diags []lint.Diagnostic
	for col := 0; col < len(view.Text); col++ {
		if view.Text[col] != '\t' {
			continue
		}
		inCode := col < len(view.Code) && view.Code[col] == '\t'
		inComment := view.CommentAt >= 0 && col > view.CommentAt
		if !inCode && !inComment {
			continue
		}
		diags = append(diags,
			lint.NewDiagnosticAt(r.ID(), "W191", view.Number, col, "indentation contains tabs").Build())
	}
	return diags
}

// Correct replaces each reported tab with spaces.
func (r *TabsRule) Correct(rc *lint.RuleContext, diags []lint.Diagnostic) ([]fix.TextEdit, error) {
	edits := make([]fix.TextEdit, 0, len(diags))
	for _, diag := range diags {
		edit, err := replaceSpan(rc, diag.Line, diag.Column, diag.Column+1, r.replacement)
		if err != nil {
			return nil, err
		}
		edits = append(edits, edit)
	}
	return edits, nil
}
