// Package lint provides the rule engine, diagnostics, catalogue and the
// convergence pipeline for pepfix.
package lint

import (
	"fmt"
	"slices"

	"github.com/yaklabco/pepfix/pkg/config"
	"github.com/yaklabco/pepfix/pkg/fix"
	"github.com/yaklabco/pepfix/pkg/pysrc"
)

// Rule defines a single style category: its detector and its corrector.
type Rule interface {
	// ID returns the category identifier (e.g., "trailing-whitespace").
	ID() string

	// Name returns the human-readable name of the category.
	Name() string

	// Description returns a detailed description of what the rule checks.
	Description() string

	// Codes returns the violation codes the rule emits.
	Codes() []string

	// DefaultSeverity returns the severity used when none is configured.
	DefaultSeverity() config.Severity

	// RerunUntilClean reports whether the pipeline alternates detection and
	// correction until the category is clean. When false, a single
	// correction pass is made.
	RerunUntilClean() bool

	// Detect returns the violations in the context's document, in
	// non-decreasing line order. An error is returned only for internal or
	// structural failures, never for violations.
	Detect(rc *RuleContext) ([]Diagnostic, error)

	// Correct returns edits against the byte offsets of rc.Doc that fix the
	// given diagnostics. Edits may overlap; overlapping ones are dropped and
	// left to the next pass.
	Correct(rc *RuleContext, diags []Diagnostic) ([]fix.TextEdit, error)
}

// Detector is the detection half of a Rule.
type Detector interface {
	Detect(rc *RuleContext) ([]Diagnostic, error)
}

// LineDetector checks one physical line at a time.
type LineDetector func(rc *RuleContext, view pysrc.LineView) []Diagnostic

// Detect runs the line check over every line of the document.
func (f LineDetector) Detect(rc *RuleContext) ([]Diagnostic, error) {
	var diags []Diagnostic
	for _, view := range rc.Views() {
		if rc.Cancelled() {
			return nil, fmt.Errorf("detection cancelled: %w", rc.Ctx.Err())
		}
		diags = append(diags, f(rc, view)...)
	}
	return diags, nil
}

// TreeDetector checks the statement tree of the document.
type TreeDetector func(rc *RuleContext, mod *pysrc.Module) ([]Diagnostic, error)

// Detect parses the document and runs the tree check. A parse failure is
// reported as ErrStructuralParse. Results are sorted by line.
func (f TreeDetector) Detect(rc *RuleContext) ([]Diagnostic, error) {
	mod, err := rc.Module()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStructuralParse, err)
	}

	diags, err := f(rc, mod)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		return a.Line - b.Line
	})
	return diags, nil
}
