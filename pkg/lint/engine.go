package lint

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/pepfix/pkg/config"
	"github.com/yaklabco/pepfix/pkg/fix"
	"github.com/yaklabco/pepfix/pkg/pysrc"
)

// Correction is the outcome of applying one corrector pass.
type Correction struct {
	// Content is the corrected document content.
	Content []byte

	// Applied is the number of edits applied.
	Applied int

	// Skipped is the number of edits dropped as overlapping or by the
	// conservative fix policy.
	Skipped int
}

// Changed reports whether the correction altered the document.
func (c *Correction) Changed(original []byte) bool {
	return string(c.Content) != string(original)
}

// Engine runs a single detector or corrector against a document version and
// checks the results.
type Engine struct {
	// Config supplies severity overrides (may be nil).
	Config *config.Config

	// Policy selects batch or conservative edit application.
	Policy config.FixPolicy
}

// NewEngine creates an Engine from the resolved configuration.
func NewEngine(cfg *config.Config) *Engine {
	engine := &Engine{
		Config: cfg,
		Policy: config.FixPolicyBatch,
	}
	if cfg != nil && cfg.FixPolicy.IsValid() {
		engine.Policy = cfg.FixPolicy
	}
	return engine
}

// Context creates the rule context for one document version.
func (e *Engine) Context(ctx context.Context, doc *pysrc.Document) *RuleContext {
	return NewRuleContext(ctx, doc)
}

// Detect runs the rule's detector and stamps category identity, severity
// and path onto each diagnostic.
//
// Structural parse failures are returned as is. Any other detector error,
// or diagnostics that are out of range or out of order, are reported as
// ErrMalformedResult.
func (e *Engine) Detect(rc *RuleContext, rule Rule) ([]Diagnostic, error) {
	diags, err := rule.Detect(rc)
	if err != nil {
		if isStructural(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformedResult, err)
	}

	if err := validateDiagnostics(diags, rc.Doc.LineCount()); err != nil {
		return nil, err
	}

	severity := e.Config.SeverityFor(rule.ID(), rule.DefaultSeverity())
	for idx := range diags {
		diags[idx].RuleID = rule.ID()
		diags[idx].RuleName = rule.Name()
		diags[idx].Severity = severity
		if diags[idx].FilePath == "" {
			diags[idx].FilePath = rc.Doc.Path
		}
	}

	return diags, nil
}

// Correct runs the rule's corrector and applies the resulting edits to the
// document in one pass.
func (e *Engine) Correct(rc *RuleContext, rule Rule, diags []Diagnostic) (*Correction, error) {
	edits, err := rule.Correct(rc, diags)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrectionFailed, err)
	}

	content := rc.Doc.Content
	accepted, skipped, _, err := fix.PrepareEditsFiltered(edits, len(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrectionFailed, err)
	}

	if e.Policy == config.FixPolicyConservative {
		var dropped []fix.TextEdit
		accepted, dropped = fix.FirstPerLine(accepted, rc.Doc.LineAt)
		skipped = append(skipped, dropped...)
	}

	return &Correction{
		Content: fix.ApplyEdits(content, accepted),
		Applied: len(accepted),
		Skipped: len(skipped),
	}, nil
}

func isStructural(err error) bool {
	return errors.Is(err, ErrStructuralParse) || errors.Is(err, pysrc.ErrSyntax)
}

func validateDiagnostics(diags []Diagnostic, lineCount int) error {
	prev := 0
	for _, diag := range diags {
		if diag.Line < 1 || diag.Line > lineCount {
			return fmt.Errorf("%w: %s line %d outside 1..%d", ErrMalformedResult, diag.Code, diag.Line, lineCount)
		}
		if diag.Line < prev {
			return fmt.Errorf("%w: %s line %d after line %d", ErrMalformedResult, diag.Code, diag.Line, prev)
		}
		prev = diag.Line
	}
	return nil
}
