package lint

import (
	"context"

	"github.com/yaklabco/pepfix/pkg/config"
	"github.com/yaklabco/pepfix/pkg/pysrc"
)

// Options tunes rule behavior. Rules receive them at construction; the
// catalogue itself is fixed.
type Options struct {
	// TabWidth is the number of spaces a tab is replaced with.
	TabWidth int

	// StrictOperators enables missing-whitespace-around-operator checks.
	StrictOperators bool
}

// DefaultOptions returns the built-in rule options.
func DefaultOptions() Options {
	return Options{TabWidth: config.DefaultTabWidth}
}

// OptionsFromConfig extracts rule options from a config.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	if cfg == nil {
		return opts
	}
	if cfg.TabWidth > 0 {
		opts.TabWidth = cfg.TabWidth
	}
	opts.StrictOperators = cfg.StrictOperators
	return opts
}

// RuleContext provides everything a rule needs to inspect one document
// version. It is created per detect/correct pair and discarded afterwards.
//
// RuleContext stores context.Context as a field because it is a short-lived
// parameter object; Cancelled exposes it to rules.
type RuleContext struct {
	// Ctx is the context for cancellation.
	Ctx context.Context

	// Doc is the document being inspected.
	Doc *pysrc.Document

	views    []pysrc.LineView
	module   *pysrc.Module
	parseErr error
	parsed   bool
}

// NewRuleContext creates a RuleContext for the document.
func NewRuleContext(ctx context.Context, doc *pysrc.Document) *RuleContext {
	return &RuleContext{
		Ctx: ctx,
		Doc: doc,
	}
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// Views returns the lexical line views, scanning lazily.
func (rc *RuleContext) Views() []pysrc.LineView {
	if rc.views == nil {
		rc.views = pysrc.Scan(rc.Doc)
	}
	return rc.views
}

// View returns the view of a 1-based line.
func (rc *RuleContext) View(line int) (pysrc.LineView, bool) {
	views := rc.Views()
	if line < 1 || line > len(views) {
		return pysrc.LineView{}, false
	}
	return views[line-1], true
}

// Module returns the statement tree, parsing lazily. The parse result,
// including a failure, is cached for the lifetime of the context.
func (rc *RuleContext) Module() (*pysrc.Module, error) {
	if !rc.parsed {
		rc.module, rc.parseErr = pysrc.Parse(rc.Doc)
		rc.parsed = true
	}
	return rc.module, rc.parseErr
}

// Offset converts a diagnostic position to a byte offset in the document.
func (rc *RuleContext) Offset(line, col int) (int, bool) {
	return rc.Doc.Offset(line, col)
}
