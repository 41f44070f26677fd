package rules

import "github.com/yaklabco/pepfix/pkg/lint"

// NewCatalogue builds the fixed category order. Trailing whitespace runs a
// second time because earlier corrections can leave whitespace behind.
func NewCatalogue(opts lint.Options) *lint.Catalogue {
	patterns := NewPatterns()
	trailing := NewTrailingWhitespaceRule()

	return lint.NewCatalogue(
		trailing,
		NewTabsRule(opts.TabWidth),
		NewExtraneousWhitespaceRule(patterns),
		NewMissingWhitespaceRule(),
		NewWhitespaceBeforeParametersRule(patterns),
		NewWhitespaceAroundOperatorsRule(patterns, opts.StrictOperators),
		NewImportPlacementRule(patterns),
		NewMultipleImportsRule(patterns),
		NewBlankLinesRule(),
		trailing,
		NewMissingFinalNewlineRule(),
	)
}
