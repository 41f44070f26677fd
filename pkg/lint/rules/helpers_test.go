package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pepfix/pkg/lint"
	"github.com/yaklabco/pepfix/pkg/pysrc"
)

// ruleCase is a table entry shared by the per-category tests.
type ruleCase struct {
	name string

	input string

	// wantCodes are the violation codes of the first detection, in order.
	wantCodes []string

	// wantColumns, when set, are the 0-based columns of the first detection.
	wantColumns []int

	// wantFix is the content once the category is clean. Empty means the
	// input is expected to be clean already.
	wantFix string
}

func detect(t *testing.T, rule lint.Rule, input string) []lint.Diagnostic {
	t.Helper()

	engine := lint.NewEngine(nil)
	rc := engine.Context(context.Background(), pysrc.NewDocument("test.py", []byte(input)))
	diags, err := engine.Detect(rc, rule)
	require.NoError(t, err)
	return diags
}

// converge alternates detection and correction until the category is clean
// and returns the final content.
func converge(t *testing.T, rule lint.Rule, input string) string {
	t.Helper()

	engine := lint.NewEngine(nil)
	content := []byte(input)
	for range 10 {
		rc := engine.Context(context.Background(), pysrc.NewDocument("test.py", content))
		diags, err := engine.Detect(rc, rule)
		require.NoError(t, err)
		if len(diags) == 0 {
			return string(content)
		}

		correction, err := engine.Correct(rc, rule, diags)
		require.NoError(t, err)
		require.True(t, correction.Changed(content), "correction made no progress on %q", content)
		content = correction.Content
	}
	t.Fatalf("%s did not converge: %q", rule.ID(), content)
	return ""
}

func codesOf(diags []lint.Diagnostic) []string {
	codes := make([]string, len(diags))
	for i, diag := range diags {
		codes[i] = diag.Code
	}
	return codes
}

func columnsOf(diags []lint.Diagnostic) []int {
	cols := make([]int, len(diags))
	for i, diag := range diags {
		cols[i] = diag.Column
	}
	return cols
}

func runRuleCases(t *testing.T, rule lint.Rule, tests []ruleCase) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			diags := detect(t, rule, tt.input)
			if len(tt.wantCodes) == 0 {
				require.Empty(t, diags)
				return
			}
			require.Equal(t, tt.wantCodes, codesOf(diags))
			if tt.wantColumns != nil {
				require.Equal(t, tt.wantColumns, columnsOf(diags))
			}

			fixed := converge(t, rule, tt.input)
			require.Equal(t, tt.wantFix, fixed)
			require.Empty(t, detect(t, rule, fixed), "corrected content should be clean")
		})
	}
}
