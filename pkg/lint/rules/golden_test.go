package rules

import (
	"cmp"
	"context"
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pepfix/pkg/lint"
)

// update is a flag to update golden files instead of comparing.
// Usage: go test ./pkg/lint/rules/... -run TestGolden -update.
var update = flag.Bool("update", false, "update golden files")

// testdataDir returns the absolute path to the testdata directory.
func testdataDir(t *testing.T) string {
	t.Helper()

	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("failed to get test file path")
	}

	return filepath.Join(filepath.Dir(filename), "testdata")
}

// TestGoldenPerRule runs each category directory under testdata/ against
// its own category only.
func TestGoldenPerRule(t *testing.T) {
	cases := discoverTestCases(t, testdataDir(t))

	catalogue := NewCatalogue(lint.DefaultOptions())
	ran := 0
	for _, tc := range cases {
		if tc.RuleID == "" {
			continue
		}
		rule, ok := catalogue.Lookup(tc.RuleID)
		require.True(t, ok)

		ran++
		t.Run(tc.Name, func(t *testing.T) {
			input, err := os.ReadFile(tc.InputPath)
			require.NoError(t, err)

			compareDiags(t, detect(t, rule, string(input)), tc, *update)
			compareWithGolden(t, []byte(converge(t, rule, string(input))), tc.GoldenPath, *update)
		})
	}

	if ran == 0 {
		t.Skip("No per-category golden cases found. Create testdata/<category>/*.input.py files to add tests.")
	}
}

// TestGoldenRealWorld runs the whole catalogue through the pipeline.
// Diagnostics come from a lint-only run, sorted by position; the golden
// output is the fixed content.
func TestGoldenRealWorld(t *testing.T) {
	cases := discoverTestCases(t, testdataDir(t))

	ran := 0
	for _, tc := range cases {
		if !tc.IsRealWorld {
			continue
		}

		ran++
		t.Run(tc.Name, func(t *testing.T) {
			input, err := os.ReadFile(tc.InputPath)
			require.NoError(t, err)

			linted := runPipeline(t, input, false)
			diags := linted.Diagnostics()
			slices.SortStableFunc(diags, func(a, b lint.Diagnostic) int {
				if c := cmp.Compare(a.Line, b.Line); c != 0 {
					return c
				}
				return cmp.Compare(a.Column, b.Column)
			})
			compareDiags(t, diags, tc, *update)

			fixed := runPipeline(t, input, true)
			assert.Empty(t, fixed.Errors())
			compareWithGolden(t, fixed.Content, tc.GoldenPath, *update)
		})
	}

	if ran == 0 {
		t.Skip("No real-world golden cases found.")
	}
}

// TestGoldenRoundTrip verifies that every golden output is clean under the
// whole catalogue.
func TestGoldenRoundTrip(t *testing.T) {
	if *update {
		t.Skip("golden files are being rewritten")
	}

	for _, tc := range discoverTestCases(t, testdataDir(t)) {
		if !tc.IsRealWorld {
			continue
		}
		t.Run(tc.Name+"_roundtrip", func(t *testing.T) {
			golden, err := os.ReadFile(tc.GoldenPath)
			require.NoError(t, err)

			result := runPipeline(t, golden, false)
			assert.False(t, result.HasIssues(), "golden output still has issues: %v", result.Diagnostics())
		})
	}
}

func runPipeline(t *testing.T, content []byte, fixMode bool) *lint.PipelineResult {
	t.Helper()

	store := lint.NewMemoryStore()
	store.Seed("script.py", content)

	pipeline := lint.NewPipeline(lint.NewEngine(nil), NewCatalogue(lint.DefaultOptions()), store)
	result, err := pipeline.ProcessFile(context.Background(), "script.py", lint.PipelineOptions{Fix: fixMode})
	require.NoError(t, err)
	return result
}
