package lint_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pepfix/pkg/config"
	"github.com/yaklabco/pepfix/pkg/fix"
	"github.com/yaklabco/pepfix/pkg/lint"
	"github.com/yaklabco/pepfix/pkg/pysrc"
)

// detectFunc adapts a function to lint.Detector.
type detectFunc func(rc *lint.RuleContext) ([]lint.Diagnostic, error)

func (f detectFunc) Detect(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	return f(rc)
}

// fakeRule is a category whose detector and corrector are supplied by the test.
type fakeRule struct {
	lint.BaseRule
	correct func(rc *lint.RuleContext, diags []lint.Diagnostic) ([]fix.TextEdit, error)
}

func (r *fakeRule) Correct(rc *lint.RuleContext, diags []lint.Diagnostic) ([]fix.TextEdit, error) {
	if r.correct == nil {
		return nil, nil
	}
	return r.correct(rc, diags)
}

func newFakeRule(id string, detect detectFunc) *fakeRule {
	return &fakeRule{
		BaseRule: lint.NewBaseRule(id, "Fake "+id, "test category", []string{"X100"}, config.SeverityWarning, detect),
	}
}

func diagsAt(lines ...int) detectFunc {
	return func(_ *lint.RuleContext) ([]lint.Diagnostic, error) {
		diags := make([]lint.Diagnostic, 0, len(lines))
		for _, line := range lines {
			diags = append(diags, lint.NewDiagnosticAt("", "X100", line, 0, "fake").Build())
		}
		return diags, nil
	}
}

func newContext(engine *lint.Engine, content string) *lint.RuleContext {
	return engine.Context(context.Background(), pysrc.NewDocument("a.py", []byte(content)))
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	assert.Equal(t, config.FixPolicyBatch, lint.NewEngine(nil).Policy)

	cfg := config.NewConfig()
	cfg.FixPolicy = config.FixPolicyConservative
	assert.Equal(t, config.FixPolicyConservative, lint.NewEngine(cfg).Policy)

	cfg.FixPolicy = "eager"
	assert.Equal(t, config.FixPolicyBatch, lint.NewEngine(cfg).Policy)
}

func TestEngineDetectStampsDiagnostics(t *testing.T) {
	t.Parallel()

	engine := lint.NewEngine(nil)
	rule := newFakeRule("fake", diagsAt(1, 2))

	diags, err := engine.Detect(newContext(engine, "x = 1\ny = 2\n"), rule)
	require.NoError(t, err)
	require.Len(t, diags, 2)
	for _, diag := range diags {
		assert.Equal(t, "fake", diag.RuleID)
		assert.Equal(t, "Fake fake", diag.RuleName)
		assert.Equal(t, config.SeverityWarning, diag.Severity)
		assert.Equal(t, "a.py", diag.FilePath)
	}

	cfg := config.NewConfig()
	cfg.Severity = map[string]config.Severity{"fake": config.SeverityInfo}
	engine = lint.NewEngine(cfg)

	diags, err = engine.Detect(newContext(engine, "x = 1\n"), newFakeRule("fake", diagsAt(1)))
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, config.SeverityInfo, diags[0].Severity)
}

func TestEngineDetectMalformedResults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		detect detectFunc
	}{
		{name: "line zero", detect: diagsAt(0)},
		{name: "past last line", detect: diagsAt(3)},
		{name: "out of order", detect: diagsAt(2, 1)},
		{
			name: "detector error",
			detect: func(_ *lint.RuleContext) ([]lint.Diagnostic, error) {
				return nil, errors.New("boom")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			engine := lint.NewEngine(nil)
			_, err := engine.Detect(newContext(engine, "x = 1\ny = 2\n"), newFakeRule("fake", tt.detect))
			require.Error(t, err)
			assert.ErrorIs(t, err, lint.ErrMalformedResult)
			assert.True(t, lint.IsFileFatal(err))
		})
	}
}

func TestEngineDetectStructuralFailure(t *testing.T) {
	t.Parallel()

	rule := newFakeRule("fake", func(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
		_, err := rc.Module()
		return nil, err
	})

	engine := lint.NewEngine(nil)
	_, err := engine.Detect(newContext(engine, "x = (1,\n"), rule)
	require.Error(t, err)
	assert.ErrorIs(t, err, pysrc.ErrSyntax)
	assert.NotErrorIs(t, err, lint.ErrMalformedResult)
	assert.False(t, lint.IsFileFatal(err))
}

// twoEditsOnLineOne replaces the first two bytes of line 1 separately.
func twoEditsOnLineOne(_ *lint.RuleContext, _ []lint.Diagnostic) ([]fix.TextEdit, error) {
	return []fix.TextEdit{
		{StartOffset: 0, EndOffset: 1, NewText: "a"},
		{StartOffset: 1, EndOffset: 2, NewText: "b"},
	}, nil
}

func TestEngineCorrectPolicies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		policy      config.FixPolicy
		wantContent string
		wantApplied int
		wantSkipped int
	}{
		{name: "batch", policy: config.FixPolicyBatch, wantContent: "ab\n", wantApplied: 2},
		{name: "conservative", policy: config.FixPolicyConservative, wantContent: "a2\n", wantApplied: 1, wantSkipped: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			engine := lint.NewEngine(nil)
			engine.Policy = tt.policy

			rule := newFakeRule("fake", diagsAt(1))
			rule.correct = twoEditsOnLineOne

			rc := newContext(engine, "12\n")
			correction, err := engine.Correct(rc, rule, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantContent, string(correction.Content))
			assert.Equal(t, tt.wantApplied, correction.Applied)
			assert.Equal(t, tt.wantSkipped, correction.Skipped)
			assert.True(t, correction.Changed(rc.Doc.Content))
		})
	}
}

func TestEngineCorrectOverlappingEditsAreSkipped(t *testing.T) {
	t.Parallel()

	engine := lint.NewEngine(nil)
	rule := newFakeRule("fake", diagsAt(1))
	rule.correct = func(_ *lint.RuleContext, _ []lint.Diagnostic) ([]fix.TextEdit, error) {
		return []fix.TextEdit{
			{StartOffset: 0, EndOffset: 3, NewText: "abc"},
			{StartOffset: 1, EndOffset: 2, NewText: "z"},
		}, nil
	}

	correction, err := engine.Correct(newContext(engine, "123\n"), rule, nil)
	require.NoError(t, err)
	assert.Equal(t, "abc\n", string(correction.Content))
	assert.Equal(t, 1, correction.Skipped)
}

func TestEngineCorrectFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		correct func(rc *lint.RuleContext, diags []lint.Diagnostic) ([]fix.TextEdit, error)
	}{
		{
			name: "corrector error",
			correct: func(_ *lint.RuleContext, _ []lint.Diagnostic) ([]fix.TextEdit, error) {
				return nil, errors.New("no definition")
			},
		},
		{
			name: "edit out of range",
			correct: func(_ *lint.RuleContext, _ []lint.Diagnostic) ([]fix.TextEdit, error) {
				return []fix.TextEdit{{StartOffset: 2, EndOffset: 40}}, nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			engine := lint.NewEngine(nil)
			rule := newFakeRule("fake", diagsAt(1))
			rule.correct = tt.correct

			_, err := engine.Correct(newContext(engine, "x = 1\n"), rule, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, lint.ErrCorrectionFailed)
			assert.False(t, lint.IsFileFatal(err))
		})
	}
}
