package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pepfix/pkg/config"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, 10, cfg.MaxPasses)
	assert.Equal(t, config.FixPolicyBatch, cfg.FixPolicy)
	assert.Equal(t, 4, cfg.TabWidth)
	assert.True(t, cfg.DetectShebang)
	assert.False(t, cfg.StrictOperators)
	assert.True(t, cfg.Backups.Enabled)
	assert.Equal(t, "sidecar", cfg.Backups.Mode)
	assert.Equal(t, config.FormatText, cfg.Format)
}

func TestSeverityFor(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Severity = map[string]config.Severity{"tabs": config.SeverityInfo}

	assert.Equal(t, config.SeverityInfo, cfg.SeverityFor("tabs", config.SeverityWarning))
	assert.Equal(t, config.SeverityError, cfg.SeverityFor("blank-lines", config.SeverityError))

	var nilCfg *config.Config
	assert.Equal(t, config.SeverityWarning, nilCfg.SeverityFor("tabs", config.SeverityWarning))
}

func TestValidityChecks(t *testing.T) {
	t.Parallel()

	assert.True(t, config.SeverityError.IsValid())
	assert.False(t, config.Severity("fatal").IsValid())
	assert.True(t, config.FixPolicyConservative.IsValid())
	assert.False(t, config.FixPolicy("eager").IsValid())
}

func TestFormatRuleRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format config.RuleFormat
		code   string
		name   string
		want   string
	}{
		{config.RuleFormatCode, "W291", "trailing-whitespace", "W291"},
		{config.RuleFormatName, "W291", "trailing-whitespace", "trailing-whitespace"},
		{config.RuleFormatCombined, "W291", "trailing-whitespace", "W291/trailing-whitespace"},
		{config.RuleFormat(""), "E302", "blank-lines", "E302/blank-lines"},
		{config.RuleFormatCode, "", "blank-lines", "blank-lines"},
		{config.RuleFormatName, "E302", "", "E302"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format)+"/"+tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, config.FormatRuleRef(tt.format, tt.code, tt.name))
		})
	}
}

func TestClone(t *testing.T) {
	t.Parallel()

	var nilCfg *config.Config
	assert.Nil(t, nilCfg.Clone())

	original := config.NewConfig()
	original.Ignore = []string{"venv/**"}
	original.Severity = map[string]config.Severity{"tabs": config.SeverityError}
	original.Fix = true

	clone := original.Clone()
	require.NotSame(t, original, clone)
	assert.Equal(t, original, clone)

	clone.Ignore[0] = "build/**"
	clone.Severity["tabs"] = config.SeverityInfo
	assert.Equal(t, "venv/**", original.Ignore[0])
	assert.Equal(t, config.SeverityError, original.Severity["tabs"])
}
