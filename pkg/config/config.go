// Package config defines core configuration types for pepfix.
// These types are plain data; loading and layering live in internal/configloader.
package config

// Severity represents the severity level of a lint diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid returns true if the severity is one of the known levels.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// BackupsConfig controls how original content is preserved when fixing.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Mode    string `yaml:"mode" toml:"mode"` // "sidecar", "copy" or "none"
}

// FixPolicy controls how many edits a corrector may apply per pass.
type FixPolicy string

const (
	// FixPolicyBatch applies every non-overlapping edit of a pass.
	FixPolicyBatch FixPolicy = "batch"

	// FixPolicyConservative applies only the first edit per line per pass
	// and leaves the rest to re-detection.
	FixPolicyConservative FixPolicy = "conservative"
)

// IsValid returns true if the policy is known.
func (p FixPolicy) IsValid() bool {
	return p == FixPolicyBatch || p == FixPolicyConservative
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatDiff OutputFormat = "diff"
)

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatCode     RuleFormat = "code"     // "W291"
	RuleFormatName     RuleFormat = "name"     // "trailing-whitespace"
	RuleFormatCombined RuleFormat = "combined" // "W291/trailing-whitespace"
)

// Default values.
const (
	DefaultMaxPasses = 10
	DefaultTabWidth  = 4
)

// Config is the root configuration structure for pepfix.
type Config struct {
	// Ignore contains doublestar glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore"`

	// MaxPasses caps detect/correct passes per rule category.
	MaxPasses int `yaml:"max_passes" toml:"max_passes"`

	// FixPolicy selects batch or conservative correction.
	FixPolicy FixPolicy `yaml:"fix_policy" toml:"fix_policy"`

	// StrictOperators enables the missing-whitespace-around-operator check.
	StrictOperators bool `yaml:"strict_operators" toml:"strict_operators"`

	// TabWidth is the number of spaces a tab is replaced with.
	TabWidth int `yaml:"tab_width" toml:"tab_width"`

	// DetectShebang includes extension-less files with a Python shebang.
	DetectShebang bool `yaml:"detect_shebang" toml:"detect_shebang"`

	// Severity overrides the default severity per rule category.
	Severity map[string]Severity `yaml:"severity,omitempty" toml:"severity"`

	Backups BackupsConfig `yaml:"backups" toml:"backups"`

	// CLI-level options (not persisted to config files).

	Fix        bool         `yaml:"-" toml:"-"`
	DryRun     bool         `yaml:"-" toml:"-"`
	Format     OutputFormat `yaml:"-" toml:"-"`
	RuleFormat RuleFormat   `yaml:"-" toml:"-"`
	NoBackups  bool         `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with the built-in defaults.
func NewConfig() *Config {
	return &Config{
		MaxPasses:     DefaultMaxPasses,
		FixPolicy:     FixPolicyBatch,
		TabWidth:      DefaultTabWidth,
		DetectShebang: true,
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format:     FormatText,
		RuleFormat: RuleFormatCombined,
	}
}

// SeverityFor returns the configured severity for a rule category, or
// fallback when none is set.
func (c *Config) SeverityFor(ruleID string, fallback Severity) Severity {
	if c != nil {
		if sev, ok := c.Severity[ruleID]; ok && sev != "" {
			return sev
		}
	}
	return fallback
}
