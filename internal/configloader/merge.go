package configloader

import "github.com/yaklabco/pepfix/pkg/config"

// Overrides holds the settings given on the command line. Nil fields were
// not set and leave the lower layers untouched, so an explicit false or
// zero still overrides a config file.
type Overrides struct {
	MaxPasses       *int
	FixPolicy       *config.FixPolicy
	StrictOperators *bool
	TabWidth        *int
	DetectShebang   *bool
	BackupMode      *string

	// Ignore patterns are appended to the configured ones.
	Ignore []string

	Fix        bool
	DryRun     bool
	NoBackups  bool
	Format     config.OutputFormat
	RuleFormat config.RuleFormat
}

// apply overlays the overrides onto cfg.
func (o *Overrides) apply(cfg *config.Config) {
	if o == nil || cfg == nil {
		return
	}

	if o.MaxPasses != nil {
		cfg.MaxPasses = *o.MaxPasses
	}
	if o.FixPolicy != nil {
		cfg.FixPolicy = *o.FixPolicy
	}
	if o.StrictOperators != nil {
		cfg.StrictOperators = *o.StrictOperators
	}
	if o.TabWidth != nil {
		cfg.TabWidth = *o.TabWidth
	}
	if o.DetectShebang != nil {
		cfg.DetectShebang = *o.DetectShebang
	}
	if o.BackupMode != nil {
		cfg.Backups.Mode = *o.BackupMode
	}

	cfg.Ignore = append(cfg.Ignore, o.Ignore...)

	// Flags that only switch something on.
	cfg.Fix = cfg.Fix || o.Fix
	cfg.DryRun = cfg.DryRun || o.DryRun
	cfg.NoBackups = cfg.NoBackups || o.NoBackups

	if o.Format != "" {
		cfg.Format = o.Format
	}
	if o.RuleFormat != "" {
		cfg.RuleFormat = o.RuleFormat
	}
}
