package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/pepfix/pkg/config"
)

// envVarPrefix is the prefix for all pepfix environment variables.
const envVarPrefix = "PEPFIX_"

// envVar binds one environment variable to a config field.
type envVar struct {
	description string
	apply       func(cfg *config.Config, value string) error
}

func envString(description string, set func(*config.Config, string)) envVar {
	return envVar{description: description, apply: func(cfg *config.Config, value string) error {
		set(cfg, value)
		return nil
	}}
}

func envBool(description string, set func(*config.Config, bool)) envVar {
	return envVar{description: description, apply: func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		set(cfg, b)
		return nil
	}}
}

func envInt(description string, set func(*config.Config, int)) envVar {
	return envVar{description: description, apply: func(cfg *config.Config, value string) error {
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		set(cfg, i)
		return nil
	}}
}

// envVars maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = map[string]envVar{
	"MAX_PASSES": envInt("Convergence cap per rule category (>= 1)",
		func(c *config.Config, v int) { c.MaxPasses = v }),
	"FIX_POLICY": envString("Fix policy: batch or conservative",
		func(c *config.Config, v string) { c.FixPolicy = config.FixPolicy(v) }),
	"STRICT_OPERATORS": envBool("Report missing whitespace around operators: true or false",
		func(c *config.Config, v bool) { c.StrictOperators = v }),
	"TAB_WIDTH": envInt("Spaces per tab when expanding indentation (1-16)",
		func(c *config.Config, v int) { c.TabWidth = v }),
	"DETECT_SHEBANG": envBool("Check extension-less Python scripts: true or false",
		func(c *config.Config, v bool) { c.DetectShebang = v }),
	"IGNORE": envString("Comma-separated list of ignore patterns",
		func(c *config.Config, v string) { c.Ignore = parseSliceValue(v) }),
	"BACKUPS_ENABLED": envBool("Enable backups when fixing: true or false",
		func(c *config.Config, v bool) { c.Backups.Enabled = v }),
	"BACKUPS_MODE": envString("Backup mode: sidecar, copy or none",
		func(c *config.Config, v string) { c.Backups.Mode = v }),
	"NO_BACKUPS": envBool("Disable backups: true or false",
		func(c *config.Config, v bool) { c.NoBackups = v }),
	"FIX": envBool("Apply fixes: true or false",
		func(c *config.Config, v bool) { c.Fix = v }),
	"DRY_RUN": envBool("Show fixes as a diff without writing: true or false",
		func(c *config.Config, v bool) { c.DryRun = v }),
	"FORMAT": envString("Output format: text, json or diff",
		func(c *config.Config, v string) { c.Format = config.OutputFormat(v) }),
}

// LoadFromEnv applies PEPFIX_* environment variable overrides to cfg.
// Unset or empty variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for suffix, binding := range envVars {
		name := envVarPrefix + suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := binding.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	var result []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns the supported environment variables with their
// descriptions, sorted by name.
func ListEnvVars() [][2]string {
	names := make([]string, 0, len(envVars))
	for suffix := range envVars {
		names = append(names, suffix)
	}
	sort.Strings(names)

	out := make([][2]string, 0, len(names))
	for _, suffix := range names {
		out = append(out, [2]string{envVarPrefix + suffix, envVars[suffix].description})
	}
	return out
}
