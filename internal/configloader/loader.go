// Package configloader resolves the effective pepfix configuration from
// system, user, project and explicit files, PEPFIX_* environment variables
// and command-line overrides.
package configloader

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/yaklabco/pepfix/internal/logging"
	"github.com/yaklabco/pepfix/pkg/config"
	"github.com/yaklabco/pepfix/pkg/lint"
	"github.com/yaklabco/pepfix/pkg/lint/rules"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// It is layered above the project config.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// Overrides contains configuration from CLI flags.
	// These take highest precedence.
	Overrides *Overrides

	// Catalogue resolves severity keys. Defaults to the built-in catalogue.
	Catalogue *lint.Catalogue
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by layering all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.Overrides)
//  2. Environment variables (PEPFIX_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.pepfix.yml or pyproject.toml, upward search)
//  5. User config ($XDG_CONFIG_HOME/pepfix/config.yml)
//  6. System config (/etc/pepfix/config.yml)
//  7. Defaults
//
// Each file only overrides the keys it sets. The first validation error
// is returned as a *ValidationError.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name    string
		path    string
		skip    bool
		require bool
	}{
		{name: "system", path: paths.System, skip: opts.IgnoreSystemConfig},
		{name: "user", path: paths.User, skip: opts.IgnoreUserConfig},
		{name: "project", path: paths.Project, skip: opts.IgnoreProjectConfig},
		{name: "explicit", path: paths.Explicit, require: true},
	}

	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}

		found, err := loadConfigFile(cfg, layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		if !found {
			if layer.require {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("%s has no [tool.pepfix] table; nothing loaded", layer.path))
			}
			continue
		}

		logger.Debug("loaded config", logging.FieldConfig, layer.path)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	opts.Overrides.apply(cfg)

	// A dry run computes fixes without writing them.
	if cfg.DryRun {
		cfg.Fix = true
	}

	catalogue := opts.Catalogue
	if catalogue == nil {
		catalogue = rules.NewCatalogue(lint.OptionsFromConfig(cfg))
	}
	normalizeSeverityKeys(cfg, catalogue, result)

	validation := Validate(cfg, catalogue)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile overlays the file at path onto cfg. YAML files are always
// applied; a TOML file is treated as pyproject.toml and reports whether it
// had a [tool.pepfix] table.
func loadConfigFile(cfg *config.Config, path string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read file: %w", err)
	}

	if IsTOMLConfig(path) {
		found, err := cfg.DecodePyproject(content)
		if err != nil {
			return found, fmt.Errorf("%s: %w", path, err)
		}
		return found, nil
	}

	if err := cfg.DecodeYAML(content); err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	return true, nil
}

// normalizeSeverityKeys rewrites severity keys given as rule names or
// violation codes (e.g. "E302") to category IDs. When two keys refer to the
// same category, a key spelled as the ID wins, otherwise the last key in
// sorted order; a warning is recorded either way.
func normalizeSeverityKeys(cfg *config.Config, catalogue *lint.Catalogue, result *LoadResult) {
	if len(cfg.Severity) == 0 {
		return
	}

	keys := slices.Sorted(maps.Keys(cfg.Severity))
	normalized := make(map[string]config.Severity, len(keys))
	seen := make(map[string]string, len(keys))

	for _, key := range keys {
		sev := cfg.Severity[key]
		id, _, found := catalogue.Resolve(key)
		if !found {
			normalized[key] = sev
			continue
		}
		if original, dup := seen[id]; dup {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate severity setting: %q and %q both refer to %s", original, key, id))
			if original == id {
				continue
			}
		}
		seen[id] = key
		normalized[id] = sev
	}

	cfg.Severity = normalized
}
