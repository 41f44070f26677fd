// Package runner discovers Python files and runs the pipeline over them.
package runner

import "github.com/yaklabco/pepfix/pkg/config"

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// ExcludeGlobs are doublestar patterns, relative to WorkingDir, used to
	// skip files or directories. They merge ignore rules from config and CLI.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// DetectShebang includes extension-less files whose interpreter line
	// names Python.
	DetectShebang bool

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// OptionsFromConfig creates Options for paths from the resolved config.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	opts := Options{Paths: paths, Config: cfg, DetectShebang: true}
	if cfg != nil {
		opts.ExcludeGlobs = append(opts.ExcludeGlobs, cfg.Ignore...)
		opts.DetectShebang = cfg.DetectShebang
	}
	return opts
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
