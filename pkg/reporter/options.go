package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/pepfix/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output: "auto" (default), "always" or "never".
	Color string

	// ShowContext prints the offending source line under each diagnostic.
	ShowContext bool

	// ShowSummary prints aggregate statistics after the results.
	ShowSummary bool

	// Verbose expands the summary into a block.
	Verbose bool

	// Compact emits minified JSON.
	Compact bool

	// RuleFormat controls how rule identifiers appear in text output.
	RuleFormat config.RuleFormat

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowContext: true,
		ShowSummary: true,
		RuleFormat:  config.RuleFormatCombined,
	}
}

// OptionsFromConfig derives reporter options from the resolved config.
func OptionsFromConfig(cfg *config.Config, w io.Writer) Options {
	opts := DefaultOptions()
	if w != nil {
		opts.Writer = w
	}
	if cfg == nil {
		return opts
	}
	if cfg.Format != "" {
		opts.Format = Format(cfg.Format)
	}
	if cfg.RuleFormat != "" {
		opts.RuleFormat = cfg.RuleFormat
	}
	// Dry runs are shown as diffs unless another format was chosen.
	if cfg.DryRun && opts.Format == FormatText {
		opts.Format = FormatDiff
	}
	return opts
}
