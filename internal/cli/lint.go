package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pepfix/internal/configloader"
	"github.com/yaklabco/pepfix/internal/logging"
	"github.com/yaklabco/pepfix/pkg/config"
	"github.com/yaklabco/pepfix/pkg/lint"
	"github.com/yaklabco/pepfix/pkg/lint/rules"
	"github.com/yaklabco/pepfix/pkg/reporter"
	"github.com/yaklabco/pepfix/pkg/runner"
)

type checkFlags struct {
	format          string
	ruleFormat      string
	ignore          []string
	maxPasses       int
	fixPolicy       string
	strictOperators bool
	tabWidth        int
	detectShebang   bool
	noContext       bool
	compact         bool

	// fix command only.
	dryRun     bool
	noBackups  bool
	backupMode string
}

func newLintCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Report PEP 8 violations",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags, false)
		},
	}

	addCheckFlags(cmd, flags)

	return cmd
}

const lintLongDescription = `Check Python files for PEP 8 violations without changing them.

By default, checks every .py and .pyw file under the current directory, plus
extension-less scripts with a Python shebang. Specify paths to check specific
files or directories.

Examples:
  pepfix lint                      # Check current directory
  pepfix lint src/                 # Check src directory
  pepfix lint app.py               # Check a single file
  pepfix lint --format json        # Output as JSON for CI
  pepfix lint --rule-format code   # Show only violation codes`

func newFixCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Fix PEP 8 violations in place",
		Long:  fixLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags, true)
		},
	}

	addCheckFlags(cmd, flags)
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show fixes as a diff without writing")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation")
	cmd.Flags().StringVar(&flags.backupMode, "backup-mode", "",
		"backup mode: sidecar, copy, none (default sidecar)")

	return cmd
}

const fixLongDescription = `Fix PEP 8 violations, rewriting each file atomically.

Rule categories run in a fixed order. Each one alternates detection and
correction until the category is clean or --max-passes is reached; the
remaining violations are reported afterwards.

Examples:
  pepfix fix                       # Fix current directory
  pepfix fix --dry-run             # Show the diff without writing
  pepfix fix --backup-mode copy    # Write fixes to name-Copy.py
  pepfix fix --fix-policy conservative`

func addCheckFlags(cmd *cobra.Command, flags *checkFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json, diff (default text)")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "",
		"rule identifier format in output: code, name, combined (default combined)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVar(&flags.maxPasses, "max-passes", config.DefaultMaxPasses,
		"maximum correction passes per rule category")
	cmd.Flags().StringVar(&flags.fixPolicy, "fix-policy", string(config.FixPolicyBatch),
		"fix policy: batch, conservative")
	cmd.Flags().BoolVar(&flags.strictOperators, "strict-operators", false,
		"report missing whitespace around operators (E225)")
	cmd.Flags().IntVar(&flags.tabWidth, "tab-width", config.DefaultTabWidth, "spaces used to replace a tab")
	cmd.Flags().BoolVar(&flags.detectShebang, "detect-shebang", true,
		"also check extension-less files with a Python shebang")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minify JSON output")
}

// overrides returns the config overrides for the flags set on cmd.
func (f *checkFlags) overrides(cmd *cobra.Command, fix bool) *configloader.Overrides {
	changed := cmd.Flags().Changed

	overrides := &configloader.Overrides{
		Ignore:     f.ignore,
		Fix:        fix,
		DryRun:     f.dryRun,
		NoBackups:  f.noBackups,
		Format:     config.OutputFormat(f.format),
		RuleFormat: config.RuleFormat(f.ruleFormat),
	}

	if changed("max-passes") {
		overrides.MaxPasses = &f.maxPasses
	}
	if changed("fix-policy") {
		policy := config.FixPolicy(f.fixPolicy)
		overrides.FixPolicy = &policy
	}
	if changed("strict-operators") {
		overrides.StrictOperators = &f.strictOperators
	}
	if changed("tab-width") {
		overrides.TabWidth = &f.tabWidth
	}
	if changed("detect-shebang") {
		overrides.DetectShebang = &f.detectShebang
	}
	if changed("backup-mode") {
		overrides.BackupMode = &f.backupMode
	}

	return overrides
}

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags, fix bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		Overrides:    flags.overrides(cmd, fix),
	})
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldFiles, loadResult.LoadedFrom,
		logging.FieldFix, cfg.Fix,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldMaxPasses, cfg.MaxPasses,
		logging.FieldPolicy, cfg.FixPolicy,
	)

	catalogue := rules.NewCatalogue(lint.OptionsFromConfig(cfg))
	pipeline := lint.NewPipeline(lint.NewEngine(cfg), catalogue, lint.NewFileStore())

	runOpts := runner.OptionsFromConfig(cfg, args)
	runOpts.WorkingDir = workDir

	result, err := runner.New(pipeline).Run(ctx, runOpts)
	if err != nil {
		if errors.Is(err, runner.ErrNoFiles) {
			return err
		}
		return fmt.Errorf("run: %w", err)
	}

	repOpts := reporter.OptionsFromConfig(cfg, cmd.OutOrStdout())
	repOpts.Color, _ = cmd.Flags().GetString("color")
	repOpts.Verbose, _ = cmd.Flags().GetBool("verbose")
	repOpts.ShowContext = !flags.noContext
	repOpts.Compact = flags.compact
	repOpts.WorkingDir = workDir

	rep, err := reporter.New(repOpts)
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	return resultError(result, cfg.DryRun)
}
