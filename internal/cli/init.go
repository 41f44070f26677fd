package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pepfix/internal/logging"
	"github.com/yaklabco/pepfix/pkg/config"
	"github.com/yaklabco/pepfix/pkg/lint"
	"github.com/yaklabco/pepfix/pkg/lint/rules"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

const defaultConfigName = ".pepfix.yml"

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .pepfix.yml configuration file",
		Long: `Create a commented .pepfix.yml in the current directory with the default
settings and a severity entry for every rule category.

Examples:
  pepfix init                      Create .pepfix.yml
  pepfix init --force              Overwrite an existing file
  pepfix init --output ci.yml      Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigName, "output file path")

	return cmd
}

func runInit(flags *initFlags) error {
	logger := logging.NewInteractive()

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	if err := os.WriteFile(absPath, config.GenerateTemplate(templateRules()), configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'pepfix rules' to see every rule category")

	return nil
}

// templateRules lists the catalogue's categories for the config template.
func templateRules() []config.RuleInfo {
	catalogue := rules.NewCatalogue(lint.DefaultOptions())

	infos := make([]config.RuleInfo, 0, catalogue.Len())
	for _, rule := range catalogue.Rules() {
		infos = append(infos, config.RuleInfo{
			ID:          rule.ID(),
			Codes:       rule.Codes(),
			Description: rule.Description(),
			Severity:    rule.DefaultSeverity(),
		})
	}
	return infos
}
