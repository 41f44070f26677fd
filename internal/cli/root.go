// Package cli provides the Cobra command structure for pepfix.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pepfix/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

type rootFlags struct {
	debug      bool
	verbose    bool
	configPath string
	color      string
	logFile    string
}

// NewRootCommand creates the root pepfix command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &rootFlags{}
	var logCloser io.Closer

	rootCmd := &cobra.Command{
		Use:   "pepfix",
		Short: "A PEP 8 checker that fixes what it finds",
		Long: `pepfix checks Python source files for PEP 8 layout violations and can
rewrite them in place.

Each rule category is detected and corrected in turn, re-checking after every
pass until the category is clean or the pass limit is reached. Files are
written atomically, with an optional backup or a side-by-side "-Copy" file.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			closer, err := logging.Setup(flags.logSettings())
			if err != nil {
				return err
			}
			logCloser = closer
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if logCloser == nil {
				return nil
			}
			return logCloser.Close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false,
		"log each file and print a detailed summary")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "",
		"also append log records to this file")

	rootCmd.AddCommand(newLintCommand())
	rootCmd.AddCommand(newFixCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(flags.color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}

func (f *rootFlags) logSettings() logging.Settings {
	settings := logging.Settings{Level: "warn", LogFile: f.logFile}
	if f.verbose {
		settings.Level = "info"
		settings.Timestamps = true
	}
	if f.debug {
		settings.Level = "debug"
	}
	return settings
}
