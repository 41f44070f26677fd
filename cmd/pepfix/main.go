// Package main is the entry point for the pepfix CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/pepfix/internal/cli"
	"github.com/yaklabco/pepfix/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	err := rootCmd.Execute()
	// Remaining issues are already in the report; only the exit code says so.
	if err != nil && !errors.Is(err, cli.ErrIssuesFound) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}

	return cli.ExitCode(err)
}
