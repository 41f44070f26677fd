package cli

import (
	"errors"

	"github.com/yaklabco/pepfix/pkg/runner"
)

// Exit codes for pepfix.
const (
	// ExitSuccess indicates every file is clean.
	ExitSuccess = 0

	// ExitIssues indicates violations remain, a category could not finish,
	// or a dry run has changes to apply.
	ExitIssues = 1

	// ExitError indicates a usage, configuration or file-level error.
	ExitError = 2
)

// ErrIssuesFound is returned when a run completed but left work behind.
// It only signals the exit code and is not reported as a failure.
var ErrIssuesFound = errors.New("issues found")

// ErrFilesFailed is returned when at least one file could not be processed.
var ErrFilesFailed = errors.New("some files could not be processed")

// ExitCode maps the error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrIssuesFound):
		return ExitIssues
	default:
		return ExitError
	}
}

// resultError returns the command error for a finished run.
func resultError(result *runner.Result, dryRun bool) error {
	if result == nil {
		return nil
	}
	if result.HasErrors() {
		return ErrFilesFailed
	}
	if result.HasIssues() || result.Stats.CategoryFailures > 0 {
		return ErrIssuesFound
	}
	if dryRun {
		for _, file := range result.Files {
			if file.Result != nil && file.Result.Modified {
				return ErrIssuesFound
			}
		}
	}
	return nil
}
