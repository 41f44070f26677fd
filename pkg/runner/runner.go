package runner

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yaklabco/pepfix/internal/logging"
	"github.com/yaklabco/pepfix/pkg/lint"
)

// Runner orchestrates a multi-file run using a lint.Pipeline.
type Runner struct {
	// Pipeline handles per-file processing.
	Pipeline *lint.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and processes them one at a time in
// path order. A file-level error is recorded in its FileOutcome and the run
// continues with the next file.
//
// Run returns ErrNoFiles together with an empty result when discovery finds
// nothing, and stops between files when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	result := &Result{
		RunID: uuid.NewString(),
		Stats: newStats(),
	}

	ctx = logging.WithFields(ctx, logging.FieldRunID, result.RunID)
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result.Files = make([]FileOutcome, 0, len(files))
	result.Stats.FilesDiscovered = len(files)
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	if len(files) == 0 {
		return result, ErrNoFiles
	}

	pipelineOpts := lint.PipelineOptionsFromConfig(opts.Config)

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("run cancelled: %w", err)
		}

		logger.Info("processing", logging.FieldPath, path)

		outcome := FileOutcome{Path: path}
		outcome.Result, outcome.Error = r.Pipeline.ProcessFile(ctx, path, pipelineOpts)
		result.accumulate(outcome)

		if outcome.Error != nil {
			logger.Error("file failed", logging.FieldPath, path, logging.FieldError, outcome.Error)
			continue
		}
		logger.Info("processed",
			logging.FieldPath, path,
			logging.FieldDiagnostics, outcome.Result.IssueCount(),
			logging.FieldEdits, outcome.Result.TotalEditsApplied,
		)
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldFilesModified, result.Stats.FilesModified,
	)

	return result, nil
}
