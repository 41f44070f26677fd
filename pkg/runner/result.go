package runner

import (
	"github.com/yaklabco/pepfix/pkg/config"
	"github.com/yaklabco/pepfix/pkg/lint"
)

// FileOutcome wraps PipelineResult with resolved path metadata.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result contains the pipeline result for this file. It may be partial
	// when Error is set, or nil when the file could not be read.
	Result *lint.PipelineResult

	// Error is set if processing of the file was aborted.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files processed to the end.
	FilesProcessed int

	// FilesErrored is the number of files aborted by an I/O error or a
	// malformed detector result.
	FilesErrored int

	// DiagnosticsTotal is the number of violations that remain.
	DiagnosticsTotal int

	// DiagnosticsBySeverity maps severity levels to counts.
	DiagnosticsBySeverity map[string]int

	// FilesWithIssues is the number of files with at least one remaining violation.
	FilesWithIssues int

	// FilesModified is the number of files written by fixes.
	FilesModified int

	// DiagnosticsFixed is the number of violations corrected.
	DiagnosticsFixed int

	// CategoryFailures counts category-level errors: convergence exceeded,
	// structural parse failures and correction failures.
	CategoryFailures int
}

// Result is the overall runner result.
type Result struct {
	// RunID identifies the run in logs and reports.
	RunID string

	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any diagnostics with error severity remain.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsBySeverity[string(config.SeverityError)] > 0
}

// HasIssues reports whether any violations remain.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

// HasErrors reports whether any file was aborted.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// Diagnostics returns the remaining violations of every file in path order.
func (r *Result) Diagnostics() []lint.Diagnostic {
	var out []lint.Diagnostic
	for _, file := range r.Files {
		if file.Result != nil {
			out = append(out, file.Result.Diagnostics()...)
		}
	}
	return out
}

func newStats() Stats {
	return Stats{
		DiagnosticsBySeverity: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
	} else {
		r.Stats.FilesProcessed++
	}

	pr := outcome.Result
	if pr == nil {
		return
	}

	if pr.Written {
		r.Stats.FilesModified++
	}
	r.Stats.DiagnosticsFixed += pr.FixedCount()
	r.Stats.CategoryFailures += len(pr.Errors())

	diagCount := pr.IssueCount()
	r.Stats.DiagnosticsTotal += diagCount
	if diagCount > 0 {
		r.Stats.FilesWithIssues++
	}

	for _, diag := range pr.Diagnostics() {
		severity := string(diag.Severity)
		if severity == "" {
			severity = string(config.SeverityWarning)
		}
		r.Stats.DiagnosticsBySeverity[severity]++
	}
}
