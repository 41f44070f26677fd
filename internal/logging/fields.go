package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldRunID      = "run_id"

	// Configuration fields.
	FieldConfig    = "config"
	FieldFix       = "fix"
	FieldDryRun    = "dry_run"
	FieldMaxPasses = "max_passes"
	FieldPolicy    = "fix_policy"

	// Rule engine fields.
	FieldRule        = "rule"
	FieldStep        = "step"
	FieldCode        = "code"
	FieldLine        = "line"
	FieldColumn      = "column"
	FieldPass        = "pass"
	FieldEdits       = "edits"
	FieldSkipped     = "skipped"
	FieldDiagnostics = "diagnostics"
	FieldMessage     = "message"
	FieldExpected    = "expected"
	FieldReceived    = "received"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldFilesModified    = "files_modified"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
