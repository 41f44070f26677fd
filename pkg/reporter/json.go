package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/pepfix/pkg/config"
	"github.com/yaklabco/pepfix/pkg/lint"
	"github.com/yaklabco/pepfix/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	RunID   string           `json:"runId"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Errors      []string         `json:"errors,omitempty"`
	Modified    bool             `json:"modified,omitempty"`
	OutputPath  string           `json:"outputPath,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// JSONDiagnostic is the wire shape of a diagnostic.
type JSONDiagnostic struct {
	Line        int    `json:"line"`
	Column      *int   `json:"column,omitempty"`
	Code        string `json:"code"`
	Message     string `json:"message"`
	Expected    *int   `json:"expected,omitempty"`
	Received    *int   `json:"received,omitempty"`
	ForFunction string `json:"forFunction,omitempty"`
	Rule        string `json:"rule"`
	Severity    string `json:"severity"`
}

// NewJSONDiagnostic converts a diagnostic to its wire shape. The column is
// omitted for whole-line diagnostics.
func NewJSONDiagnostic(diag lint.Diagnostic) JSONDiagnostic {
	out := JSONDiagnostic{
		Line:        diag.Line,
		Code:        diag.Code,
		Message:     diag.Message,
		Expected:    diag.Expected,
		Received:    diag.Received,
		ForFunction: diag.ForFunction,
		Rule:        diag.RuleID,
		Severity:    string(diag.Severity),
	}
	if diag.HasColumn() {
		column := diag.Column
		out.Column = &column
	}
	if out.Severity == "" {
		out.Severity = string(config.SeverityWarning)
	}
	return out
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked     int            `json:"filesChecked"`
	FilesWithIssues  int            `json:"filesWithIssues"`
	FilesModified    int            `json:"filesModified"`
	FilesErrored     int            `json:"filesErrored"`
	TotalIssues      int            `json:"totalIssues"`
	Fixed            int            `json:"fixed"`
	CategoryFailures int            `json:"categoryFailures"`
	BySeverity       map[string]int `json:"bySeverity"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. It returns the number of diagnostics written.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Files:   []JSONFileResult{},
		Summary: JSONSummary{BySeverity: map[string]int{}},
	}
	if result == nil {
		return output
	}

	output.RunID = result.RunID
	output.Files = make([]JSONFileResult, 0, len(result.Files))
	output.Summary = JSONSummary{
		FilesChecked:     result.Stats.FilesProcessed + result.Stats.FilesErrored,
		FilesWithIssues:  result.Stats.FilesWithIssues,
		FilesModified:    result.Stats.FilesModified,
		FilesErrored:     result.Stats.FilesErrored,
		TotalIssues:      result.Stats.DiagnosticsTotal,
		Fixed:            result.Stats.DiagnosticsFixed,
		CategoryFailures: result.Stats.CategoryFailures,
		BySeverity:       result.Stats.DiagnosticsBySeverity,
	}
	if output.Summary.BySeverity == nil {
		output.Summary.BySeverity = map[string]int{}
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:        displayPath(r.opts.WorkingDir, file.Path),
			Diagnostics: []JSONDiagnostic{},
		}
		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}

		if pr := file.Result; pr != nil {
			fileResult.Modified = pr.Written
			if pr.Written && pr.OutputPath != file.Path {
				fileResult.OutputPath = displayPath(r.opts.WorkingDir, pr.OutputPath)
			}
			for _, diag := range pr.Diagnostics() {
				fileResult.Diagnostics = append(fileResult.Diagnostics, NewJSONDiagnostic(diag))
			}
			for _, catErr := range pr.Errors() {
				fileResult.Errors = append(fileResult.Errors, catErr.Error())
			}
		}

		output.Files = append(output.Files, fileResult)
	}

	return output
}
