package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/pepfix/internal/ui/pretty"
	"github.com/yaklabco/pepfix/pkg/pysrc"
	"github.com/yaklabco/pepfix/pkg/runner"
)

// TextReporter formats results as styled terminal output grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. It returns the number of diagnostics written.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	total := 0
	for _, file := range result.Files {
		total += r.reportFile(file)
	}

	if r.opts.ShowSummary {
		if r.opts.Verbose {
			fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
		} else {
			fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
		}
	}

	return total, nil
}

func (r *TextReporter) reportFile(file runner.FileOutcome) int {
	path := displayPath(r.opts.WorkingDir, file.Path)

	if file.Error != nil {
		fmt.Fprint(r.bw, r.styles.FormatFileError(path, file.Error))
	}
	if file.Result == nil {
		return 0
	}

	diags := file.Result.Diagnostics()
	categoryErrs := file.Result.Errors()
	if len(diags) == 0 && len(categoryErrs) == 0 {
		return 0
	}

	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(diags)))

	var doc *pysrc.Document
	if r.opts.ShowContext {
		doc = pysrc.NewDocument(file.Path, file.Result.Content)
	}

	for _, diag := range diags {
		diag.FilePath = path

		var sourceLine string
		if doc != nil {
			sourceLine = doc.Line(diag.Line)
		}
		fmt.Fprint(r.bw, r.styles.FormatDiagnostic(&diag, r.opts.ShowContext, sourceLine, r.opts.RuleFormat))
	}

	for _, catErr := range categoryErrs {
		fmt.Fprintf(r.bw, "  %s %s\n", r.styles.Warning.Render("!"), r.styles.Message.Render(catErr.Error()))
	}

	fmt.Fprintln(r.bw)
	return len(diags)
}
