package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/pepfix/internal/ui/pretty"
	"github.com/yaklabco/pepfix/pkg/fix"
	"github.com/yaklabco/pepfix/pkg/runner"
)

// DiffReporter writes the pending changes of a dry run as git-style
// unified diffs.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. It returns the number of files with changes.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var files, additions, deletions int

	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprint(r.bw, r.styles.FormatFileError(displayPath(r.opts.WorkingDir, file.Path), file.Error))
			continue
		}
		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		diff := *file.Result.Diff
		diff.Path = displayPath(r.opts.WorkingDir, diff.Path)

		files++
		additions += diff.Additions
		deletions += diff.Deletions
		r.writeDiff(&diff)
	}

	if files > 0 && r.opts.ShowSummary {
		r.writeSummary(files, additions, deletions)
	}

	return files, nil
}

func (r *DiffReporter) writeDiff(diff *fix.Diff) {
	fmt.Fprintln(r.bw, r.styles.DiffHeader.Render(diff.GitHeader()))

	for line := range strings.SplitSeq(strings.TrimSuffix(diff.String(), "\n"), "\n") {
		fmt.Fprintln(r.bw, r.styleLine(line))
	}

	fmt.Fprintln(r.bw)
}

func (r *DiffReporter) styleLine(line string) string {
	switch {
	case strings.HasPrefix(line, "@@"):
		return r.styles.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return r.styles.DiffHeader.Render(line)
	case strings.HasPrefix(line, "+"):
		return r.styles.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		return r.styles.DiffRemove.Render(line)
	default:
		return r.styles.DiffContext.Render(line)
	}
}

func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	parts := []string{countWord(files, "file", "files") + " changed"}
	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(countWord(additions, "insertion", "insertions")+"(+)"))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(countWord(deletions, "deletion", "deletions")+"(-)"))
	}
	fmt.Fprintln(r.bw, strings.Join(parts, ", "))
}

func countWord(n int, singular, pluralForm string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, pluralForm)
}
