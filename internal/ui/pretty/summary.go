package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/pepfix/pkg/runner"
)

const summaryDividerWidth = 40

// plural returns word with an "s" appended unless n is 1.
func plural(n int, word string) string {
	if n == 1 {
		return strconv.Itoa(n) + " " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "5 issues (2 errors, 3 warnings) in 2 files, 4 fixed in 1 file".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var parts []string

	if stats.DiagnosticsTotal == 0 {
		parts = append(parts, s.Success.Render("No issues found")+
			s.Dim.Render(" ("+plural(stats.FilesProcessed, "file")+" checked)"))
	} else {
		var bySeverity []string
		if n := stats.DiagnosticsBySeverity["error"]; n > 0 {
			bySeverity = append(bySeverity, s.Error.Render(plural(n, "error")))
		}
		if n := stats.DiagnosticsBySeverity["warning"]; n > 0 {
			bySeverity = append(bySeverity, s.Warning.Render(plural(n, "warning")))
		}
		if n := stats.DiagnosticsBySeverity["info"]; n > 0 {
			bySeverity = append(bySeverity, s.Info.Render(fmt.Sprintf("%d info", n)))
		}

		total := plural(stats.DiagnosticsTotal, "issue")
		if len(bySeverity) > 0 {
			total += " (" + strings.Join(bySeverity, ", ") + ")"
		}
		parts = append(parts, total+" in "+plural(stats.FilesWithIssues, "file"))
	}

	if stats.DiagnosticsFixed > 0 {
		parts = append(parts, s.Success.Render(
			strconv.Itoa(stats.DiagnosticsFixed)+" fixed in "+plural(stats.FilesModified, "file")))
	}
	if stats.CategoryFailures > 0 {
		parts = append(parts, s.Warning.Render(plural(stats.CategoryFailures, "category failure")))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(plural(stats.FilesErrored, "file")+" failed"))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, style func(...string) string, value int) {
		fmt.Fprintf(&builder, "  %-19s%s\n", label+":", style(strconv.Itoa(value)))
	}

	builder.WriteString("\n" + s.SummaryTitle.Render("Summary") + "\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")

	row("Files checked", s.SummaryValue.Render, stats.FilesProcessed)
	if stats.FilesWithIssues > 0 {
		row("Files with issues", s.Failure.Render, stats.FilesWithIssues)
	}
	if stats.FilesModified > 0 {
		row("Files modified", s.Success.Render, stats.FilesModified)
	}
	if stats.FilesErrored > 0 {
		row("Files failed", s.Failure.Render, stats.FilesErrored)
	}
	builder.WriteString("\n")

	row("Total issues", s.SummaryValue.Render, stats.DiagnosticsTotal)
	if n := stats.DiagnosticsBySeverity["error"]; n > 0 {
		row("  Errors", s.Error.Render, n)
	}
	if n := stats.DiagnosticsBySeverity["warning"]; n > 0 {
		row("  Warnings", s.Warning.Render, n)
	}
	if n := stats.DiagnosticsBySeverity["info"]; n > 0 {
		row("  Info", s.Info.Render, n)
	}
	if stats.DiagnosticsFixed > 0 {
		row("Fixed", s.Success.Render, stats.DiagnosticsFixed)
	}
	if stats.CategoryFailures > 0 {
		row("Category failures", s.Warning.Render, stats.CategoryFailures)
	}
	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Run aborted on some files"))
	case stats.DiagnosticsBySeverity["error"] > 0:
		builder.WriteString(s.Failure.Render("Check failed with errors"))
	case stats.DiagnosticsTotal > 0:
		builder.WriteString(s.Warning.Render("Check completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Check passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
