// Package pretty renders diagnostics, diffs and run summaries for the terminal.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ANSI 256 palette indices.
const (
	colorRed    = lipgloss.Color("9")
	colorGreen  = lipgloss.Color("10")
	colorYellow = lipgloss.Color("11")
	colorBlue   = lipgloss.Color("12")
	colorCyan   = lipgloss.Color("14")
	colorGray   = lipgloss.Color("8")
	colorSilver = lipgloss.Color("7")
)

// Styles holds the lipgloss styles used by the reporters and CLI commands.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	FilePath   lipgloss.Style
	Location   lipgloss.Style
	Code       lipgloss.Style
	RuleID     lipgloss.Style
	Message    lipgloss.Style
	Detail     lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates the style set. With color disabled every style renders
// its input unchanged.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return plainStyles()
	}

	base := lipgloss.NewStyle()
	fg := func(c lipgloss.Color) lipgloss.Style { return base.Foreground(c) }

	return &Styles{
		Error:   fg(colorRed).Bold(true),
		Warning: fg(colorYellow).Bold(true),
		Info:    fg(colorBlue).Bold(true),

		FilePath:   base.Bold(true),
		Location:   fg(colorGray),
		Code:       fg(colorCyan).Bold(true),
		RuleID:     fg(colorGray),
		Message:    base,
		Detail:     fg(colorGray).Italic(true),
		SourceLine: fg(colorSilver),
		Caret:      fg(colorRed),

		DiffHeader:  base.Bold(true),
		DiffHunk:    fg(colorCyan),
		DiffAdd:     fg(colorGreen),
		DiffRemove:  fg(colorRed),
		DiffContext: fg(colorGray),

		SummaryTitle: base.Bold(true),
		SummaryValue: base,
		Success:      fg(colorGreen).Bold(true),
		Failure:      fg(colorRed).Bold(true),

		Dim:  fg(colorGray),
		Bold: base.Bold(true),
	}
}

func plainStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error: plain, Warning: plain, Info: plain,
		FilePath: plain, Location: plain, Code: plain, RuleID: plain,
		Message: plain, Detail: plain, SourceLine: plain, Caret: plain,
		DiffHeader: plain, DiffHunk: plain, DiffAdd: plain, DiffRemove: plain, DiffContext: plain,
		SummaryTitle: plain, SummaryValue: plain, Success: plain, Failure: plain,
		Dim: plain, Bold: plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
