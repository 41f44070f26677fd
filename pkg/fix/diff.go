package fix

import (
	"fmt"
	"strings"
)

// Diff represents a unified diff between original and modified content.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	Original []byte
	Modified []byte

	Hunks []DiffHunk

	// Additions and Deletions count added and removed lines.
	Additions int
	Deletions int
}

// DiffHunk represents a single hunk in a unified diff.
type DiffHunk struct {
	// OriginalStart and ModifiedStart are 1-based line numbers.
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int

	Lines []DiffLine
}

// DiffLine represents a single line in a diff hunk.
type DiffLine struct {
	Kind DiffLineKind

	// Content is the line text without the diff prefix or terminator.
	Content string

	// NoNewline marks a final line that has no terminator.
	NoNewline bool
}

// DiffLineKind indicates the type of diff line.
type DiffLineKind int

const (
	// DiffLineContext is an unchanged context line.
	DiffLineContext DiffLineKind = iota

	// DiffLineAdd is a line added in the modified version.
	DiffLineAdd

	// DiffLineRemove is a line removed from the original version.
	DiffLineRemove
)

// contextLines is the number of context lines to show around changes.
const contextLines = 3

// diffText is one line of input. Two lines are equal only when both their
// text and their terminator presence match, so appending a final newline
// shows up as a change.
type diffText struct {
	text string
	eol  bool
}

type diffOp struct {
	kind DiffLineKind
	line diffText
}

// GenerateDiff creates a unified diff between original and modified content.
// Returns nil if there are no changes.
func GenerateDiff(path string, original, modified []byte) *Diff {
	if string(original) == string(modified) {
		return nil
	}

	ops := diffOps(splitLines(original), splitLines(modified))
	hunks := groupIntoHunks(ops)
	if len(hunks) == 0 {
		return nil
	}

	diff := &Diff{
		Path:     path,
		Original: original,
		Modified: modified,
		Hunks:    hunks,
	}
	for _, op := range ops {
		switch op.kind {
		case DiffLineAdd:
			diff.Additions++
		case DiffLineRemove:
			diff.Deletions++
		}
	}

	return diff
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String returns the diff in unified diff format (without the git header).
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", path)
	fmt.Fprintf(&builder, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&builder, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)

		for _, line := range hunk.Lines {
			builder.WriteString(line.Kind.prefix())
			builder.WriteString(line.Content)
			builder.WriteByte('\n')
			if line.NoNewline {
				builder.WriteString("\\ No newline at end of file\n")
			}
		}
	}

	return builder.String()
}

// FullString returns the complete diff including the git header.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

func (k DiffLineKind) prefix() string {
	switch k {
	case DiffLineAdd:
		return "+"
	case DiffLineRemove:
		return "-"
	default:
		return " "
	}
}

func splitLines(content []byte) []diffText {
	if len(content) == 0 {
		return nil
	}

	parts := strings.SplitAfter(string(content), "\n")
	lines := make([]diffText, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		text, eol := strings.CutSuffix(part, "\n")
		lines = append(lines, diffText{text: text, eol: eol})
	}
	return lines
}

// diffOps walks a longest-common-subsequence table to produce the edit
// script. Removals are emitted before additions within a change.
func diffOps(orig, mod []diffText) []diffOp {
	// suffix[i][j] is the LCS length of orig[i:] and mod[j:].
	suffix := make([][]int, len(orig)+1)
	for i := range suffix {
		suffix[i] = make([]int, len(mod)+1)
	}
	for i := len(orig) - 1; i >= 0; i-- {
		for j := len(mod) - 1; j >= 0; j-- {
			if orig[i] == mod[j] {
				suffix[i][j] = suffix[i+1][j+1] + 1
			} else {
				suffix[i][j] = max(suffix[i+1][j], suffix[i][j+1])
			}
		}
	}

	ops := make([]diffOp, 0, len(orig)+len(mod))
	i, j := 0, 0
	for i < len(orig) || j < len(mod) {
		switch {
		case i < len(orig) && j < len(mod) && orig[i] == mod[j]:
			ops = append(ops, diffOp{kind: DiffLineContext, line: orig[i]})
			i++
			j++
		case j >= len(mod) || (i < len(orig) && suffix[i+1][j] >= suffix[i][j+1]):
			ops = append(ops, diffOp{kind: DiffLineRemove, line: orig[i]})
			i++
		default:
			ops = append(ops, diffOp{kind: DiffLineAdd, line: mod[j]})
			j++
		}
	}

	return ops
}

// groupIntoHunks splits the edit script into hunks, merging changes that
// are separated by no more than twice the context size.
func groupIntoHunks(ops []diffOp) []DiffHunk {
	var hunks []DiffHunk

	for start := 0; start < len(ops); {
		for start < len(ops) && ops[start].kind == DiffLineContext {
			start++
		}
		if start == len(ops) {
			break
		}

		end := start
		for idx := start; idx < len(ops); idx++ {
			if ops[idx].kind != DiffLineContext {
				end = idx + 1
				continue
			}
			if idx-end >= contextLines*2 {
				break
			}
		}

		hunks = append(hunks, buildHunk(ops, start, end))
		start = end
	}

	return hunks
}

// buildHunk builds a hunk for the changes in ops[changeStart:changeEnd],
// padded with context.
func buildHunk(ops []diffOp, changeStart, changeEnd int) DiffHunk {
	start := max(changeStart-contextLines, 0)
	end := min(changeEnd+contextLines, len(ops))

	hunk := DiffHunk{OriginalStart: 1, ModifiedStart: 1}
	for _, op := range ops[:start] {
		if op.kind != DiffLineAdd {
			hunk.OriginalStart++
		}
		if op.kind != DiffLineRemove {
			hunk.ModifiedStart++
		}
	}

	for _, op := range ops[start:end] {
		hunk.Lines = append(hunk.Lines, DiffLine{
			Kind:      op.kind,
			Content:   op.line.text,
			NoNewline: !op.line.eol,
		})

		switch op.kind {
		case DiffLineContext:
			hunk.OriginalCount++
			hunk.ModifiedCount++
		case DiffLineRemove:
			hunk.OriginalCount++
		case DiffLineAdd:
			hunk.ModifiedCount++
		}
	}

	// Unified diff convention: an empty side starts at the line before.
	if hunk.OriginalCount == 0 {
		hunk.OriginalStart--
	}
	if hunk.ModifiedCount == 0 {
		hunk.ModifiedStart--
	}

	return hunk
}
