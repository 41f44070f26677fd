package pysrc

import (
	"sort"
	"strings"
)

// Document is an immutable view of a Python file at one point in time.
// Lines follow readlines semantics: a terminator ends a line, and a
// terminated final line is not followed by an empty one.
type Document struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where the terminator begins.
	// For an unterminated final line this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the terminator (or end of file).
	EndOffset int
}

// NewDocument creates a Document from content.
func NewDocument(path string, content []byte) *Document {
	return &Document{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}

// BuildLines constructs line metadata from file content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}

		newlineStart := idx
		if idx > lineStart && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}

		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	if lineStart < len(content) {
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: len(content),
			EndOffset:    len(content),
		})
	}

	return lines
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.Lines)
}

// Info returns the metadata of a 1-based line.
func (d *Document) Info(line int) (LineInfo, bool) {
	if line < 1 || line > len(d.Lines) {
		return LineInfo{}, false
	}
	return d.Lines[line-1], true
}

// Line returns the text of a 1-based line without its terminator.
// Returns "" if the line number is out of range.
func (d *Document) Line(line int) string {
	info, ok := d.Info(line)
	if !ok {
		return ""
	}
	return string(d.Content[info.StartOffset:info.NewlineStart])
}

// Terminator returns the terminator of a 1-based line ("\n", "\r\n" or "").
func (d *Document) Terminator(line int) string {
	info, ok := d.Info(line)
	if !ok {
		return ""
	}
	return string(d.Content[info.NewlineStart:info.EndOffset])
}

// IsBlank reports whether a line contains only whitespace.
func (d *Document) IsBlank(line int) bool {
	return strings.TrimSpace(d.Line(line)) == ""
}

// Offset converts a 1-based line and 0-based column to a byte offset.
// The column may point at the terminator or just past the line.
func (d *Document) Offset(line, col int) (int, bool) {
	info, ok := d.Info(line)
	if !ok || col < 0 {
		return 0, false
	}

	offset := info.StartOffset + col
	if offset > info.EndOffset {
		return 0, false
	}

	return offset, true
}

// HasFinalNewline reports whether the last line ends with a terminator.
// An empty document has no lines and is considered terminated.
func (d *Document) HasFinalNewline() bool {
	if len(d.Lines) == 0 {
		return true
	}
	last := d.Lines[len(d.Lines)-1]
	return last.NewlineStart < last.EndOffset
}

// Newline returns the terminator style of the document: the terminator of
// the first terminated line, or "\n" when no line is terminated.
func (d *Document) Newline() string {
	for i := range d.Lines {
		info := d.Lines[i]
		if info.NewlineStart < info.EndOffset {
			return string(d.Content[info.NewlineStart:info.EndOffset])
		}
	}
	return "\n"
}

// LineAt returns the 1-based line containing the byte offset.
// Offsets at or past the end of the content map to the last line.
func (d *Document) LineAt(offset int) int {
	if len(d.Lines) == 0 {
		return 1
	}
	idx := sort.Search(len(d.Lines), func(i int) bool {
		return d.Lines[i].EndOffset > offset
	})
	if idx == len(d.Lines) {
		return len(d.Lines)
	}
	return idx + 1
}
