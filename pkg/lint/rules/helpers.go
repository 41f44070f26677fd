package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/pepfix/pkg/fix"
	"github.com/yaklabco/pepfix/pkg/lint"
)

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

// runStart returns the start of the blank run that ends at end.
func runStart(text string, end int) int {
	for end > 0 && isBlank(text[end-1]) {
		end--
	}
	return end
}

// runEnd returns the end of the blank run that starts at start.
func runEnd(text string, start int) int {
	for start < len(text) && isBlank(text[start]) {
		start++
	}
	return start
}

// codeEnd returns the length of code without trailing blanks.
func codeEnd(code string) int {
	return len(strings.TrimRight(code, " \t"))
}

// onlyBlanks reports whether text[:end] holds nothing but indentation.
func onlyBlanks(text string, end int) bool {
	return strings.TrimLeft(text[:end], " \t\f") == ""
}

// replaceSpan returns an edit that replaces columns [start, end) of a line.
func replaceSpan(rc *lint.RuleContext, line, start, end int, newText string) (fix.TextEdit, error) {
	from, ok := rc.Offset(line, start)
	if !ok {
		return fix.TextEdit{}, fmt.Errorf("line %d column %d out of range", line, start)
	}
	to, ok := rc.Offset(line, end)
	if !ok {
		return fix.TextEdit{}, fmt.Errorf("line %d column %d out of range", line, end)
	}
	return fix.TextEdit{StartOffset: from, EndOffset: to, NewText: newText}, nil
}

// collapseRun returns an edit replacing the blank run that covers column col
// with newText.
func collapseRun(rc *lint.RuleContext, diag lint.Diagnostic, newText string) (fix.TextEdit, error) {
	text := rc.Doc.Line(diag.Line)
	if diag.Column < 0 || diag.Column > len(text) {
		return fix.TextEdit{}, fmt.Errorf("%s at line %d: column %d out of range", diag.Code, diag.Line, diag.Column)
	}
	start := runStart(text, diag.Column)
	end := runEnd(text, diag.Column)
	return replaceSpan(rc, diag.Line, start, end, newText)
}
