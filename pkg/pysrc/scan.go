package pysrc

import "strings"

// MaskByte replaces string literal interiors in LineView.Code.
const MaskByte = 'x'

// LineView is the lexical view of one physical line.
type LineView struct {
	// Number is the 1-based line number.
	Number int

	// Text is the line without its terminator.
	Text string

	// Code is Text up to the comment (if any) with string literal interiors
	// replaced by MaskByte. Quote characters are kept. Columns in Code match
	// columns in Text.
	Code string

	// CommentAt is the column of the '#' starting a comment, or -1.
	CommentAt int

	// InString is true when the line starts inside a string literal.
	InString bool

	// Depth is the bracket nesting depth at the start of the line.
	Depth int

	// Continuation is true when the line continues the previous logical line
	// (open brackets, a backslash continuation or a multi-line string).
	Continuation bool
}

// IsBlank reports whether the line is empty or whitespace only.
func (v LineView) IsBlank() bool {
	return strings.TrimSpace(v.Text) == ""
}

// IsComment reports whether the line holds nothing but a comment.
func (v LineView) IsComment() bool {
	return !v.InString && v.CommentAt >= 0 && strings.TrimSpace(v.Code) == ""
}

// HasCode reports whether the line carries code outside comments.
func (v LineView) HasCode() bool {
	return strings.TrimSpace(v.Code) != ""
}

// Scan builds the lexical view of every line in the document.
func Scan(doc *Document) []LineView {
	return scan(doc).views
}

type openBracket struct {
	char byte
	line int
}

type scanResult struct {
	views []LineView
	err   *SyntaxError
}

// scanner carries lexical state across lines.
type scanner struct {
	quote       byte
	triple      bool
	stringLine  int
	brackets    []openBracket
	backslash   bool
	firstError  *SyntaxError
	stringCarry bool
}

func scan(doc *Document) scanResult {
	state := &scanner{}
	views := make([]LineView, 0, doc.LineCount())

	for n := 1; n <= doc.LineCount(); n++ {
		views = append(views, state.line(n, doc.Line(n)))
	}

	if state.firstError == nil {
		switch {
		case state.quote != 0 && state.triple:
			state.fail(state.stringLine, "unterminated triple-quoted string literal")
		case len(state.brackets) > 0:
			open := state.brackets[0]
			state.fail(open.line, "'"+string(open.char)+"' was never closed")
		}
	}

	return scanResult{views: views, err: state.firstError}
}

func (s *scanner) fail(line int, msg string) {
	if s.firstError == nil {
		s.firstError = &SyntaxError{Line: line, Msg: msg}
	}
}

func (s *scanner) line(number int, text string) LineView {
	view := LineView{
		Number:       number,
		Text:         text,
		CommentAt:    -1,
		InString:     s.quote != 0,
		Depth:        len(s.brackets),
		Continuation: s.quote != 0 || len(s.brackets) > 0 || s.backslash,
	}
	s.backslash = false

	code := []byte(text)
	end := len(code)

	for i := 0; i < len(code); {
		char := code[i]

		if s.quote != 0 {
			i = s.inString(code, i)
			continue
		}

		switch char {
		case '#':
			view.CommentAt = i
			end = i
			i = len(code)
			continue
		case '\'', '"':
			s.quote = char
			s.stringLine = number
			s.triple = i+2 < len(code) && code[i+1] == char && code[i+2] == char
			if s.triple {
				i += 3
			} else {
				i++
			}
			continue
		case '(', '[', '{':
			s.brackets = append(s.brackets, openBracket{char: char, line: number})
		case ')', ']', '}':
			if len(s.brackets) == 0 || !matches(s.brackets[len(s.brackets)-1].char, char) {
				s.fail(number, "unmatched '"+string(char)+"'")
				if len(s.brackets) > 0 {
					s.brackets = s.brackets[:len(s.brackets)-1]
				}
			} else {
				s.brackets = s.brackets[:len(s.brackets)-1]
			}
		case '\\':
			if i == len(code)-1 {
				s.backslash = true
			}
		}
		i++
	}

	carry := s.stringCarry
	s.stringCarry = false
	if s.quote != 0 && !s.triple && !carry {
		s.fail(s.stringLine, "unterminated string literal")
		s.quote = 0
	}

	view.Code = string(code[:end])
	return view
}

// inString advances over string content starting at i, masking it.
// It returns the index of the next unprocessed byte.
func (s *scanner) inString(code []byte, i int) int {
	char := code[i]

	if char == '\\' {
		code[i] = MaskByte
		if i+1 < len(code) {
			code[i+1] = MaskByte
			return i + 2
		}
		// Escaped line end continues a single-quoted string.
		s.stringCarry = true
		return i + 1
	}

	if char == s.quote {
		if !s.triple {
			s.quote = 0
			return i + 1
		}
		if i+2 < len(code) && code[i+1] == s.quote && code[i+2] == s.quote {
			s.quote = 0
			s.triple = false
			return i + 3
		}
	}

	code[i] = MaskByte
	return i + 1
}

func matches(open, closing byte) bool {
	switch open {
	case '(':
		return closing == ')'
	case '[':
		return closing == ']'
	case '{':
		return closing == '}'
	}
	return false
}

// IndentWidth returns the indentation width of a line, expanding tabs to
// the next multiple of eight.
func IndentWidth(text string) int {
	width := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case ' ':
			width++
		case '\t':
			width = (width/8 + 1) * 8
		case '\f':
			width = 0
		default:
			return width
		}
	}
	return width
}

// LeadingWhitespace returns the indentation prefix of a line.
func LeadingWhitespace(text string) string {
	return text[:len(text)-len(strings.TrimLeft(text, " \t\f"))]
}
