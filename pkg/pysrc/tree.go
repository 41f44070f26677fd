package pysrc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSyntax indicates the document could not be parsed into a statement tree.
var ErrSyntax = errors.New("syntax error")

// SyntaxError locates a parse failure.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Unwrap allows errors.Is(err, ErrSyntax).
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// Kind classifies a statement.
type Kind uint8

// Statement kinds.
const (
	KindOther Kind = iota
	KindImport
	KindFromImport
	KindDef
	KindClass
	KindDecorator
)

var kindNames = map[Kind]string{
	KindOther:      "Other",
	KindImport:     "Import",
	KindFromImport: "FromImport",
	KindDef:        "Def",
	KindClass:      "Class",
	KindDecorator:  "Decorator",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Stmt is one logical line of the module, with the block it opens.
type Stmt struct {
	Kind Kind

	// Line and EndLine are the 1-based physical lines of the logical line.
	Line    int
	EndLine int

	// Indent is the indentation width of the first physical line.
	Indent int

	// Name is the defined name for Def and Class statements.
	Name string

	// Code is the masked code of the logical line, physical lines joined
	// with a single space and trimmed.
	Code string

	// Header is true when the statement opens an indented block.
	Header bool

	Parent     *Stmt
	Children   []*Stmt
	Decorators []*Stmt
}

// IsImport reports whether the statement is an import or from-import.
func (s *Stmt) IsImport() bool {
	return s.Kind == KindImport || s.Kind == KindFromImport
}

// IsDefinition reports whether the statement is a def or class.
func (s *Stmt) IsDefinition() bool {
	return s.Kind == KindDef || s.Kind == KindClass
}

// FirstLine returns the first line of the statement including decorators.
func (s *Stmt) FirstLine() int {
	if len(s.Decorators) > 0 {
		return s.Decorators[0].Line
	}
	return s.Line
}

// InsideDefinition reports whether any enclosing statement is a def or class.
func (s *Stmt) InsideDefinition() bool {
	for p := s.Parent; p != nil; p = p.Parent {
		if p.IsDefinition() {
			return true
		}
	}
	return false
}

// IsDocstring reports whether the statement is a bare string literal.
func (s *Stmt) IsDocstring() bool {
	if s.Kind != KindOther {
		return false
	}
	code := strings.TrimLeft(s.Code, "rRuUbB")
	return strings.HasPrefix(code, "\"") || strings.HasPrefix(code, "'")
}

// Module is the statement tree of a document.
type Module struct {
	Doc  *Document
	Body []*Stmt
}

// Parse builds the statement tree of the document.
// It returns a *SyntaxError when brackets, strings or indentation are
// inconsistent.
func Parse(doc *Document) (*Module, error) {
	scanned := scan(doc)
	if scanned.err != nil {
		return nil, scanned.err
	}

	p := &treeBuilder{
		module:  &Module{Doc: doc},
		indents: []int{0},
		parents: []*Stmt{nil},
	}

	views := scanned.views
	for i := 0; i < len(views); {
		view := views[i]
		if view.Continuation || !view.HasCode() {
			i++
			continue
		}

		end := i
		for end+1 < len(views) && views[end+1].Continuation {
			end++
		}

		if err := p.add(views[i : end+1]); err != nil {
			return nil, err
		}
		i = end + 1
	}

	if p.expectBlock {
		return nil, &SyntaxError{Line: doc.LineCount(), Msg: "expected an indented block"}
	}

	return p.module, nil
}

type treeBuilder struct {
	module      *Module
	indents     []int
	parents     []*Stmt
	expectBlock bool
	lastHeader  *Stmt
	decorators  []*Stmt
}

func (p *treeBuilder) add(views []LineView) error {
	first := views[0]
	indent := IndentWidth(first.Text)
	top := p.indents[len(p.indents)-1]

	switch {
	case p.expectBlock:
		if indent <= top {
			return &SyntaxError{Line: first.Number, Msg: "expected an indented block"}
		}
		p.indents = append(p.indents, indent)
		p.parents = append(p.parents, p.lastHeader)
		p.expectBlock = false
	case indent > top:
		return &SyntaxError{Line: first.Number, Msg: "unexpected indent"}
	case indent < top:
		for len(p.indents) > 1 && p.indents[len(p.indents)-1] > indent {
			p.indents = p.indents[:len(p.indents)-1]
			p.parents = p.parents[:len(p.parents)-1]
		}
		if p.indents[len(p.indents)-1] != indent {
			return &SyntaxError{Line: first.Number, Msg: "unindent does not match any outer indentation level"}
		}
	}

	stmt := newStmt(views, indent)
	parent := p.parents[len(p.parents)-1]
	stmt.Parent = parent
	if parent == nil {
		p.module.Body = append(p.module.Body, stmt)
	} else {
		parent.Children = append(parent.Children, stmt)
	}

	switch {
	case stmt.Kind == KindDecorator:
		p.decorators = append(p.decorators, stmt)
	case stmt.IsDefinition():
		stmt.Decorators = p.decorators
		p.decorators = nil
	default:
		p.decorators = nil
	}

	if stmt.Header {
		p.expectBlock = true
		p.lastHeader = stmt
	}

	return nil
}

func newStmt(views []LineView, indent int) *Stmt {
	parts := make([]string, 0, len(views))
	for _, view := range views {
		if part := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(view.Code), "\\")); part != "" {
			parts = append(parts, part)
		}
	}
	code := strings.Join(parts, " ")

	stmt := &Stmt{
		Line:    views[0].Number,
		EndLine: views[len(views)-1].Number,
		Indent:  indent,
		Code:    code,
		Header:  strings.HasSuffix(code, ":"),
	}

	words := strings.Fields(code)
	keyword := ""
	if len(words) > 0 {
		keyword = words[0]
	}
	if keyword == "async" && len(words) > 1 {
		keyword = words[1]
		words = words[1:]
	}

	switch {
	case strings.HasPrefix(code, "@"):
		stmt.Kind = KindDecorator
	case keyword == "import":
		stmt.Kind = KindImport
	case keyword == "from" && strings.Contains(code, " import"):
		stmt.Kind = KindFromImport
	case keyword == "def" && len(words) > 1:
		stmt.Kind = KindDef
		stmt.Name = identifier(words[1])
	case keyword == "class" && len(words) > 1:
		stmt.Kind = KindClass
		stmt.Name = identifier(words[1])
	}

	return stmt
}

// identifier returns the leading identifier of s.
func identifier(s string) string {
	for i := 0; i < len(s); i++ {
		if !isWordByte(s[i]) {
			return s[:i]
		}
	}
	return s
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}
