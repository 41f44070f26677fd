package rules

import "regexp"

// Patterns holds the compiled expressions shared by the line categories.
type Patterns struct {
	// Extraneous matches an opening bracket followed by whitespace, or
	// whitespace followed by a closing bracket or separator.
	Extraneous *regexp.Regexp

	// BeforeParameters matches a word, whitespace and an opening parenthesis.
	BeforeParameters *regexp.Regexp

	// OperatorSpacing matches an operator with the whitespace around it.
	OperatorSpacing *regexp.Regexp

	// MultipleImports matches an import statement naming several modules.
	MultipleImports *regexp.Regexp

	// Encoding matches a PEP 263 source encoding declaration.
	Encoding *regexp.Regexp
}

// NewPatterns compiles the shared patterns.
func NewPatterns() *Patterns {
	return &Patterns{
		Extraneous:       regexp.MustCompile(`[\[({][ \t]|[ \t][\]}),;:]`),
		BeforeParameters: regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)([ \t]+)\(`),
		OperatorSpacing:  regexp.MustCompile(`[^,\s](\s*)(?:[-+*/|!<=>%&^]+|:=)(\s*)`),
		MultipleImports:  regexp.MustCompile(`^\s*import\s+[^#]*,[^#]*$`),
		Encoding:         regexp.MustCompile(`^[ \t\f]*#.*?coding[:=][ \t]*[-\w.]+`),
	}
}

// keywords are the names that may precede an opening parenthesis without
// making a call. Soft keywords are included.
//
//nolint:gochecknoglobals // read-only lookup table
var keywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
	"match": true, "case": true, "type": true, "_": true,
}

// IsKeyword reports whether name is a Python keyword or soft keyword.
func IsKeyword(name string) bool {
	return keywords[name]
}
