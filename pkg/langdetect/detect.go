// Package langdetect classifies files as Python sources during discovery.
// It uses go-enry to recognize interpreter lines in extension-less scripts.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Python is the language name go-enry reports for Python sources.
const Python = "Python"

// ProbeSize is the number of leading bytes needed to classify a script by
// its interpreter line.
const ProbeSize = 256

// sourceExtensions are the extensions of files processed as Python source.
var sourceExtensions = map[string]bool{
	".py":  true,
	".pyw": true,
}

// IsPythonSource reports whether path carries a Python source extension.
func IsPythonSource(path string) bool {
	return sourceExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsPythonScript reports whether head starts with a Python interpreter line,
// such as "#!/usr/bin/env python3".
func IsPythonScript(head []byte) bool {
	lang, _ := enry.GetLanguageByShebang(head)
	return lang == Python
}

// IsPython reports whether the file should be processed. Files with an
// extension are judged by it. Extension-less files are judged by their
// interpreter line when detectShebang is set.
func IsPython(path string, head []byte, detectShebang bool) bool {
	if filepath.Ext(path) != "" {
		return IsPythonSource(path)
	}
	return detectShebang && IsPythonScript(head)
}

// IsHidden reports whether the final path element is a dot file or
// directory.
func IsHidden(path string) bool {
	base := filepath.Base(filepath.Clean(path))
	if base == "." || base == ".." {
		return false
	}
	return enry.IsDotFile(base)
}
