package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/pepfix/pkg/langdetect"
)

func TestIsPython(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		path          string
		head          string
		detectShebang bool
		expected      bool
	}{
		{name: "py extension", path: "pkg/mod.py", expected: true},
		{name: "upper case extension", path: "MOD.PY", expected: true},
		{name: "windowed script", path: "gui.pyw", expected: true},
		{name: "other extension", path: "notes.txt", head: "#!/usr/bin/env python\n", detectShebang: true},
		{name: "env shebang", path: "bin/tool", head: "#!/usr/bin/env python3\nprint(1)\n", detectShebang: true, expected: true},
		{name: "direct shebang", path: "bin/tool", head: "#!/usr/bin/python\n", detectShebang: true, expected: true},
		{name: "shebang detection off", path: "bin/tool", head: "#!/usr/bin/env python3\n"},
		{name: "shell script", path: "bin/tool", head: "#!/bin/sh\necho hi\n", detectShebang: true},
		{name: "no shebang", path: "Makefile", head: "all:\n\tgo build\n", detectShebang: true},
		{name: "empty", path: "bin/tool", detectShebang: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, langdetect.IsPython(tt.path, []byte(tt.head), tt.detectShebang))
		})
	}
}

func TestIsHidden(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		expected bool
	}{
		{path: ".git", expected: true},
		{path: "src/.venv", expected: true},
		{path: "src/.hidden.py", expected: true},
		{path: "src/mod.py"},
		{path: "."},
		{path: ".."},
		{path: "./src"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, langdetect.IsHidden(tt.path))
		})
	}
}
