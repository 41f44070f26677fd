package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pepfix/internal/ui/pretty"
	"github.com/yaklabco/pepfix/pkg/lint"
	"github.com/yaklabco/pepfix/pkg/lint/rules"
)

func TestWrapWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{name: "empty", text: "", width: 40, want: nil},
		{name: "fits", text: "one two three", width: 40, want: []string{"one two three"}},
		{
			name:  "wraps",
			text:  "aaaa bbbb cccc dddd eeee ffff gggg",
			width: 20,
			want:  []string{"aaaa bbbb cccc dddd", "eeee ffff gggg"},
		},
		{
			name:  "minimum width",
			text:  "aaaa bbbb cccc dddd eeee",
			width: 5,
			want:  []string{"aaaa bbbb cccc dddd", "eeee"},
		},
		{
			name:  "long word",
			text:  "x " + strings.Repeat("y", 25) + " z",
			width: 20,
			want:  []string{"x", strings.Repeat("y", 25), "z"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, wrapWords(tt.text, tt.width))
		})
	}
}

func TestOutputWidth_NotTerminal(t *testing.T) {
	t.Parallel()

	assert.Equal(t, defaultRulesWidth, outputWidth(&bytes.Buffer{}))
}

func TestWriteRulesText_WrapsDescriptions(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	writeRulesText(&buf, rules.NewCatalogue(lint.DefaultOptions()), pretty.NewStyles(false), 40)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Greater(t, len(lines), 11)
	for _, line := range lines {
		if strings.HasPrefix(line, "      ") && len(strings.Fields(line)) > 1 {
			assert.LessOrEqual(t, len(line), 40, line)
		}
	}
}

func TestTemplateRules(t *testing.T) {
	t.Parallel()

	infos := templateRules()
	require.Len(t, infos, 10, "each category once")
	assert.Equal(t, "trailing-whitespace", infos[0].ID)
	assert.Equal(t, "missing-final-newline", infos[len(infos)-1].ID)
}
