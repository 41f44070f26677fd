package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pepfix/internal/ui/pretty"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	for name, render := range map[string]func(...string) string{
		"Bold":     styles.Bold.Render,
		"Error":    styles.Error.Render,
		"Code":     styles.Code.Render,
		"DiffAdd":  styles.DiffAdd.Render,
		"Success":  styles.Success.Render,
		"FilePath": styles.FilePath.Render,
	} {
		assert.Equal(t, "text", render("text"), "%s should not add formatting", name)
	}
}

func TestNewStyles_ColorEnabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true)
	require.NotNil(t, styles)

	// Lipgloss may drop ANSI codes off a TTY, so only the text is checked.
	assert.Contains(t, styles.Error.Render("x"), "x")
	assert.Contains(t, styles.DiffHunk.Render("x"), "x")
	assert.Contains(t, styles.Detail.Render("x"), "x")
}

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	t.Setenv("NO_COLOR", "")

	assert.True(t, pretty.IsColorEnabled("always", &buf))
	assert.False(t, pretty.IsColorEnabled("never", os.Stdout))
	assert.False(t, pretty.IsColorEnabled("auto", &buf), "a buffer is not a TTY")
	assert.False(t, pretty.IsColorEnabled("", &buf))
	assert.False(t, pretty.IsColorEnabled("unknown", &buf))
}

func TestIsColorEnabled_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
	assert.True(t, pretty.IsColorEnabled("always", os.Stdout), "always overrides NO_COLOR")
}
