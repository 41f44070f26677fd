package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pepfix/pkg/lint"
)

func TestNewCatalogueOrder(t *testing.T) {
	t.Parallel()

	cat := NewCatalogue(lint.DefaultOptions())

	ids := make([]string, 0, cat.Len())
	for _, rule := range cat.Steps() {
		ids = append(ids, rule.ID())
	}
	assert.Equal(t, []string{
		"trailing-whitespace",
		"tabs",
		"extraneous-whitespace",
		"missing-whitespace",
		"whitespace-before-parameters",
		"whitespace-around-operators",
		"import-placement",
		"multiple-imports",
		"blank-lines",
		"trailing-whitespace",
		"missing-final-newline",
	}, ids)

	assert.Len(t, cat.Rules(), 10)

	rule, ok := cat.Lookup("blank-lines")
	require.True(t, ok)
	assert.Equal(t, []string{"E301", "E302"}, rule.Codes())

	_, ok = cat.Lookup("line-length")
	assert.False(t, ok)
}

func TestNewCatalogueOptions(t *testing.T) {
	t.Parallel()

	cat := NewCatalogue(lint.Options{TabWidth: 2, StrictOperators: true})

	rule, ok := cat.Lookup("whitespace-around-operators")
	require.True(t, ok)
	assert.Contains(t, rule.Codes(), "E225")

	fixed := converge(t, cat.Steps()[1], "\tx = 1\n")
	assert.Equal(t, "  x = 1\n", fixed)
}
