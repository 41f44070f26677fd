package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pepfix/pkg/lint"
)

func TestCatalogue(t *testing.T) {
	t.Parallel()

	first := newFakeRule("first", diagsAt())
	second := newFakeRule("second", diagsAt())

	cat := lint.NewCatalogue(first, nil, second, first)

	require.Equal(t, 3, cat.Len())
	steps := cat.Steps()
	assert.Equal(t, "first", steps[0].ID())
	assert.Equal(t, "second", steps[1].ID())
	assert.Equal(t, "first", steps[2].ID())

	steps[0] = second
	assert.Equal(t, "first", cat.Steps()[0].ID(), "Steps should return a copy")

	assert.Len(t, cat.Rules(), 2)
	assert.Equal(t, []string{"first", "second"}, cat.IDs())

	rule, ok := cat.Lookup("second")
	require.True(t, ok)
	assert.Same(t, second, rule)

	_, ok = cat.Lookup("third")
	assert.False(t, ok)
}

func TestCatalogueResolve(t *testing.T) {
	t.Parallel()

	cat := lint.NewCatalogue(newFakeRule("first", diagsAt()))

	tests := []struct {
		name   string
		key    string
		wantID string
		wantOK bool
	}{
		{name: "by id", key: "first", wantID: "first", wantOK: true},
		{name: "by name", key: "fake first", wantID: "first", wantOK: true},
		{name: "by code", key: "x100", wantID: "first", wantOK: true},
		{name: "unknown", key: "E999", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			id, rule, ok := cat.Resolve(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
			if tt.wantOK {
				assert.NotNil(t, rule)
			}
		})
	}
}
