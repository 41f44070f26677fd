package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/pepfix/pkg/fix"
)

func TestApplyEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		edits   []fix.TextEdit
		want    string
	}{
		{
			name:    "no edits returns original",
			content: "x = 1\n",
			want:    "x = 1\n",
		},
		{
			name:    "delete trailing whitespace",
			content: "x = 1   \n",
			edits:   []fix.TextEdit{{StartOffset: 5, EndOffset: 8}},
			want:    "x = 1\n",
		},
		{
			name:    "insert space after comma",
			content: "f(a,b)\n",
			edits:   []fix.TextEdit{{StartOffset: 4, EndOffset: 4, NewText: " "}},
			want:    "f(a, b)\n",
		},
		{
			name:    "several edits computed against original offsets",
			content: "a  =  1\n",
			edits: []fix.TextEdit{
				{StartOffset: 1, EndOffset: 3, NewText: " "},
				{StartOffset: 4, EndOffset: 6, NewText: " "},
			},
			want: "a = 1\n",
		},
		{
			name:    "append final newline",
			content: "return x",
			edits:   []fix.TextEdit{{StartOffset: 8, EndOffset: 8, NewText: "\n"}},
			want:    "return x\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := fix.ApplyEdits([]byte(tt.content), tt.edits)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestApplyEdits_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	content := []byte("import os, sys\n")
	fix.ApplyEdits(content, []fix.TextEdit{{StartOffset: 9, EndOffset: 14, NewText: "\nimport sys"}})
	assert.Equal(t, "import os, sys\n", string(content))
}

func TestEditBuilder(t *testing.T) {
	t.Parallel()

	builder := fix.NewEditBuilder()
	builder.Insert(3, "  ")
	builder.Delete(5, 7)
	builder.ReplaceRange(8, 9, "\t")

	assert.Equal(t, []fix.TextEdit{
		{StartOffset: 3, EndOffset: 3, NewText: "  "},
		{StartOffset: 5, EndOffset: 7},
		{StartOffset: 8, EndOffset: 9, NewText: "\t"},
	}, builder.Edits)
	assert.True(t, builder.Edits[0].IsInsert())
	assert.Equal(t, -2, builder.Edits[1].Delta())
}
