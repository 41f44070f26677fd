package pysrc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pepfix/pkg/pysrc"
)

func scanLines(t *testing.T, src string) []pysrc.LineView {
	t.Helper()
	views := pysrc.Scan(pysrc.NewDocument("t.py", []byte(src)))
	require.NotEmpty(t, views)
	return views
}

func TestScanMasksStringsAndComments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       string
		code      string
		commentAt int
	}{
		{name: "plain code", src: "x = [1, 2]", code: "x = [1, 2]", commentAt: -1},
		{name: "double quoted", src: `s = "a ,b"`, code: `s = "xxxx"`, commentAt: -1},
		{name: "single quoted with escape", src: `s = 'it\'s'`, code: `s = 'xxxxx'`, commentAt: -1},
		{name: "hash in string", src: `s = "#x"  # real`, code: `s = "xx"  `, commentAt: 10},
		{name: "comment only", src: "    # note", code: "    ", commentAt: 4},
		{name: "prefixed string", src: `p = rb"\d"`, code: `p = rb"xx"`, commentAt: -1},
		{name: "one line triple", src: `d = """a"b"""`, code: `d = """xxx"""`, commentAt: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			view := scanLines(t, tt.src)[0]
			assert.Equal(t, tt.code, view.Code)
			assert.Equal(t, tt.commentAt, view.CommentAt)
		})
	}
}

func TestScanTripleQuotedRegion(t *testing.T) {
	t.Parallel()

	views := scanLines(t, "x = '''\n\tinside\n'''\ny = 1\n")
	require.Len(t, views, 4)

	assert.False(t, views[0].InString)
	assert.True(t, views[1].InString)
	assert.True(t, views[1].Continuation)
	assert.Equal(t, "xxxxxxx", views[1].Code)
	assert.True(t, views[2].InString)
	assert.Equal(t, "'''", views[2].Code)
	assert.False(t, views[3].InString)
	assert.False(t, views[3].Continuation)
}

func TestScanBracketDepthAndContinuation(t *testing.T) {
	t.Parallel()

	views := scanLines(t, "f(a,\n  b)\nx = 1 + \\\n    2\ny = 3\n")
	require.Len(t, views, 5)

	assert.Equal(t, 0, views[0].Depth)
	assert.Equal(t, 1, views[1].Depth)
	assert.True(t, views[1].Continuation)
	assert.False(t, views[2].Continuation)
	assert.True(t, views[3].Continuation)
	assert.False(t, views[4].Continuation)
}

func TestLineViewPredicates(t *testing.T) {
	t.Parallel()

	views := scanLines(t, "   \n# c\nx = 1\n")
	assert.True(t, views[0].IsBlank())
	assert.True(t, views[1].IsComment())
	assert.False(t, views[1].HasCode())
	assert.True(t, views[2].HasCode())
}

func TestIndentWidth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, pysrc.IndentWidth("x"))
	assert.Equal(t, 4, pysrc.IndentWidth("    x"))
	assert.Equal(t, 8, pysrc.IndentWidth("\tx"))
	assert.Equal(t, 8, pysrc.IndentWidth("  \tx"))
	assert.Equal(t, "  \t", pysrc.LeadingWhitespace("  \tx = 1"))
}
