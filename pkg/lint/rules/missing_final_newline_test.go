package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingFinalNewlineRule(t *testing.T) {
	t.Parallel()

	rule := NewMissingFinalNewlineRule()
	assert.False(t, rule.RerunUntilClean())

	runRuleCases(t, rule, []ruleCase{
		{
			name:  "terminated",
			input: "x = 1\n",
		},
		{
			name:  "empty file",
			input: "",
		},
		{
			name:        "unterminated",
			input:       "x = 1\nreturn x",
			wantCodes:   []string{"W292"},
			wantColumns: []int{8},
			wantFix:     "x = 1\nreturn x\n",
		},
		{
			name:      "crlf document",
			input:     "x = 1\r\ny = 2",
			wantCodes: []string{"W292"},
			wantFix:   "x = 1\r\ny = 2\r\n",
		},
	})
}
