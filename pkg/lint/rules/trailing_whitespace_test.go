package rules

import "testing"

func TestTrailingWhitespaceRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, NewTrailingWhitespaceRule(), []ruleCase{
		{
			name:  "clean",
			input: "x = 1\ny = 2\n",
		},
		{
			name:        "trailing spaces",
			input:       "x = 1  \n",
			wantCodes:   []string{"W291"},
			wantColumns: []int{5},
			wantFix:     "x = 1\n",
		},
		{
			name:        "whitespace only line",
			input:       "def f():\n    \n    return 1\n",
			wantCodes:   []string{"W293"},
			wantColumns: []int{0},
			wantFix:     "def f():\n\n    return 1\n",
		},
		{
			name:        "crlf terminators are kept",
			input:       "x = 1 \t\r\ny = 2\r\n",
			wantCodes:   []string{"W291"},
			wantColumns: []int{5},
			wantFix:     "x = 1\r\ny = 2\r\n",
		},
		{
			name:        "unterminated last line",
			input:       "x = 1  ",
			wantCodes:   []string{"W291"},
			wantColumns: []int{5},
			wantFix:     "x = 1",
		},
		{
			name:        "form feed and vertical tab",
			input:       "x = 1\f\ny = 2\v\n",
			wantCodes:   []string{"W291", "W291"},
			wantColumns: []int{5, 5},
			wantFix:     "x = 1\ny = 2\n",
		},
	})
}
