package rules

import "testing"

func TestTabsRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, NewTabsRule(4), []ruleCase{
		{
			name:        "tab indentation",
			input:       "if x:\n\treturn 1\n",
			wantCodes:   []string{"W191"},
			wantColumns: []int{0},
			wantFix:     "if x:\n    return 1\n",
		},
		{
			name:  "tab inside string literal",
			input: "s = \"a\tb\"\n",
		},
		{
			name:  "tab inside triple-quoted string",
			input: "s = \"\"\"\n\tindented\n\"\"\"\n",
		},
		{
			name:  "pure comment line",
			input: "\t# comment\n",
		},
		{
			name:        "tab in inline comment",
			input:       "x = 1  #\tnote\n",
			wantCodes:   []string{"W191"},
			wantColumns: []int{8},
			wantFix:     "x = 1  #    note\n",
		},
		{
			name:        "each tab is reported",
			input:       "\t\tx = 1\n",
			wantCodes:   []string{"W191", "W191"},
			wantColumns: []int{0, 1},
			wantFix:     "        x = 1\n",
		},
	})
}

func TestTabsRuleWidth(t *testing.T) {
	t.Parallel()

	runRuleCases(t, NewTabsRule(2), []ruleCase{
		{
			name:      "configured width",
			input:     "\tx\n",
			wantCodes: []string{"W191"},
			wantFix:   "  x\n",
		},
	})
}
