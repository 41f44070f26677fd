package config

import (
	"bytes"
	"fmt"
	"strings"
)

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	ID          string
	Codes       []string
	Description string
	Severity    Severity
}

// GenerateTemplate creates a commented .pepfix.yml template. Rules are
// listed in the order given.
func GenerateTemplate(rules []RuleInfo) []byte {
	var buf bytes.Buffer

	buf.WriteString(`# pepfix configuration
#
# Settings can also live in pyproject.toml under [tool.pepfix].

# Maximum detect/correct passes per rule category before giving up.
max_passes: 10

# batch: apply every non-overlapping fix in a pass.
# conservative: apply only the first fix per line per pass.
fix_policy: batch

# Report missing whitespace around operators (E225).
strict_operators: false

# Spaces used to replace a tab.
tab_width: 4

# Also check extension-less files with a Python shebang.
detect_shebang: true

# How originals are preserved when fixing: sidecar, copy or none.
backups:
  enabled: true
  mode: sidecar

# File patterns to ignore (doublestar globs).
# ignore:
#   - "venv/**"
#   - "**/migrations/*.py"
`)

	if len(rules) > 0 {
		buf.WriteString("\n# Severity overrides per rule: error, warning or info.\n# severity:\n")
		seen := make(map[string]bool, len(rules))
		for _, rule := range rules {
			if seen[rule.ID] {
				continue
			}
			seen[rule.ID] = true
			fmt.Fprintf(&buf, "#   %s: %s  # %s: %s\n",
				rule.ID, rule.Severity, strings.Join(rule.Codes, ", "), rule.Description)
		}
	}

	return buf.Bytes()
}
