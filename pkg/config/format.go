package config

// FormatRuleRef formats a diagnostic's rule reference from its violation
// code and rule category. Falls back to whichever part is present.
func FormatRuleRef(format RuleFormat, code, ruleName string) string {
	switch {
	case code == "":
		return ruleName
	case ruleName == "":
		return code
	}

	switch format {
	case RuleFormatCode:
		return code
	case RuleFormatName:
		return ruleName
	default:
		return code + "/" + ruleName
	}
}
