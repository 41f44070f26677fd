package lint

import "github.com/yaklabco/pepfix/pkg/config"

// BaseRule provides the metadata half of the Rule interface and delegates
// detection to a Detector. Embed it in rule implementations, which then
// only need to provide Correct.
//
// Fields are unexported to avoid stutter and name collisions with interface methods.
type BaseRule struct {
	id       string
	name     string
	desc     string
	codes    []string
	severity config.Severity
	single   bool
	detector Detector
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(id, name, desc string, codes []string, severity config.Severity, detector Detector) BaseRule {
	return BaseRule{
		id:       id,
		name:     name,
		desc:     desc,
		codes:    codes,
		severity: severity,
		detector: detector,
	}
}

// SingleShot returns a copy of the rule that is corrected at most once per
// category step.
func (r BaseRule) SingleShot() BaseRule {
	r.single = true
	return r
}

// ID returns the category identifier.
func (r *BaseRule) ID() string {
	return r.id
}

// Name returns the human-readable name of the rule.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns a detailed description of what the rule checks.
func (r *BaseRule) Description() string {
	return r.desc
}

// Codes returns the violation codes the rule emits.
func (r *BaseRule) Codes() []string {
	return r.codes
}

// DefaultSeverity returns the default severity for this rule.
func (r *BaseRule) DefaultSeverity() config.Severity {
	if r.severity == "" {
		return config.SeverityWarning
	}
	return r.severity
}

// RerunUntilClean reports whether the rule is re-run until clean.
func (r *BaseRule) RerunUntilClean() bool {
	return !r.single
}

// Detect delegates to the rule's detector.
func (r *BaseRule) Detect(rc *RuleContext) ([]Diagnostic, error) {
	if r.detector == nil {
		return nil, nil
	}
	return r.detector.Detect(rc)
}
