package lint

import (
	"slices"
	"strings"
)

// Catalogue is the immutable, ordered list of category steps a file goes
// through. A rule may appear at more than one step.
type Catalogue struct {
	steps []Rule
	byID  map[string]Rule
}

// NewCatalogue creates a catalogue that runs the given rules in order.
func NewCatalogue(steps ...Rule) *Catalogue {
	cat := &Catalogue{
		steps: make([]Rule, 0, len(steps)),
		byID:  make(map[string]Rule, len(steps)),
	}
	for _, rule := range steps {
		if rule == nil {
			continue
		}
		cat.steps = append(cat.steps, rule)
		if _, ok := cat.byID[rule.ID()]; !ok {
			cat.byID[rule.ID()] = rule
		}
	}
	return cat
}

// Steps returns the rules in execution order. The returned slice is a copy.
func (c *Catalogue) Steps() []Rule {
	out := make([]Rule, len(c.steps))
	copy(out, c.steps)
	return out
}

// Len returns the number of steps.
func (c *Catalogue) Len() int {
	return len(c.steps)
}

// Lookup returns the rule for a category ID.
func (c *Catalogue) Lookup(id string) (Rule, bool) {
	rule, ok := c.byID[id]
	return rule, ok
}

// Rules returns each distinct rule once, in order of first appearance.
func (c *Catalogue) Rules() []Rule {
	seen := make(map[string]bool, len(c.byID))
	out := make([]Rule, 0, len(c.byID))
	for _, rule := range c.steps {
		if seen[rule.ID()] {
			continue
		}
		seen[rule.ID()] = true
		out = append(out, rule)
	}
	return out
}

// Resolve returns the category ID and rule for a key. The key can be a
// category ID, a rule name or a violation code such as "E302".
func (c *Catalogue) Resolve(key string) (string, Rule, bool) {
	if rule, ok := c.byID[key]; ok {
		return rule.ID(), rule, true
	}
	for _, rule := range c.Rules() {
		if strings.EqualFold(rule.Name(), key) || slices.Contains(rule.Codes(), strings.ToUpper(key)) {
			return rule.ID(), rule, true
		}
	}
	return "", nil, false
}

// IDs returns the distinct category IDs in sorted order.
func (c *Catalogue) IDs() []string {
	ids := make([]string, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
