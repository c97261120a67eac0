// Package categorizer assigns spending categories to canonical vendors by
// evaluating a priority-ordered rule snapshot. The snapshot is loaded once
// per run and never mutated, so categorization is a pure function of
// (vendor, snapshot) and safe for concurrent use.
package categorizer

import (
	"fmt"
	"sort"
	"strings"

	"sitapp/spend-report/internal/models"
)

// Categorizer resolves a canonical vendor to a category name.
type Categorizer struct {
	rules           []models.Rule // sorted: priority desc, RuleID asc
	defaultCategory string
}

// New builds a categorizer over a snapshot of the rule store. Rules are
// copied and sorted by priority descending with RuleID ascending as the
// tie-break, so the first matching rule is always the winning rule and the
// result is reproducible for any input ordering. defaultCategory is returned
// when no rule matches; empty means models.DefaultCategory.
func New(rules []models.Rule, defaultCategory string) *Categorizer {
	if defaultCategory == "" {
		defaultCategory = models.DefaultCategory
	}

	sorted := make([]models.Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority > sorted[j].Priority
		}
		return sorted[i].RuleID < sorted[j].RuleID
	})

	return &Categorizer{rules: sorted, defaultCategory: defaultCategory}
}

// Categorize returns the category for a canonical vendor. A rule matches when
// its VendorPattern is contained in the vendor, case-insensitively. With no
// match the default category is returned, which behaves like a reserved
// priority-1 rule matching every vendor.
func (c *Categorizer) Categorize(vendor string) string {
	v := strings.ToUpper(vendor)

	for _, rule := range c.rules {
		if strings.Contains(v, strings.ToUpper(rule.VendorPattern)) {
			return rule.Category
		}
	}

	return c.defaultCategory
}

// Rules returns the rules in evaluation order.
func (c *Categorizer) Rules() []models.Rule {
	out := make([]models.Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// OverrideWarning flags a rule whose OverrideRuleID points at a rule it does
// not actually outrank. OverrideRuleID is audit metadata: precedence comes
// from Priority alone, so such an override silently never takes effect.
type OverrideWarning struct {
	RuleID             string
	Priority           int
	OverriddenID       string
	OverriddenPriority int
}

func (w OverrideWarning) String() string {
	return fmt.Sprintf("rule %s (priority %d) declares an override of %s (priority %d) but does not outrank it",
		w.RuleID, w.Priority, w.OverriddenID, w.OverriddenPriority)
}

// CheckOverrides returns a warning for every rule whose declared override has
// an equal or higher priority. Advisory only; matching is unaffected.
func (c *Categorizer) CheckOverrides() []OverrideWarning {
	byID := make(map[string]models.Rule, len(c.rules))
	for _, r := range c.rules {
		byID[r.RuleID] = r
	}

	var warnings []OverrideWarning
	for _, r := range c.rules {
		if r.OverrideRuleID == "" {
			continue
		}
		overridden, ok := byID[r.OverrideRuleID]
		if !ok {
			continue
		}
		if r.Priority <= overridden.Priority {
			warnings = append(warnings, OverrideWarning{
				RuleID:             r.RuleID,
				Priority:           r.Priority,
				OverriddenID:       overridden.RuleID,
				OverriddenPriority: overridden.Priority,
			})
		}
	}
	return warnings
}
