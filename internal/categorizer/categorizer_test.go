package categorizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sitapp/spend-report/internal/models"
	"sitapp/spend-report/internal/normalizer"
)

func TestNormalizeThenCategorize(t *testing.T) {
	norm := normalizer.Default()
	c := New([]models.Rule{
		rule("G001", 100, "KROGER", "Groceries & Markets"),
		rule("A002", 110, "KROGER FUEL", "Auto & Gas"),
	}, "")

	assert.Equal(t, "Groceries & Markets", c.Categorize(norm.Normalize("KROGER #123")))
	assert.Equal(t, "Auto & Gas", c.Categorize(norm.Normalize("KROGER FUEL #456")))
}

func rule(id string, priority int, pattern, category string) models.Rule {
	return models.Rule{
		RuleID:        id,
		Priority:      priority,
		VendorPattern: pattern,
		Category:      category,
	}
}

func TestCategorizeHighestPriorityWins(t *testing.T) {
	c := New([]models.Rule{
		rule("G001", 100, "KROGER", "Groceries & Markets"),
		rule("A002", 110, "KROGER FUEL", "Auto & Gas"),
	}, "")

	assert.Equal(t, "Groceries & Markets", c.Categorize("KROGER"))
	assert.Equal(t, "Auto & Gas", c.Categorize("KROGER FUEL"))
}

func TestCategorizeTieBreaksOnRuleID(t *testing.T) {
	// Same priority, both match: the lexicographically smallest RuleID wins
	// no matter how the snapshot was ordered.
	forward := New([]models.Rule{
		rule("B002", 50, "ACME", "Entertainment"),
		rule("A001", 50, "ACME", "Health"),
	}, "")
	reversed := New([]models.Rule{
		rule("A001", 50, "ACME", "Health"),
		rule("B002", 50, "ACME", "Entertainment"),
	}, "")

	assert.Equal(t, "Health", forward.Categorize("ACME SUPPLY"))
	assert.Equal(t, "Health", reversed.Categorize("ACME SUPPLY"))
}

func TestCategorizeDeterministic(t *testing.T) {
	c := New([]models.Rule{
		rule("G001", 100, "KROGER", "Groceries & Markets"),
		rule("E001", 115, "HAWK", "Education"),
		rule("S001", 10, "", "Shopping & Retail"),
	}, "")

	for i := 0; i < 50; i++ {
		assert.Equal(t, "Education", c.Categorize("HAWKMUSIC ACADEMY"))
	}
}

func TestCategorizeOverrideByPriority(t *testing.T) {
	// A priority-115 HAWK rule beats any broader lower-priority match for
	// every vendor containing HAWK.
	c := New([]models.Rule{
		rule("E001", 115, "HAWK", "Education"),
		rule("M001", 60, "ACADEMY", "Entertainment"),
	}, "")

	assert.Equal(t, "Education", c.Categorize("HAWKMUSIC ACADEMY"))
	assert.Equal(t, "Education", c.Categorize("BLACKHAWK GRILL"))
	assert.Equal(t, "Entertainment", c.Categorize("KARATE ACADEMY"))
}

func TestCategorizeDefaultFallback(t *testing.T) {
	c := New([]models.Rule{
		rule("G001", 100, "KROGER", "Groceries & Markets"),
	}, "")
	assert.Equal(t, models.DefaultCategory, c.Categorize("NEVER SEEN BEFORE"))

	custom := New(nil, "Misc")
	assert.Equal(t, "Misc", custom.Categorize("ANYTHING"))
}

func TestCategorizeCaseInsensitive(t *testing.T) {
	c := New([]models.Rule{
		rule("G001", 100, "kroger", "Groceries & Markets"),
	}, "")
	assert.Equal(t, "Groceries & Markets", c.Categorize("Kroger #42"))
}

func TestCheckOverrides(t *testing.T) {
	rules := []models.Rule{
		rule("G001", 100, "KROGER", "Groceries & Markets"),
		rule("A002", 110, "KROGER FUEL", "Auto & Gas"),
		rule("C001", 90, "KROGER", "Home & Services"),
	}
	rules[1].OverrideRuleID = "G001" // effective: 110 > 100
	rules[2].OverrideRuleID = "G001" // ineffective: 90 <= 100

	warnings := New(rules, "").CheckOverrides()
	if assert.Len(t, warnings, 1) {
		assert.Equal(t, "C001", warnings[0].RuleID)
		assert.Equal(t, "G001", warnings[0].OverriddenID)
		assert.Contains(t, warnings[0].String(), "does not outrank")
	}
}

func TestCheckOverridesIgnoresDanglingReference(t *testing.T) {
	rules := []models.Rule{rule("C001", 90, "NETFLIX", "Entertainment")}
	rules[0].OverrideRuleID = "GONE"

	assert.Empty(t, New(rules, "").CheckOverrides())
}
