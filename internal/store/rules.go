package store

import (
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"sitapp/spend-report/internal/models"
)

// RuleStore reads and writes the categorization rule file. The file is the
// single source of truth for rule policy; report runs load a snapshot through
// Load and never write back.
type RuleStore struct {
	Path string
}

// NewRuleStore creates a rule store over the given CSV file.
func NewRuleStore(path string) *RuleStore {
	return &RuleStore{Path: path}
}

// Load reads all rules in stored order. A missing file is not an error: the
// categorizer falls back to the default category for everything.
func (s *RuleStore) Load() ([]models.Rule, error) {
	file, err := os.Open(s.Path) // #nosec G304 -- path comes from user configuration
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("file", s.Path).Warn("Rule store file not found, no rules loaded")
			return []models.Rule{}, nil
		}
		return nil, fmt.Errorf("opening rule store: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close rule store file")
		}
	}()

	var rules []models.Rule
	if err := gocsv.UnmarshalFile(file, &rules); err != nil {
		return nil, fmt.Errorf("parsing rule store: %w", err)
	}

	log.WithFields(logrus.Fields{"file": s.Path, "count": len(rules)}).Debug("Loaded rules")
	return rules, nil
}

// Save replaces the rule file with the given rules, in the given order,
// backing up the previous content first.
func (s *RuleStore) Save(rules []models.Rule) error {
	data, err := gocsv.MarshalString(&rules)
	if err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}
	if err := backupThenReplace(s.Path, []byte(data)); err != nil {
		return fmt.Errorf("writing rule store: %w", err)
	}

	log.WithFields(logrus.Fields{"file": s.Path, "count": len(rules)}).Debug("Saved rules")
	return nil
}

// Add validates and appends a new rule. Duplicate rule IDs and override
// references to unknown rules are validation failures surfaced immediately,
// never silently accepted.
func (s *RuleStore) Add(rule models.Rule) error {
	if rule.RuleID == "" {
		return fmt.Errorf("rule ID cannot be empty")
	}
	if rule.Priority < 1 {
		return fmt.Errorf("rule %s: priority must be a positive integer, got %d", rule.RuleID, rule.Priority)
	}
	if rule.VendorPattern == "" {
		return fmt.Errorf("rule %s: vendor pattern cannot be empty", rule.RuleID)
	}
	if rule.Category == "" {
		return fmt.Errorf("rule %s: category cannot be empty", rule.RuleID)
	}

	rules, err := s.Load()
	if err != nil {
		return err
	}

	ids := make(map[string]bool, len(rules))
	for _, r := range rules {
		ids[r.RuleID] = true
	}
	if ids[rule.RuleID] {
		return fmt.Errorf("rule ID %s already exists", rule.RuleID)
	}
	if rule.OverrideRuleID != "" && !ids[rule.OverrideRuleID] {
		return fmt.Errorf("rule %s: override target %s not found", rule.RuleID, rule.OverrideRuleID)
	}

	if rule.CreatedDate.IsZero() {
		rule.CreatedDate = models.NewDate(time.Now())
	}

	return s.Save(append(rules, rule))
}

// Delete removes a rule by ID.
func (s *RuleStore) Delete(ruleID string) error {
	rules, err := s.Load()
	if err != nil {
		return err
	}

	kept := rules[:0]
	found := false
	for _, r := range rules {
		if r.RuleID == ruleID {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return fmt.Errorf("rule %s not found", ruleID)
	}

	return s.Save(kept)
}

// SetOverride records which rule the given rule is meant to supersede. The
// link is audit metadata; precedence still comes from Priority alone.
func (s *RuleStore) SetOverride(ruleID, overrideID string) error {
	rules, err := s.Load()
	if err != nil {
		return err
	}

	ids := make(map[string]bool, len(rules))
	for _, r := range rules {
		ids[r.RuleID] = true
	}
	if !ids[ruleID] {
		return fmt.Errorf("rule %s not found", ruleID)
	}
	if overrideID != "" && !ids[overrideID] {
		return fmt.Errorf("override target %s not found", overrideID)
	}
	if overrideID == ruleID {
		return fmt.Errorf("rule %s cannot override itself", ruleID)
	}

	for i := range rules {
		if rules[i].RuleID == ruleID {
			rules[i].OverrideRuleID = overrideID
			break
		}
	}

	return s.Save(rules)
}
