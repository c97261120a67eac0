package store

import (
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"sitapp/spend-report/internal/models"
)

// CategoryStore reads and writes the category list as a flat CSV file.
// Stored order is preserved on load and reused by the aggregator for
// report ordering.
type CategoryStore struct {
	Path string
}

func NewCategoryStore(path string) *CategoryStore {
	return &CategoryStore{Path: path}
}

// Load returns the stored categories in file order. A missing file is
// not an error: the built-in seed list is returned instead.
func (s *CategoryStore) Load() ([]models.Category, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("file", s.Path).Warn("Category file not found, using built-in categories")
			return models.BuiltinCategories(), nil
		}
		return nil, fmt.Errorf("opening category file %s: %w", s.Path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.WithError(cerr).Warn("Error closing category file")
		}
	}()

	var categories []models.Category
	if err := gocsv.UnmarshalFile(f, &categories); err != nil {
		return nil, fmt.Errorf("parsing category file %s: %w", s.Path, err)
	}
	log.WithFields(logrus.Fields{"file": s.Path, "count": len(categories)}).Debug("Loaded categories")
	return categories, nil
}

// Save writes the full category list, backing up the previous file
// first and replacing it atomically.
func (s *CategoryStore) Save(categories []models.Category) error {
	data, err := gocsv.MarshalString(&categories)
	if err != nil {
		return fmt.Errorf("encoding categories: %w", err)
	}
	if err := backupThenReplace(s.Path, []byte(data)); err != nil {
		return fmt.Errorf("writing category file %s: %w", s.Path, err)
	}
	log.WithFields(logrus.Fields{"file": s.Path, "count": len(categories)}).Debug("Saved categories")
	return nil
}

// EnsureSeed writes the built-in category list when no category file
// exists yet. An existing file is left untouched.
func (s *CategoryStore) EnsureSeed() error {
	if _, err := os.Stat(s.Path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking category file %s: %w", s.Path, err)
	}
	log.WithField("file", s.Path).Info("Seeding built-in categories")
	return s.Save(models.BuiltinCategories())
}

// Add validates and appends a category, then persists the whole list.
// The name must be unique, the parent (if any) must already exist, and
// the parent chain may not form a cycle.
func (s *CategoryStore) Add(category models.Category) error {
	if category.Name == "" {
		return fmt.Errorf("category name must not be empty")
	}

	categories, err := s.Load()
	if err != nil {
		return err
	}

	byName := make(map[string]models.Category, len(categories))
	for _, c := range categories {
		byName[c.Name] = c
	}
	if _, exists := byName[category.Name]; exists {
		return fmt.Errorf("category %s already exists", category.Name)
	}
	if category.Parent != "" {
		if _, ok := byName[category.Parent]; !ok {
			return fmt.Errorf("parent category %s does not exist", category.Parent)
		}
		if category.Parent == category.Name {
			return fmt.Errorf("category %s cannot be its own parent", category.Name)
		}
		// Walk the parent chain to guard against cycles through the
		// new entry. Existing entries were validated on their own add.
		seen := map[string]bool{category.Name: true}
		for name := category.Parent; name != ""; {
			if seen[name] {
				return fmt.Errorf("parent chain for %s forms a cycle", category.Name)
			}
			seen[name] = true
			parent, ok := byName[name]
			if !ok {
				break
			}
			name = parent.Parent
		}
	}

	if category.CreatedDate.IsZero() {
		category.CreatedDate = models.NewDate(time.Now())
	}
	categories = append(categories, category)
	return s.Save(categories)
}

// Delete removes a user-defined category by name. Built-in categories
// cannot be removed, and neither can a category still referenced by a
// rule or used as a parent.
func (s *CategoryStore) Delete(name string, rules []models.Rule) error {
	categories, err := s.Load()
	if err != nil {
		return err
	}

	idx := -1
	for i, c := range categories {
		if c.Name == name {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("category %s not found", name)
	}
	if !categories[idx].IsUserDefined {
		return fmt.Errorf("category %s is built in and cannot be deleted", name)
	}
	for _, c := range categories {
		if c.Parent == name {
			return fmt.Errorf("category %s is the parent of %s", name, c.Name)
		}
	}
	for _, r := range rules {
		if r.Category == name {
			return fmt.Errorf("category %s is referenced by rule %s", name, r.RuleID)
		}
	}

	categories = append(categories[:idx], categories[idx+1:]...)
	return s.Save(categories)
}
