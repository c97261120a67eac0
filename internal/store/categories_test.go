package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitapp/spend-report/internal/models"
)

func TestCategoryStoreLoadMissingFileFallsBackToBuiltins(t *testing.T) {
	s := NewCategoryStore(filepath.Join(t.TempDir(), "categories.csv"))

	categories, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, models.BuiltinCategories(), categories)
}

func TestCategoryStoreSaveLoadRoundTrip(t *testing.T) {
	s := NewCategoryStore(filepath.Join(t.TempDir(), "categories.csv"))
	want := append(models.BuiltinCategories(), models.Category{
		Name:          "Pets",
		Parent:        "Home & Services",
		Description:   "Vet and pet supplies",
		IsUserDefined: true,
		CreatedDate:   models.NewDate(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)),
	})

	require.NoError(t, s.Save(want))
	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCategoryStoreEnsureSeed(t *testing.T) {
	s := NewCategoryStore(filepath.Join(t.TempDir(), "categories.csv"))

	require.NoError(t, s.EnsureSeed())
	categories, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, models.BuiltinCategories(), categories)

	// Seeding again must not disturb user edits.
	require.NoError(t, s.Add(models.Category{Name: "Pets", IsUserDefined: true}))
	require.NoError(t, s.EnsureSeed())
	categories, err = s.Load()
	require.NoError(t, err)
	assert.Len(t, categories, len(models.BuiltinCategories())+1)
}

func TestCategoryStoreAddValidation(t *testing.T) {
	tests := []struct {
		name     string
		category models.Category
		wantErr  string
	}{
		{
			name:     "duplicate name",
			category: models.Category{Name: "Health"},
			wantErr:  "already exists",
		},
		{
			name:     "empty name",
			category: models.Category{},
			wantErr:  "must not be empty",
		},
		{
			name:     "unknown parent",
			category: models.Category{Name: "Pets", Parent: "Animals"},
			wantErr:  "does not exist",
		},
		{
			name:     "self parent",
			category: models.Category{Name: "Health", Parent: "Health"},
			wantErr:  "already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewCategoryStore(filepath.Join(t.TempDir(), "categories.csv"))
			require.NoError(t, s.EnsureSeed())

			err := s.Add(tt.category)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCategoryStoreAddRejectsCyclicParentChain(t *testing.T) {
	s := NewCategoryStore(filepath.Join(t.TempDir(), "categories.csv"))

	// A hand-edited file can already hold a parent cycle; Add must not
	// loop forever or extend it.
	require.NoError(t, s.Save([]models.Category{
		{Name: "Alpha", Parent: "Beta", IsUserDefined: true},
		{Name: "Beta", Parent: "Alpha", IsUserDefined: true},
	}))

	err := s.Add(models.Category{Name: "Gamma", Parent: "Alpha", IsUserDefined: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forms a cycle")
}

func TestCategoryStoreAddWithParent(t *testing.T) {
	s := NewCategoryStore(filepath.Join(t.TempDir(), "categories.csv"))
	require.NoError(t, s.EnsureSeed())

	require.NoError(t, s.Add(models.Category{
		Name:          "Streaming",
		Parent:        "Entertainment",
		IsUserDefined: true,
	}))

	categories, err := s.Load()
	require.NoError(t, err)
	last := categories[len(categories)-1]
	assert.Equal(t, "Streaming", last.Name)
	assert.Equal(t, "Entertainment", last.Parent)
	assert.False(t, last.CreatedDate.IsZero())
}

func TestCategoryStoreDelete(t *testing.T) {
	s := NewCategoryStore(filepath.Join(t.TempDir(), "categories.csv"))
	require.NoError(t, s.EnsureSeed())
	require.NoError(t, s.Add(models.Category{Name: "Pets", IsUserDefined: true}))

	rules := []models.Rule{
		{RuleID: "A001", Priority: 100, VendorPattern: "KROGER", Category: "Groceries & Markets"},
	}

	err := s.Delete("Health", rules)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "built in")

	err = s.Delete("Missing", rules)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	require.NoError(t, s.Delete("Pets", rules))
	categories, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, categories, len(models.BuiltinCategories()))
}

func TestCategoryStoreDeleteReferencedByRule(t *testing.T) {
	s := NewCategoryStore(filepath.Join(t.TempDir(), "categories.csv"))
	require.NoError(t, s.EnsureSeed())
	require.NoError(t, s.Add(models.Category{Name: "Pets", IsUserDefined: true}))

	rules := []models.Rule{
		{RuleID: "P001", Priority: 100, VendorPattern: "PETCO", Category: "Pets"},
	}

	err := s.Delete("Pets", rules)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "referenced by rule P001")
}

func TestCategoryStoreDeleteParentInUse(t *testing.T) {
	s := NewCategoryStore(filepath.Join(t.TempDir(), "categories.csv"))
	require.NoError(t, s.EnsureSeed())
	require.NoError(t, s.Add(models.Category{Name: "Pets", IsUserDefined: true}))
	require.NoError(t, s.Add(models.Category{Name: "Vet", Parent: "Pets", IsUserDefined: true}))

	err := s.Delete("Pets", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parent of Vet")
}
