package categories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sitapp/spend-report/cmd/categories"
)

func TestCategoriesCommandTree(t *testing.T) {
	assert.Equal(t, "categories", categories.Cmd.Use)

	names := make(map[string]bool)
	for _, sub := range categories.Cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"list", "add", "delete"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestCategoriesAddFlags(t *testing.T) {
	for _, sub := range categories.Cmd.Commands() {
		if sub.Name() != "add" {
			continue
		}
		for _, flag := range []string{"name", "parent", "description"} {
			assert.NotNil(t, sub.Flags().Lookup(flag), "missing flag %s", flag)
		}
		return
	}
	t.Fatal("no add subcommand")
}
