package rules_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitapp/spend-report/cmd/rules"
)

func TestRulesCommandTree(t *testing.T) {
	assert.Equal(t, "rules", rules.Cmd.Use)

	names := make(map[string]bool)
	for _, sub := range rules.Cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"list", "add", "delete", "set-override", "check", "context"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestRulesListCustomFlag(t *testing.T) {
	listCmd := findCommand(t, "list")
	customFlag := listCmd.Flags().Lookup("custom")
	require.NotNil(t, customFlag)
	assert.Equal(t, "false", customFlag.DefValue)
}

func TestRulesAddFlags(t *testing.T) {
	addCmd := findCommand(t, "add")

	for _, flag := range []string{"id", "priority", "pattern", "category", "explanation", "overrides"} {
		assert.NotNil(t, addCmd.Flags().Lookup(flag), "missing flag %s", flag)
	}
}

func findCommand(t *testing.T, name string) *cobra.Command {
	t.Helper()
	for _, sub := range rules.Cmd.Commands() {
		if sub.Name() == name {
			return sub
		}
	}
	require.Failf(t, "subcommand not found", "no %s subcommand", name)
	return nil
}
