// Package categorize implements one-shot categorization of a description.
package categorize

import (
	"fmt"

	"github.com/spf13/cobra"

	"sitapp/spend-report/cmd/root"
	"sitapp/spend-report/internal/categorizer"
)

var description string

// Cmd represents the categorize command.
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a single transaction description",
	Long: `Runs one raw statement description through vendor normalization and the
rule set, printing the canonical vendor and the resolved category. Useful for
checking what a new rule will do before a report run.`,
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&description, "description", "d", "", "Raw transaction description")
	_ = Cmd.MarkFlagRequired("description")
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	norm, err := root.Normalizer()
	if err != nil {
		return err
	}
	rules, err := root.RuleStore().Load()
	if err != nil {
		return err
	}

	vendor := norm.Normalize(description)
	category := categorizer.New(rules, root.Cfg.Categorization.DefaultCategory).Categorize(vendor)

	fmt.Fprintf(cmd.OutOrStdout(), "Vendor:   %s\n", vendor)
	fmt.Fprintf(cmd.OutOrStdout(), "Category: %s\n", category)
	return nil
}
