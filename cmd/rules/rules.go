// Package rules implements the rule store management commands.
package rules

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"sitapp/spend-report/cmd/root"
	"sitapp/spend-report/internal/categorizer"
	"sitapp/spend-report/internal/models"
	"sitapp/spend-report/internal/report"
)

var (
	ruleID      string
	priority    int
	pattern     string
	category    string
	explanation string
	overrideID  string
	customOnly  bool
)

// Cmd represents the rules command group.
var Cmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage categorization rules",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List rules in evaluation order",
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := root.RuleStore().Load()
		if err != nil {
			return err
		}
		cat := categorizer.New(rules, root.Cfg.Categorization.DefaultCategory)
		for _, r := range cat.Rules() {
			if customOnly && !bool(r.IsCustom) {
				continue
			}
			line := fmt.Sprintf("%-8s p%-4d %-30s -> %s", r.RuleID, r.Priority, r.VendorPattern, r.Category)
			if r.OverrideRuleID != "" {
				line += fmt.Sprintf(" (overrides %s)", r.OverrideRuleID)
			}
			if r.IsCustom {
				line += " [custom]"
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a categorization rule",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := root.RuleStore().Add(models.Rule{
			RuleID:         ruleID,
			Priority:       priority,
			VendorPattern:  pattern,
			Category:       category,
			Explanation:    explanation,
			OverrideRuleID: overrideID,
			IsCustom:       true,
		})
		if err != nil {
			return err
		}
		root.Log.WithField("rule", ruleID).Info("Rule added")
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <rule-id>",
	Short: "Delete a rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := root.RuleStore().Delete(args[0]); err != nil {
			return err
		}
		root.Log.WithField("rule", args[0]).Info("Rule deleted")
		return nil
	},
}

var setOverrideCmd = &cobra.Command{
	Use:   "set-override <rule-id> <overridden-id>",
	Short: "Record which rule a rule supersedes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := root.RuleStore().SetOverride(args[0], args[1]); err != nil {
			return err
		}
		root.Log.WithFields(logrus.Fields{"rule": args[0], "overrides": args[1]}).Info("Override recorded")
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report override links that cannot take effect",
	Long: `An override link is advisory: precedence still comes from Priority. This
command flags rules whose recorded override target has an equal or higher
priority, meaning the link never changes the outcome.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := root.RuleStore().Load()
		if err != nil {
			return err
		}
		cat := categorizer.New(rules, root.Cfg.Categorization.DefaultCategory)
		warnings := cat.CheckOverrides()
		if len(warnings) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "All override links are effective.")
			return nil
		}
		for _, w := range warnings {
			fmt.Fprintln(cmd.OutOrStdout(), w.String())
		}
		return nil
	},
}

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Print the active rules and categories as a plain-text block",
	Long: `Prints the rule and category snapshot in the plain-text form consumed by
downstream explanation tooling, so generated answers stay grounded in the
policy actually in effect.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := root.RuleStore().Load()
		if err != nil {
			return err
		}
		categories, err := root.CategoryStore().Load()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), report.SnapshotContext(rules, categories))
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&customOnly, "custom", false, "Show only user-added rules")

	addCmd.Flags().StringVar(&ruleID, "id", "", "Rule ID (unique)")
	addCmd.Flags().IntVar(&priority, "priority", 0, "Rule priority (higher wins)")
	addCmd.Flags().StringVar(&pattern, "pattern", "", "Vendor substring to match")
	addCmd.Flags().StringVar(&category, "category", "", "Category to assign")
	addCmd.Flags().StringVar(&explanation, "explanation", "", "Why this rule exists")
	addCmd.Flags().StringVar(&overrideID, "overrides", "", "Rule ID this rule supersedes")
	_ = addCmd.MarkFlagRequired("id")
	_ = addCmd.MarkFlagRequired("priority")
	_ = addCmd.MarkFlagRequired("pattern")
	_ = addCmd.MarkFlagRequired("category")

	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(setOverrideCmd)
	Cmd.AddCommand(checkCmd)
	Cmd.AddCommand(contextCmd)
}
