// Package categories implements the category store management commands.
package categories

import (
	"fmt"

	"github.com/spf13/cobra"

	"sitapp/spend-report/cmd/root"
	"sitapp/spend-report/internal/models"
)

var (
	name        string
	parent      string
	description string
)

// Cmd represents the categories command group.
var Cmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage spending categories",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories in report order",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := root.CategoryStore()
		if err := s.EnsureSeed(); err != nil {
			return err
		}
		categories, err := s.Load()
		if err != nil {
			return err
		}
		for _, c := range categories {
			line := c.Name
			if c.Parent != "" {
				line += " (parent: " + c.Parent + ")"
			}
			if c.Description != "" {
				line += " - " + c.Description
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a user-defined category",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := root.CategoryStore()
		// Seed first so the parent check sees the built-ins on a
		// fresh install.
		if err := s.EnsureSeed(); err != nil {
			return err
		}
		err := s.Add(models.Category{
			Name:          name,
			Parent:        parent,
			Description:   description,
			IsUserDefined: true,
		})
		if err != nil {
			return err
		}
		root.Log.WithField("category", name).Info("Category added")
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a user-defined category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := root.RuleStore().Load()
		if err != nil {
			return err
		}
		if err := root.CategoryStore().Delete(args[0], rules); err != nil {
			return err
		}
		root.Log.WithField("category", args[0]).Info("Category deleted")
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&name, "name", "", "Category name (unique)")
	addCmd.Flags().StringVar(&parent, "parent", "", "Parent category for display grouping")
	addCmd.Flags().StringVar(&description, "description", "", "Category description")
	_ = addCmd.MarkFlagRequired("name")

	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(deleteCmd)
}
