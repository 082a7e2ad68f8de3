package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/moneypal/moneypal/internal/cli"
	"github.com/moneypal/moneypal/internal/common"
	"github.com/moneypal/moneypal/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
		Long: `List built-in and custom categories, and add, update, or delete custom
ones. Built-in categories cannot be changed. Deleting a custom category
reassigns its transactions to the type's "Other" category.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(updateCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			e, err := initEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			custom, err := e.categories.LoadCustom(ctx)
			if err != nil {
				fmt.Println(cli.WarningStyle.Render("⚠ Could not read custom categories."))
				custom = nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Name"),
				cli.BoldStyle.Render("Type"),
				cli.BoldStyle.Render("Origin"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 16),
				strings.Repeat("-", 20),
				strings.Repeat("-", 8),
				strings.Repeat("-", 8))

			for _, set := range [][]model.Category{model.ExpenseCategories, model.IncomeCategories} {
				for _, c := range set {
					fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\n", c.ID, c.Icon, c.Name, c.Type, "builtin")
				}
			}
			for _, c := range custom {
				fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\n", c.ID, c.Icon, c.Name, c.Type, "custom")
			}

			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	var (
		icon    string
		color   string
		catType string
		catID   string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a custom category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			e, err := initEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			parsedType, err := model.ParseTransactionType(catType)
			if err != nil {
				return err
			}

			if catID == "" {
				catID = strings.ToLower(strings.ReplaceAll(args[0], " ", "_"))
			}
			if model.IsBuiltinCategory(catID) {
				return fmt.Errorf("category id %q is reserved by a built-in category", catID)
			}

			c := model.Category{
				ID:    catID,
				Name:  args[0],
				Icon:  icon,
				Color: color,
				Type:  parsedType,
			}
			if err := c.Validate(); err != nil {
				return err
			}

			existing, err := e.categories.LoadCustom(ctx)
			if err != nil {
				return err
			}
			for _, prev := range existing {
				if prev.ID == c.ID && prev.Type == c.Type {
					return fmt.Errorf("category %q already exists", c.ID)
				}
			}

			if err := e.categories.SaveOne(ctx, c); err != nil {
				return fmt.Errorf("failed to save category: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Added category %s %s (%s)", c.Icon, c.Name, c.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&catID, "id", "", "category id (default: derived from name)")
	cmd.Flags().StringVarP(&icon, "icon", "i", "📦", "single emoji icon")
	cmd.Flags().StringVar(&color, "color", "#BDC3C7", "display color")
	cmd.Flags().StringVarP(&catType, "type", "t", "expense", "category type (income, expense)")

	return cmd
}

func updateCategoryCmd() *cobra.Command {
	var (
		name  string
		icon  string
		color string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a custom category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			e, err := initEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			if model.IsBuiltinCategory(args[0]) {
				return fmt.Errorf("built-in category %q cannot be changed", args[0])
			}

			existing, err := e.categories.LoadCustom(ctx)
			if err != nil {
				return err
			}

			var found *model.Category
			for i := range existing {
				if existing[i].ID == args[0] {
					found = &existing[i]
					break
				}
			}
			if found == nil {
				return fmt.Errorf("%w: custom category %q", common.ErrNotFound, args[0])
			}

			updated := *found
			if cmd.Flags().Changed("name") {
				updated.Name = name
			}
			if cmd.Flags().Changed("icon") {
				updated.Icon = icon
			}
			if cmd.Flags().Changed("color") {
				updated.Color = color
			}
			if err := updated.Validate(); err != nil {
				return err
			}

			if err := e.categories.UpdateOne(ctx, updated); err != nil {
				return fmt.Errorf("failed to update category: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Updated category %s", args[0])))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new display name")
	cmd.Flags().StringVar(&icon, "icon", "", "new icon")
	cmd.Flags().StringVar(&color, "color", "", "new color")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a custom category",
		Long: `Delete a custom category. Transactions referencing it are reassigned to
the type-appropriate "Other" category first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			e, err := initEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			if model.IsBuiltinCategory(args[0]) {
				return fmt.Errorf("built-in category %q cannot be deleted", args[0])
			}

			if err := e.categories.DeleteOne(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete category: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Deleted category %s", args[0])))
			return nil
		},
	}
}
