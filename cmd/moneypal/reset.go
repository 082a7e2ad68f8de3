package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moneypal/moneypal/internal/cli"
)

func resetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all transactions, custom categories, and budgets",
		Long: `Clear all stored transactions, custom categories, and budget limits.
Preferences are kept. This cannot be undone; consider 'moneypal backup' first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !yes {
				fmt.Print(cli.WarningStyle.Render("Delete ALL transactions, custom categories, and budgets? [y/N] "))
				reader := bufio.NewReader(os.Stdin)
				answer, _ := reader.ReadString('\n')
				if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
					fmt.Println(cli.InfoStyle.Render("Reset abandoned; nothing changed."))
					return nil
				}
			}

			e, err := initEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.transactions.DeleteAll(ctx); err != nil {
				return fmt.Errorf("failed to clear transactions: %w", err)
			}
			if err := e.categories.DeleteAll(ctx); err != nil {
				return fmt.Errorf("failed to clear custom categories: %w", err)
			}
			if err := e.budget.DeleteAll(ctx); err != nil {
				return fmt.Errorf("failed to clear budget: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("✓ All data cleared"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}
