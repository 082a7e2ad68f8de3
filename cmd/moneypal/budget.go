package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/moneypal/moneypal/internal/cli"
	"github.com/moneypal/moneypal/internal/model"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage monthly budgets",
		Long: `Show and set per-month spending limits. Limits are per category, with
"all" as the overall monthly limit. A month without an explicit limit falls
back to the category's default limit; with neither, there is no limit.`,
	}

	cmd.AddCommand(showBudgetCmd())
	cmd.AddCommand(setBudgetCmd())

	return cmd
}

func showBudgetCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show budget limits and current spending",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			e, err := initEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			if month == "" {
				month = model.MonthKey(time.Now())
			}

			budget, err := e.budget.Load(ctx)
			if err != nil {
				fmt.Println(cli.WarningStyle.Render("⚠ Could not read budget; showing empty limits."))
				budget = model.NewBudget()
			}
			transactions, err := e.transactions.LoadAll(ctx)
			if err != nil {
				transactions = nil
			}
			currency, err := e.preferences.Currency(ctx)
			if err != nil {
				currency = model.DefaultCurrency()
			}

			// Spending per category for the month, plus the overall total.
			spent := map[string]float64{}
			for _, t := range transactions {
				if t.Type != model.TypeExpense || !strings.HasPrefix(t.Date, month) {
					continue
				}
				spent[t.Category] += t.Amount
				spent[model.BudgetAllCategories] += t.Amount
			}

			// Categories with an explicit month entry, a default, or spending.
			ids := map[string]bool{}
			for _, l := range budget.Budget[month] {
				ids[l.CategoryID] = true
			}
			for id := range budget.Default {
				ids[id] = true
			}
			for id := range spent {
				ids[id] = true
			}

			if len(ids) == 0 {
				fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("No budget activity for %s.", month)))
				return nil
			}

			ordered := make([]string, 0, len(ids))
			for id := range ids {
				ordered = append(ordered, id)
			}
			sort.Strings(ordered)

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Budget for %s", month)))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.BoldStyle.Render("Category"),
				cli.BoldStyle.Render("Limit"),
				cli.BoldStyle.Render("Spent"))

			for _, id := range ordered {
				limit := budget.Limit(month, id)
				limitText := "(no limit)"
				if limit > 0 {
					limitText = fmt.Sprintf("%s%.2f", currency.Symbol, limit)
				}
				spentText := fmt.Sprintf("%s%.2f", currency.Symbol, spent[id])
				if limit > 0 && spent[id] > limit {
					spentText = cli.ErrorStyle.Render(spentText + " (over)")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", id, limitText, spentText)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "month key (YYYY-MM, default current month)")

	return cmd
}

func setBudgetCmd() *cobra.Command {
	var (
		month      string
		category   string
		setDefault bool
	)

	cmd := &cobra.Command{
		Use:   "set <amount>",
		Short: "Set a monthly limit",
		Long: `Set the spending limit for one category in one month. With --default the
amount also becomes the category's default limit for months without an
explicit entry. Use --category all for the overall monthly limit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			e, err := initEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			if month == "" {
				month = model.MonthKey(time.Now())
			}
			if _, err := time.Parse("2006-01", month); err != nil {
				return fmt.Errorf("invalid month %q: want YYYY-MM", month)
			}

			limit := model.BudgetLimit{CategoryID: category, Amount: amount}
			if err := e.budget.SetLimit(ctx, month, limit, setDefault); err != nil {
				return fmt.Errorf("failed to set limit: %w", err)
			}

			msg := fmt.Sprintf("✓ Limit for %s in %s set to %.2f", category, month, amount)
			if setDefault {
				msg += " (also default)"
			}
			fmt.Println(cli.SuccessStyle.Render(msg))
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "month key (YYYY-MM, default current month)")
	cmd.Flags().StringVarP(&category, "category", "c", model.BudgetAllCategories, "category id, or 'all' for the overall limit")
	cmd.Flags().BoolVar(&setDefault, "default", false, "also set as the category's default limit")

	return cmd
}
