package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/moneypal/moneypal/internal/cli"
	"github.com/moneypal/moneypal/internal/model"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Manage transactions",
		Long:  `Add, list, update, and delete income and expense transactions.`,
	}

	cmd.AddCommand(addTxCmd())
	cmd.AddCommand(listTxCmd())
	cmd.AddCommand(updateTxCmd())
	cmd.AddCommand(deleteTxCmd())

	return cmd
}

func addTxCmd() *cobra.Command {
	var (
		txType      string
		date        string
		category    string
		description string
		imageURI    string
	)

	cmd := &cobra.Command{
		Use:   "add <title> <amount>",
		Short: "Add a transaction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			e, err := initEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			parsedType, err := model.ParseTransactionType(txType)
			if err != nil {
				return err
			}

			now := time.Now()
			if date == "" {
				date = now.Format("2006-01-02")
			}
			if category == "" {
				category = model.FallbackCategoryID(parsedType)
			}

			t := model.Transaction{
				ID:          fmt.Sprintf("tx_%d", now.UnixNano()),
				Title:       args[0],
				Amount:      amount,
				Type:        parsedType,
				Date:        date,
				CreatedAt:   now.UTC().Format(time.RFC3339),
				Description: description,
				ImageURI:    imageURI,
				Category:    category,
			}

			custom, err := e.categories.LoadCustom(ctx)
			if err != nil {
				return err
			}
			if err := t.Validate(custom); err != nil {
				return err
			}

			if err := e.transactions.Add(ctx, t); err != nil {
				return fmt.Errorf("failed to add transaction: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Added %s %q (%s)", t.Type, t.Title, t.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&txType, "type", "t", "expense", "transaction type (income, expense)")
	cmd.Flags().StringVarP(&date, "date", "d", "", "transaction date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category id (default the type's Other)")
	cmd.Flags().StringVar(&description, "description", "", "optional description")
	cmd.Flags().StringVar(&imageURI, "image", "", "optional receipt image path")

	return cmd
}

func listTxCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			e, err := initEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			var transactions []model.Transaction
			if date != "" {
				transactions, err = e.transactions.FilterByDate(ctx, date)
			} else {
				transactions, err = e.transactions.LoadAll(ctx)
			}
			if err != nil {
				// Read failures degrade to an empty listing, not a crash.
				fmt.Println(cli.WarningStyle.Render("⚠ Could not read transactions; showing none."))
				transactions = []model.Transaction{}
			}

			if len(transactions) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions found. Use 'moneypal tx add' to create one."))
				return nil
			}

			currency, err := e.preferences.Currency(ctx)
			if err != nil {
				currency = model.DefaultCurrency()
			}
			custom, err := e.categories.LoadCustom(ctx)
			if err != nil {
				custom = nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("Date"),
				cli.BoldStyle.Render("Title"),
				cli.BoldStyle.Render("Amount"),
				cli.BoldStyle.Render("Category"),
				cli.BoldStyle.Render("ID"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 10),
				strings.Repeat("-", 20),
				strings.Repeat("-", 10),
				strings.Repeat("-", 16),
				strings.Repeat("-", 22))

			for _, t := range transactions {
				amount := fmt.Sprintf("%s%s%.2f", typeSign(t.Type), currency.Symbol, t.Amount)
				style := cli.ExpenseStyle
				if t.Type == model.TypeIncome {
					style = cli.IncomeStyle
				}
				categoryName := t.Category
				if c := model.CategoryByID(t.Category, t.Type, custom); c != nil {
					categoryName = c.Icon + " " + c.Name
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					t.Date, t.Title, style.Render(amount), categoryName, cli.SubtleStyle.Render(t.ID))
			}

			s := model.Summarize(transactions)
			fmt.Fprintf(w, "\nIncome: %s\tExpenses: %s\tNet: %s\n",
				cli.IncomeStyle.Render(fmt.Sprintf("%s%.2f", currency.Symbol, s.TotalIncome)),
				cli.ExpenseStyle.Render(fmt.Sprintf("%s%.2f", currency.Symbol, s.TotalExpenses)),
				cli.BoldStyle.Render(fmt.Sprintf("%s%.2f", currency.Symbol, s.NetBalance)))

			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "only show transactions on this day (YYYY-MM-DD)")

	return cmd
}

func updateTxCmd() *cobra.Command {
	var (
		title       string
		amount      string
		date        string
		category    string
		description string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a transaction",
		Long: `Update a transaction in place. Only the flags you pass change; every
other field keeps its stored value. The id and creation timestamp never change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			e, err := initEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			var patch model.TransactionPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("amount") {
				parsed, parseErr := parseAmount(amount)
				if parseErr != nil {
					return parseErr
				}
				patch.Amount = &parsed
			}
			if cmd.Flags().Changed("date") {
				if err := model.ValidateDate(date); err != nil {
					return err
				}
				patch.Date = &date
			}
			if cmd.Flags().Changed("category") {
				patch.Category = &category
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}

			if err := e.transactions.Update(ctx, args[0], patch); err != nil {
				return fmt.Errorf("failed to update transaction: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Updated %s", args[0])))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&amount, "amount", "", "new amount")
	cmd.Flags().StringVar(&date, "date", "", "new date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&category, "category", "", "new category id")
	cmd.Flags().StringVar(&description, "description", "", "new description")

	return cmd
}

func deleteTxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			e, err := initEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.transactions.Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete transaction: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Deleted %s", args[0])))
			return nil
		},
	}
}

func typeSign(t model.TransactionType) string {
	if t == model.TypeIncome {
		return "+"
	}
	return "-"
}
