package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/moneypal/moneypal/internal/cli"
	"github.com/moneypal/moneypal/internal/model"
	"github.com/moneypal/moneypal/internal/ofx"
)

func importOFXCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX (Quicken) files exported from your
bank. Debits become expenses, credits become income. Transactions already
imported (same OFX id) are skipped.

Examples:
  moneypal import-ofx ~/Downloads/chase_jan_2024.qfx
  moneypal import-ofx ~/Downloads/*.qfx --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var files []string
			for _, pattern := range args {
				matches, err := filepath.Glob(pattern)
				if err != nil {
					return fmt.Errorf("invalid pattern %s: %w", pattern, err)
				}
				if len(matches) == 0 {
					if _, err := os.Stat(pattern); err == nil {
						files = append(files, pattern)
					}
					continue
				}
				files = append(files, matches...)
			}
			if len(files) == 0 {
				return fmt.Errorf("no files found to import")
			}

			parser := ofx.NewParser()
			var imported []model.Transaction
			for _, path := range files {
				f, err := os.Open(path)
				if err != nil {
					fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("⚠ Skipping %s: %v", path, err)))
					continue
				}
				transactions, err := parser.ParseFile(ctx, f)
				_ = f.Close()
				if err != nil {
					fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("⚠ Skipping %s: %v", path, err)))
					continue
				}
				imported = append(imported, transactions...)
				fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("%s: %d transactions", filepath.Base(path), len(transactions))))
			}

			if len(imported) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions found in any file."))
				return nil
			}

			if dryRun {
				s := model.Summarize(imported)
				fmt.Println(cli.TitleStyle.Render("Dry run"))
				fmt.Printf("Would import %d transactions (income %.2f, expenses %.2f)\n",
					len(imported), s.TotalIncome, s.TotalExpenses)
				return nil
			}

			e, err := initEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			existing, err := e.transactions.LoadAll(ctx)
			if err != nil {
				return fmt.Errorf("failed to load transactions: %w", err)
			}
			seen := make(map[string]bool, len(existing))
			for _, t := range existing {
				seen[t.ID] = true
			}

			added := 0
			for _, t := range imported {
				if seen[t.ID] {
					continue
				}
				seen[t.ID] = true
				existing = append(existing, t)
				added++
			}

			if err := e.transactions.SaveAll(ctx, existing); err != nil {
				return fmt.Errorf("failed to save transactions: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Imported %d transactions (%d duplicates skipped)",
				added, len(imported)-added)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "preview import without saving")

	return cmd
}
