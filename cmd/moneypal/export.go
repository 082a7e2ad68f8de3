package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/moneypal/moneypal/internal/cli"
	"github.com/moneypal/moneypal/internal/export"
)

func exportCmd() *cobra.Command {
	var (
		start  string
		end    string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions to CSV",
		Long: `Export transactions in a date range to a CSV file with a summary block.
Both bounds are inclusive; the default range is the last 30 days.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			e, err := initEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			now := time.Now()
			if end == "" {
				end = now.Format("2006-01-02")
			}
			if start == "" {
				start = now.AddDate(0, 0, -30).Format("2006-01-02")
			}

			all, err := e.transactions.LoadAll(ctx)
			if err != nil {
				return fmt.Errorf("failed to load transactions: %w", err)
			}
			custom, err := e.categories.LoadCustom(ctx)
			if err != nil {
				custom = nil
			}

			filtered := export.FilterByDateRange(all, start, end)
			if len(filtered) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions in the selected range; nothing to export."))
				return nil
			}

			if output == "" {
				output = fmt.Sprintf("transactions_%s.csv", now.Format("2006-01-02"))
			}
			if dir := filepath.Dir(output); dir != "." {
				if err := os.MkdirAll(dir, 0750); err != nil {
					return fmt.Errorf("failed to create export directory: %w", err)
				}
			}

			csv := export.ToCSV(filtered, custom)
			if err := os.WriteFile(output, []byte(csv), 0600); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Exported %d transactions to %s", len(filtered), output)))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&end, "end", "", "end date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default transactions_<today>.csv)")

	return cmd
}
