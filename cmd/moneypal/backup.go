package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/moneypal/moneypal/internal/cli"
)

func backupCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Back up all data to a single file",
		Long: `Write a backup file containing every transaction, custom category, the
budget, preferences, and receipt images (embedded). A backup file can be
restored with 'moneypal restore'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			e, err := initEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			doc, err := backupService(e).Create(ctx)
			if err != nil {
				return fmt.Errorf("failed to build backup: %w", err)
			}

			if output == "" {
				output = fmt.Sprintf("moneypal_backup_%s.json", time.Now().Format("2006-01-02"))
			}
			if dir := filepath.Dir(output); dir != "." {
				if err := os.MkdirAll(dir, 0750); err != nil {
					return fmt.Errorf("failed to create backup directory: %w", err)
				}
			}

			raw, err := json.Marshal(doc)
			if err != nil {
				return fmt.Errorf("failed to encode backup: %w", err)
			}
			if err := os.WriteFile(output, raw, 0600); err != nil {
				return fmt.Errorf("failed to write backup: %w", err)
			}

			s := doc.Summary()
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Backup written to %s", output)))
			fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("  %d transactions, %d categories, %d images, %d budget months",
				s.Transactions, s.Categories, s.Images, s.Budgets)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default moneypal_backup_<today>.json)")

	return cmd
}
