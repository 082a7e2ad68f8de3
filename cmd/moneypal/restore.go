package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/moneypal/moneypal/internal/backup"
	"github.com/moneypal/moneypal/internal/cli"
	"github.com/moneypal/moneypal/internal/common"
)

func restoreCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore all data from a backup file",
		Long: `Replace all stored data with the contents of a backup file. The file is
validated and summarized first; nothing changes until you confirm. Embedded
receipt images are written to new local files.

Restoring the same backup twice yields the same final state. There is no
rollback: if the restore fails midway, already-applied steps stay applied.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return common.NewUserError(fmt.Sprintf("could not read backup file %s", args[0]), err)
			}

			// Parse and validate before touching any stored state.
			doc, err := backup.Parse(raw)
			if err != nil {
				return err
			}

			s := doc.Summary()
			fmt.Println(cli.TitleStyle.Render("Backup summary"))
			fmt.Printf("  Transactions: %d\n", s.Transactions)
			fmt.Printf("  Categories:   %d\n", s.Categories)
			fmt.Printf("  Budgets:      %d\n", s.Budgets)
			fmt.Printf("  Images:       %d\n", s.Images)
			fmt.Printf("  Currency:     %s\n", s.Currency)
			if s.CreatedAt != "" {
				fmt.Printf("  Created:      %s\n", s.CreatedAt)
			}
			fmt.Println()

			if !yes {
				fmt.Print(cli.WarningStyle.Render("This replaces ALL current data. Continue? [y/N] "))
				reader := bufio.NewReader(os.Stdin)
				answer, _ := reader.ReadString('\n')
				if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
					fmt.Println(cli.InfoStyle.Render("Restore abandoned; nothing changed."))
					return nil
				}
			}

			e, err := initEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			var bar *progressbar.ProgressBar
			progress := func(current, total int) {
				if bar == nil {
					bar = progressbar.NewOptions(total,
						progressbar.OptionSetDescription("Restoring transactions"),
						progressbar.OptionShowCount())
				}
				_ = bar.Set(current)
			}

			if err := backupService(e).Restore(ctx, doc, progress); err != nil {
				fmt.Println()
				fmt.Println(cli.ErrorStyle.Render("✗ Restore failed; stored data may be partially restored."))
				return err
			}
			if bar != nil {
				_ = bar.Finish()
				fmt.Println()
			}

			// Refresh in-memory state so it matches what was just persisted.
			e.app.RefreshAll(ctx)

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Restored %d transactions and %d categories", s.Transactions, s.Categories)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}
