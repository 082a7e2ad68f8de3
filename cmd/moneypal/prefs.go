package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moneypal/moneypal/internal/cli"
	"github.com/moneypal/moneypal/internal/model"
	"github.com/moneypal/moneypal/internal/notify"
)

func prefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Manage preferences",
		Long:  `Show and change currency, daily reminder, language, and PIN settings.`,
	}

	cmd.AddCommand(showPrefsCmd())
	cmd.AddCommand(setPrefsCmd())

	return cmd
}

func showPrefsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			e, err := initEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			p, err := e.preferences.Load(ctx)
			if err != nil {
				fmt.Println(cli.WarningStyle.Render("⚠ Could not read preferences; showing defaults."))
				p = model.Preferences{
					Currency:         model.DefaultCurrency(),
					NotificationTime: model.DefaultNotificationTime,
					Language:         "en",
				}
			}

			reminder := "off"
			if p.NotificationEnabled {
				reminder = fmt.Sprintf("daily at %02d:%02d", p.NotificationTime.Hour, p.NotificationTime.Minute)
			}
			lock := "disabled"
			if p.PIN != "" {
				lock = "enabled"
			}
			theme, err := e.preferences.Theme(ctx)
			if err != nil {
				theme = "sistem"
			}

			fmt.Println(cli.TitleStyle.Render("Preferences"))
			fmt.Printf("Currency:  %s (%s)\n", p.Currency.Symbol, p.Currency.Name)
			fmt.Printf("Reminder:  %s\n", reminder)
			fmt.Printf("Language:  %s\n", p.Language)
			fmt.Printf("Theme:     %s\n", theme)
			fmt.Printf("PIN lock:  %s\n", lock)
			return nil
		},
	}
}

func setPrefsCmd() *cobra.Command {
	var (
		currency string
		language string
		theme    string
		pin      string
		reminder bool
		hour     int
		minute   int
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			e, err := initEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			changed := false

			if cmd.Flags().Changed("currency") {
				if err := e.preferences.SetCurrency(ctx, currency); err != nil {
					return err
				}
				fmt.Println(cli.SuccessStyle.Render("✓ Currency set to " + currency))
				changed = true
			}

			if cmd.Flags().Changed("language") {
				if err := e.preferences.SetLanguage(ctx, language); err != nil {
					return err
				}
				fmt.Println(cli.SuccessStyle.Render("✓ Language set to " + language))
				changed = true
			}

			if cmd.Flags().Changed("theme") {
				if err := e.preferences.SetTheme(ctx, theme); err != nil {
					return err
				}
				fmt.Println(cli.SuccessStyle.Render("✓ Theme set to " + theme))
				changed = true
			}

			if cmd.Flags().Changed("pin") {
				if err := e.preferences.SetPIN(ctx, pin); err != nil {
					return err
				}
				if pin == "" {
					fmt.Println(cli.SuccessStyle.Render("✓ PIN lock disabled"))
				} else {
					fmt.Println(cli.SuccessStyle.Render("✓ PIN lock enabled"))
				}
				changed = true
			}

			if cmd.Flags().Changed("reminder") || cmd.Flags().Changed("hour") || cmd.Flags().Changed("minute") {
				if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
					return fmt.Errorf("invalid reminder time %02d:%02d", hour, minute)
				}
				when := model.NotificationTime{Hour: hour, Minute: minute}
				if err := e.preferences.SetNotification(ctx, reminder, when); err != nil {
					return err
				}

				var scheduler notify.Scheduler = notify.LogScheduler{}
				if reminder {
					if err := scheduler.ScheduleDaily(ctx, when.Hour, when.Minute); err != nil {
						return err
					}
					fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Daily reminder at %02d:%02d", when.Hour, when.Minute)))
				} else {
					if err := scheduler.Cancel(ctx); err != nil {
						return err
					}
					fmt.Println(cli.SuccessStyle.Render("✓ Daily reminder off"))
				}
				changed = true
			}

			if !changed {
				return fmt.Errorf("nothing to change; see 'moneypal prefs set --help'")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "", "currency symbol ($, €, £, ¥, Rp, ₹, K)")
	cmd.Flags().StringVar(&language, "language", "", "language code (en, id, ja, zh, tl, mm)")
	cmd.Flags().StringVar(&theme, "theme", "", "display theme (sistem, dark, light)")
	cmd.Flags().StringVar(&pin, "pin", "", "numeric PIN; empty disables the lock")
	cmd.Flags().BoolVar(&reminder, "reminder", false, "enable the daily reminder")
	cmd.Flags().IntVar(&hour, "hour", model.DefaultNotificationTime.Hour, "reminder hour (0-23)")
	cmd.Flags().IntVar(&minute, "minute", model.DefaultNotificationTime.Minute, "reminder minute (0-59)")

	return cmd
}
