package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvogel/piboard/internal/cli/formatter"
)

func newCalendarCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Manage the sprint calendar",
	}

	cmd.AddCommand(
		newCalendarListCmd(app),
		newCalendarSeedCmd(app),
	)

	return cmd
}

func newCalendarListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the PI calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			pi := piFlag(cmd)
			days, err := app.Calendar.List(context.Background(), pi)
			if err != nil {
				return err
			}
			if len(days) == 0 {
				fmt.Printf("No calendar for PI %s. Run `piboard calendar seed`.\n", pi)
				return nil
			}
			fmt.Println(formatter.FormatCalendar(days))
			return nil
		},
	}
}

func newCalendarSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Generate the PI calendar from its sprint windows",
		RunE: func(cmd *cobra.Command, args []string) error {
			pi := piFlag(cmd)
			windows := app.WindowsFor(pi)
			if len(windows) == 0 {
				return fmt.Errorf("no sprint windows known for PI %s; configure them in piboard.yaml", pi)
			}
			n, err := app.Calendar.Seed(context.Background(), pi, windows)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Printf("Calendar for PI %s already exists.\n", pi)
				return nil
			}
			fmt.Printf("Seeded %d calendar days for PI %s\n", n, pi)
			return nil
		},
	}
}
