package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive capacity dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("dashboard needs an interactive terminal")
			}
			pi := piFlag(cmd)

			teams, err := app.Teams.ListByPI(context.Background(), pi)
			if err != nil {
				return err
			}
			names := make([]string, 0, len(teams)+1)
			names = append(names, "") // everyone
			for _, t := range teams {
				names = append(names, t.Name)
			}

			model := newDashboardModel(app, pi, names)
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}
}
