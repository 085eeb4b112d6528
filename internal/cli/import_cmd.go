package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import exported data",
	}

	cmd.AddCommand(
		newImportJiraCmd(app),
		newImportEverhourCmd(app),
		newImportDevelopersCmd(app),
	)

	return cmd
}

func newImportJiraCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "jira FILE",
		Short: "Import a Jira issue export (CSV)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			n, err := app.Import.ImportJira(context.Background(), piFlag(cmd), f)
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d stories\n", n)
			return nil
		},
	}
}

func newImportEverhourCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "everhour FILE",
		Short: "Import an Everhour time report (CSV)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			n, err := app.Import.ImportEverhour(context.Background(), piFlag(cmd), f)
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d time entries\n", n)
			return nil
		},
	}
}

func newImportDevelopersCmd(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "developers FILE",
		Short: "Import a developer roster (json or csv)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			n, err := app.Import.ImportDevelopers(context.Background(), piFlag(cmd), f, format)
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d developers\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "json or csv")

	return cmd
}
