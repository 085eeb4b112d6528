package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.ServeFn == nil {
				return fmt.Errorf("http server not wired")
			}
			return app.ServeFn(app, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8713", "Listen address")

	return cmd
}
