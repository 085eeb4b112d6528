package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvogel/piboard/internal/service"
)

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export reports as CSV",
	}

	cmd.AddCommand(
		newExportCapacityCmd(app),
		newExportMetricsCmd(app),
	)

	return cmd
}

// outputWriter opens the -o target, stdout when empty.
func outputWriter(path string) (io.WriteCloser, error) {
	if path == "" {
		return os.Stdout, nil
	}
	return os.Create(path)
}

func newExportCapacityCmd(app *App) *cobra.Command {
	var team, bucketStr, out string

	cmd := &cobra.Command{
		Use:   "capacity",
		Short: "Export a capacity table",
		RunE: func(cmd *cobra.Command, args []string) error {
			bucket, err := parseBucket(bucketStr)
			if err != nil {
				return err
			}
			sum, err := app.Capacity.Summary(context.Background(), piFlag(cmd), team, bucket)
			if err != nil {
				return err
			}

			w, err := outputWriter(out)
			if err != nil {
				return err
			}
			if err := service.WriteCapacityCSV(w, sum); err != nil {
				if out != "" {
					w.Close()
				}
				return err
			}
			if out != "" {
				if err := w.Close(); err != nil {
					return err
				}
				fmt.Printf("Wrote %s\n", out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&team, "team", "", "Filter by team")
	cmd.Flags().StringVar(&bucketStr, "bucket", "develop", "develop, maintain, manage or sp")
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output file (default stdout)")

	return cmd
}

func newExportMetricsCmd(app *App) *cobra.Command {
	var team, out string

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Export a team's metric sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			sheet, err := app.Metrics.Sheet(context.Background(), piFlag(cmd), team)
			if err != nil {
				return err
			}

			w, err := outputWriter(out)
			if err != nil {
				return err
			}
			if err := service.WriteMetricSheetCSV(w, sheet, sprintCount); err != nil {
				if out != "" {
					w.Close()
				}
				return err
			}
			if out != "" {
				if err := w.Close(); err != nil {
					return err
				}
				fmt.Printf("Wrote %s\n", out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&team, "team", "", "Team name")
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output file (default stdout)")
	_ = cmd.MarkFlagRequired("team")

	return cmd
}
