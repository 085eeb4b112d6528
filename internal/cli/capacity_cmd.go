package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvogel/piboard/internal/capacity"
	"github.com/mvogel/piboard/internal/cli/formatter"
)

func parseBucket(s string) (capacity.Bucket, error) {
	for _, b := range capacity.Buckets {
		if string(b) == s {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown bucket %q (want develop, maintain, manage or sp)", s)
}

func newCapacityCmd(app *App) *cobra.Command {
	var team, bucketStr string

	cmd := &cobra.Command{
		Use:   "capacity",
		Short: "Show the capacity table",
		RunE: func(cmd *cobra.Command, args []string) error {
			bucket, err := parseBucket(bucketStr)
			if err != nil {
				return err
			}
			sum, err := app.Capacity.Summary(context.Background(), piFlag(cmd), team, bucket)
			if err != nil {
				return err
			}
			if len(sum.Sprints) == 0 {
				fmt.Println("No calendar yet. Run `piboard calendar seed` first.")
				return nil
			}
			fmt.Println(formatter.FormatCapacitySummary(sum))
			return nil
		},
	}

	cmd.Flags().StringVar(&team, "team", "", "Filter by team (empty for everyone)")
	cmd.Flags().StringVar(&bucketStr, "bucket", string(capacity.BucketDevelop), "develop, maintain, manage or sp")

	return cmd
}
