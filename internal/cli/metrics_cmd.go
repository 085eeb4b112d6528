package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvogel/piboard/internal/cli/formatter"
	"github.com/mvogel/piboard/internal/domain"
)

// sprintCount is the number of delivery sprints shown on metric sheets.
const sprintCount = 4

func newMetricsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Sprint metric sheets and derived ratios",
	}

	cmd.AddCommand(
		newMetricsSheetCmd(app),
		newMetricsSetCmd(app),
		newMetricsDerivedCmd(app),
		newMetricsRollupCmd(app),
	)

	return cmd
}

func newMetricsSheetCmd(app *App) *cobra.Command {
	var team string

	cmd := &cobra.Command{
		Use:   "sheet",
		Short: "Show a team's raw metric sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			sheet, err := app.Metrics.Sheet(context.Background(), piFlag(cmd), team)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatMetricSheet(sheet, sprintCount))
			return nil
		},
	}

	cmd.Flags().StringVar(&team, "team", "", "Team name")
	_ = cmd.MarkFlagRequired("team")

	return cmd
}

func newMetricsSetCmd(app *App) *cobra.Command {
	var team, kindStr string
	var sprint int

	cmd := &cobra.Command{
		Use:   "set METRIC VALUE",
		Short: "Set one cell of a team's sheet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			metric, err := parseMetric(args[0])
			if err != nil {
				return err
			}
			value, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[1], err)
			}
			var kind domain.MetricKind
			switch strings.ToLower(kindStr) {
			case "plan":
				kind = domain.KindPlan
			case "actual":
				kind = domain.KindActual
			default:
				return fmt.Errorf("unknown kind %q (want plan or actual)", kindStr)
			}

			key := domain.MetricKey{Sprint: sprint, Metric: metric, Kind: kind}
			if err := app.Metrics.SetValue(context.Background(), piFlag(cmd), team, key, value); err != nil {
				return err
			}
			fmt.Printf("Set %s %s S%d %s = %s\n", team, metric, sprint, kind, args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&team, "team", "", "Team name")
	cmd.Flags().IntVar(&sprint, "sprint", 1, "Sprint number")
	cmd.Flags().StringVar(&kindStr, "kind", "actual", "plan or actual")
	_ = cmd.MarkFlagRequired("team")

	return cmd
}

func parseMetric(s string) (string, error) {
	for _, m := range domain.SheetMetrics {
		if strings.EqualFold(m, s) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown metric %q (one of %s)", s, strings.Join(domain.SheetMetrics, ", "))
}

func newMetricsDerivedCmd(app *App) *cobra.Command {
	var team string
	var sprint int

	cmd := &cobra.Command{
		Use:   "derived",
		Short: "Computed ratios for one team and sprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.Metrics.Derived(context.Background(), piFlag(cmd), team, sprint)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatDerived(team, sprint, d))
			return nil
		},
	}

	cmd.Flags().StringVar(&team, "team", "", "Team name")
	cmd.Flags().IntVar(&sprint, "sprint", 1, "Sprint number")
	_ = cmd.MarkFlagRequired("team")

	return cmd
}

func newMetricsRollupCmd(app *App) *cobra.Command {
	var sprint int

	cmd := &cobra.Command{
		Use:   "rollup",
		Short: "Cross-team view of one sprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.Metrics.Rollup(context.Background(), piFlag(cmd), sprint)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatRollup(sprint, r))
			return nil
		},
	}

	cmd.Flags().IntVar(&sprint, "sprint", 1, "Sprint number")

	return cmd
}
