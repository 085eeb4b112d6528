package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvogel/piboard/internal/cli/formatter"
)

func newBudgetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Budget and cost reports",
	}

	cmd.AddCommand(
		newBudgetReportCmd(app),
		newBudgetRatesCmd(app),
		newBudgetStoriesCmd(app),
	)

	return cmd
}

func newBudgetReportCmd(app *App) *cobra.Command {
	var teamID, topicKey string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Topic and feature rollup",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := app.Budget.Report(context.Background(), piFlag(cmd), teamID)
			if err != nil {
				return err
			}
			if topicKey != "" {
				kept := report.Topics[:0]
				for _, tr := range report.Topics {
					if tr.Key == topicKey {
						kept = append(kept, tr)
					}
				}
				report.Topics = kept
				if len(kept) == 0 {
					return fmt.Errorf("no topic %q in the report", topicKey)
				}
			}
			if len(report.Topics) == 0 {
				fmt.Println("Nothing to report: no topics with budget, planned or actual cost.")
				return nil
			}
			fmt.Println(formatter.FormatBudgetReport(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&teamID, "team", "", "Filter by team ID")
	cmd.Flags().StringVar(&topicKey, "topic", "", "Show a single topic")

	return cmd
}

func newBudgetRatesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rates",
		Short: "Derived effective hourly rates per team",
		RunE: func(cmd *cobra.Command, args []string) error {
			rates, err := app.Budget.Rates(context.Background(), piFlag(cmd))
			if err != nil {
				return err
			}
			if len(rates) == 0 {
				fmt.Println("No teams configured.")
				return nil
			}
			fmt.Println(formatter.FormatRates(rates))
			return nil
		},
	}
}

func newBudgetStoriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stories",
		Short: "Stories with logged hours priced at team rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			costs, err := app.Budget.StoryCosts(context.Background(), piFlag(cmd))
			if err != nil {
				return err
			}
			if len(costs) == 0 {
				fmt.Println("No stories imported.")
				return nil
			}
			fmt.Println(formatter.FormatStoryCosts(costs))
			return nil
		},
	}
}
