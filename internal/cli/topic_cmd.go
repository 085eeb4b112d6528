package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mvogel/piboard/internal/cli/formatter"
	"github.com/mvogel/piboard/internal/domain"
	"github.com/mvogel/piboard/internal/repository"
)

func newTopicCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topic",
		Short: "Manage budget topics",
	}

	cmd.AddCommand(
		newTopicListCmd(app),
		newTopicSetCmd(app),
		newTopicRemoveCmd(app),
	)

	return cmd
}

func newTopicListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List topics",
		RunE: func(cmd *cobra.Command, args []string) error {
			topics, err := app.Topics.ListByPI(context.Background(), piFlag(cmd))
			if err != nil {
				return err
			}
			if len(topics) == 0 {
				fmt.Println("No topics found.")
				return nil
			}
			rows := make([][]string, 0, len(topics))
			for _, t := range topics {
				rows = append(rows, []string{
					t.Key,
					t.Name,
					strconv.Itoa(t.Priority),
					formatter.CHF(t.Budget),
				})
			}
			fmt.Println(formatter.Header("Topics"))
			fmt.Print(formatter.RenderTable([]string{"Key", "Name", "Priority", "Budget"}, rows, 2, 3))
			return nil
		},
	}
}

// parseTeamBudgets parses repeated TEAM=CHF flags into the per-team map.
func parseTeamBudgets(specs []string) (map[string]float64, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(specs))
	for _, spec := range specs {
		parts := strings.SplitN(spec, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid team budget %q, expected TEAM=CHF", spec)
		}
		v, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid team budget %q: %w", spec, err)
		}
		out[parts[0]] = v
	}
	return out, nil
}

func newTopicSetCmd(app *App) *cobra.Command {
	var name string
	var priority int
	var budget float64
	var teamBudgets []string

	cmd := &cobra.Command{
		Use:   "set KEY",
		Short: "Create or update a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			pi := piFlag(cmd)
			key := args[0]

			topic, err := app.Topics.GetByKey(ctx, pi, key)
			if errors.Is(err, repository.ErrNotFound) {
				now := time.Now().UTC()
				topic = &domain.Topic{ID: uuid.New().String(), PI: pi, Key: key, Name: key, CreatedAt: now}
			} else if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				topic.Name = name
			}
			if cmd.Flags().Changed("priority") {
				topic.Priority = priority
			}
			if cmd.Flags().Changed("budget") {
				topic.Budget = budget
			}
			if cmd.Flags().Changed("team-budget") {
				m, err := parseTeamBudgets(teamBudgets)
				if err != nil {
					return err
				}
				topic.PerTeamBudget = m
			}
			topic.UpdatedAt = time.Now().UTC()

			if err := app.Topics.Upsert(ctx, topic); err != nil {
				return err
			}
			fmt.Printf("Saved topic %s [%s]\n", topic.Name, topic.Key)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().IntVar(&priority, "priority", 0, "Sort priority, lower first")
	cmd.Flags().Float64Var(&budget, "budget", 0, "Total budget in CHF")
	cmd.Flags().StringArrayVar(&teamBudgets, "team-budget", nil, "Per-team budget share (TEAM=CHF)")

	return cmd
}

func newTopicRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove KEY",
		Short: "Remove a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			topic, err := app.Topics.GetByKey(ctx, piFlag(cmd), args[0])
			if err != nil {
				return err
			}
			if err := app.Topics.Delete(ctx, topic.ID); err != nil {
				return err
			}
			fmt.Printf("Removed topic %s\n", topic.Key)
			return nil
		},
	}
}
