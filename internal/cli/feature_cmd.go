package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mvogel/piboard/internal/cli/formatter"
	"github.com/mvogel/piboard/internal/domain"
)

func newFeatureCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feature",
		Short: "Manage features",
	}

	cmd.AddCommand(
		newFeatureListCmd(app),
		newFeatureAddCmd(app),
		newFeatureUpdateCmd(app),
		newFeatureRemoveCmd(app),
	)

	return cmd
}

// resolveFeature finds a feature by ID prefix or Jira key.
func resolveFeature(ctx context.Context, app *App, pi, input string) (*domain.Feature, error) {
	features, err := app.Features.ListByPI(ctx, pi)
	if err != nil {
		return nil, err
	}

	for i := range features {
		if strings.EqualFold(features[i].JiraKey, input) {
			return &features[i], nil
		}
	}

	var matches []*domain.Feature
	for i := range features {
		if strings.HasPrefix(features[i].ID, input) {
			matches = append(matches, &features[i])
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("feature not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("feature %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newFeatureListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List features",
		RunE: func(cmd *cobra.Command, args []string) error {
			features, err := app.Features.ListByPI(context.Background(), piFlag(cmd))
			if err != nil {
				return err
			}
			if len(features) == 0 {
				fmt.Println("No features found.")
				return nil
			}
			rows := make([][]string, 0, len(features))
			for _, f := range features {
				rows = append(rows, []string{
					f.JiraKey,
					f.Name,
					f.TopicKey,
					f.EpicOwner,
					formatter.CHF(f.Budget),
				})
			}
			fmt.Println(formatter.Header("Features"))
			fmt.Print(formatter.RenderTable([]string{"Epic", "Name", "Topic", "Owner", "Budget"}, rows, 4))
			return nil
		},
	}
}

func newFeatureAddCmd(app *App) *cobra.Command {
	var name, jiraKey, topicKey, owner string
	var budget float64
	var teamBudgets []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a feature",
		RunE: func(cmd *cobra.Command, args []string) error {
			perTeam, err := parseTeamBudgets(teamBudgets)
			if err != nil {
				return err
			}
			now := time.Now().UTC()
			f := &domain.Feature{
				ID:            uuid.New().String(),
				PI:            piFlag(cmd),
				Name:          name,
				JiraKey:       jiraKey,
				Budget:        budget,
				PerTeamBudget: perTeam,
				EpicOwner:     owner,
				TopicKey:      topicKey,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := app.Features.Upsert(context.Background(), f); err != nil {
				return err
			}
			fmt.Printf("Created feature %s [%s]\n", f.Name, f.JiraKey)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Feature name")
	cmd.Flags().StringVar(&jiraKey, "epic", "", "Jira epic key stories roll up under")
	cmd.Flags().StringVar(&topicKey, "topic", "", "Parent topic key")
	cmd.Flags().StringVar(&owner, "owner", "", "Epic owner")
	cmd.Flags().Float64Var(&budget, "budget", 0, "Budget in CHF")
	cmd.Flags().StringArrayVar(&teamBudgets, "team-budget", nil, "Per-team budget share (TEAM=CHF)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("epic")

	return cmd
}

func newFeatureUpdateCmd(app *App) *cobra.Command {
	var name, topicKey, owner string
	var budget float64
	var teamBudgets []string

	cmd := &cobra.Command{
		Use:   "update EPIC",
		Short: "Update a feature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			f, err := resolveFeature(ctx, app, piFlag(cmd), args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				f.Name = name
			}
			if cmd.Flags().Changed("topic") {
				f.TopicKey = topicKey
			}
			if cmd.Flags().Changed("owner") {
				f.EpicOwner = owner
			}
			if cmd.Flags().Changed("budget") {
				f.Budget = budget
			}
			if cmd.Flags().Changed("team-budget") {
				m, err := parseTeamBudgets(teamBudgets)
				if err != nil {
					return err
				}
				f.PerTeamBudget = m
			}
			f.UpdatedAt = time.Now().UTC()

			if err := app.Features.Upsert(ctx, f); err != nil {
				return err
			}
			fmt.Printf("Updated feature %s [%s]\n", f.Name, f.JiraKey)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Feature name")
	cmd.Flags().StringVar(&topicKey, "topic", "", "Parent topic key")
	cmd.Flags().StringVar(&owner, "owner", "", "Epic owner")
	cmd.Flags().Float64Var(&budget, "budget", 0, "Budget in CHF")
	cmd.Flags().StringArrayVar(&teamBudgets, "team-budget", nil, "Per-team budget share (TEAM=CHF)")

	return cmd
}

func newFeatureRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove EPIC",
		Short: "Remove a feature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			f, err := resolveFeature(ctx, app, piFlag(cmd), args[0])
			if err != nil {
				return err
			}
			if err := app.Features.Delete(ctx, f.ID); err != nil {
				return err
			}
			fmt.Printf("Removed feature %s\n", f.JiraKey)
			return nil
		},
	}
}
