package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/mvogel/piboard/internal/cli/formatter"
	"github.com/mvogel/piboard/internal/domain"
	"github.com/mvogel/piboard/internal/repository"
)

func newTeamCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage teams",
	}

	cmd.AddCommand(
		newTeamListCmd(app),
		newTeamSetCmd(app),
		newTeamRemoveCmd(app),
	)

	return cmd
}

func newTeamListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			teams, err := app.Teams.ListByPI(context.Background(), piFlag(cmd))
			if err != nil {
				return err
			}
			if len(teams) == 0 {
				fmt.Println("No teams configured.")
				return nil
			}
			fmt.Println(formatter.FormatTeams(teams))
			return nil
		},
	}
}

func newTeamSetCmd(app *App) *cobra.Command {
	var name string
	var spValue, budget, rate float64

	cmd := &cobra.Command{
		Use:   "set ID",
		Short: "Create or update a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			pi := piFlag(cmd)
			id := args[0]

			team, err := app.Teams.Get(ctx, pi, id)
			if errors.Is(err, repository.ErrNotFound) {
				now := time.Now().UTC()
				team = &domain.Team{ID: id, PI: pi, Name: id, CreatedAt: now}
			} else if err != nil {
				return err
			}

			if app.interactive() && cmd.Flags().NFlag() == 0 {
				if err := runTeamForm(team); err != nil {
					return err
				}
			} else {
				if cmd.Flags().Changed("name") {
					team.Name = name
				}
				if cmd.Flags().Changed("sp-value") {
					team.StoryPointValue = spValue
				}
				if cmd.Flags().Changed("budget") {
					team.Budget = budget
				}
				if cmd.Flags().Changed("rate") {
					team.HourlyRate = rate
				}
			}
			team.UpdatedAt = time.Now().UTC()

			if err := app.Teams.Upsert(ctx, team); err != nil {
				return err
			}
			fmt.Printf("Saved team %s [%s]\n", team.Name, team.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().Float64Var(&spValue, "sp-value", 0, "CHF value of one story point")
	cmd.Flags().Float64Var(&budget, "budget", 0, "PI budget in CHF")
	cmd.Flags().Float64Var(&rate, "rate", 0, "Display hourly rate in CHF")

	return cmd
}

// runTeamForm edits a team in place through a huh form.
func runTeamForm(team *domain.Team) error {
	spValue := floatField(team.StoryPointValue)
	budget := floatField(team.Budget)
	rate := floatField(team.HourlyRate)

	form := textForm(
		huh.NewInput().Title("Name").Value(&team.Name).Validate(validateRequired),
		numberInput("Story point value (CHF)", "100", &spValue),
		numberInput("PI budget (CHF)", "0", &budget),
		numberInput("Hourly rate (CHF)", "0", &rate),
	)
	if err := form.Run(); err != nil {
		return err
	}

	team.StoryPointValue = parseFloatField(spValue)
	team.Budget = parseFloatField(budget)
	team.HourlyRate = parseFloatField(rate)
	return nil
}

// floatField renders a float for form editing, empty for zero.
func floatField(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloatField(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func newTeamRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Teams.Delete(context.Background(), piFlag(cmd), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed team %s\n", args[0])
			return nil
		},
	}
}
