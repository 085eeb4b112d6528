package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvogel/piboard/internal/cli/formatter"
	"github.com/mvogel/piboard/internal/domain"
	"github.com/mvogel/piboard/internal/repository"
)

func newDeveloperCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "developer",
		Aliases: []string{"dev"},
		Short:   "Manage the developer roster",
	}

	cmd.AddCommand(
		newDeveloperListCmd(app),
		newDeveloperSetCmd(app),
		newDeveloperRemoveCmd(app),
		newDeveloperAvailabilityCmd(app),
	)

	return cmd
}

func newDeveloperListCmd(app *App) *cobra.Command {
	var team string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List developers",
		RunE: func(cmd *cobra.Command, args []string) error {
			devs, err := app.Developers.ListByPI(context.Background(), piFlag(cmd))
			if err != nil {
				return err
			}
			if team != "" {
				filtered := devs[:0]
				for _, d := range devs {
					if app.Aliases.Same(d.Team, team) {
						filtered = append(filtered, d)
					}
				}
				devs = filtered
			}
			if len(devs) == 0 {
				fmt.Println("No developers found.")
				return nil
			}
			fmt.Println(formatter.FormatDevelopers(devs))
			return nil
		},
	}

	cmd.Flags().StringVar(&team, "team", "", "Filter by home team")

	return cmd
}

func newDeveloperSetCmd(app *App) *cobra.Command {
	var name, team, stack string
	var special bool
	var sprintTeams []string
	numeric := map[string]*float64{
		"daily-hours": new(float64),
		"work-ratio":  new(float64),
		"load":        new(float64),
		"develop":     new(float64),
		"maintain":    new(float64),
		"manage":      new(float64),
		"velocity":    new(float64),
		"cost":        new(float64),
	}

	cmd := &cobra.Command{
		Use:   "set KEY",
		Short: "Create or update a developer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			pi := piFlag(cmd)
			key := strings.ToUpper(args[0])

			dev, err := app.Developers.Get(ctx, pi, key)
			if errors.Is(err, repository.ErrNotFound) {
				now := time.Now().UTC()
				dev = &domain.Developer{PI: pi, Key: key, Name: key, CreatedAt: now}
			} else if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				dev.Name = name
			}
			if cmd.Flags().Changed("team") {
				dev.Team = team
			}
			if cmd.Flags().Changed("stack") {
				dev.Stack = stack
			}
			if cmd.Flags().Changed("special") {
				dev.SpecialCase = special
			}
			for flag, dst := range map[string]**float64{
				"daily-hours": &dev.DailyHours,
				"work-ratio":  &dev.WorkRatio,
				"load":        &dev.Load,
				"develop":     &dev.DevelopRatio,
				"maintain":    &dev.MaintainRatio,
				"manage":      &dev.ManageRatio,
				"velocity":    &dev.Velocity,
				"cost":        &dev.InternalCost,
			} {
				if cmd.Flags().Changed(flag) {
					v := *numeric[flag]
					*dst = &v
				}
			}
			for _, st := range sprintTeams {
				parts := strings.SplitN(st, "=", 2)
				if len(parts) != 2 {
					return fmt.Errorf("invalid --sprint-team %q, expected SPRINT=TEAM", st)
				}
				if dev.SprintTeams == nil {
					dev.SprintTeams = map[string]string{}
				}
				dev.SprintTeams[parts[0]] = parts[1]
			}
			dev.UpdatedAt = time.Now().UTC()

			if err := app.Developers.Upsert(ctx, dev); err != nil {
				return err
			}
			fmt.Printf("Saved developer %s [%s]\n", dev.Name, dev.Key)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&team, "team", "", "Home team")
	cmd.Flags().StringVar(&stack, "stack", "", "Stack, e.g. Fullstack")
	cmd.Flags().BoolVar(&special, "special", false, "List but exclude from totals")
	cmd.Flags().StringArrayVar(&sprintTeams, "sprint-team", nil, "Per-sprint team override (SPRINT=TEAM)")
	cmd.Flags().Float64Var(numeric["daily-hours"], "daily-hours", 0, "Contracted hours per day")
	cmd.Flags().Float64Var(numeric["work-ratio"], "work-ratio", 0, "Work ratio percent")
	cmd.Flags().Float64Var(numeric["load"], "load", 0, "Load percent")
	cmd.Flags().Float64Var(numeric["develop"], "develop", 0, "Develop ratio percent")
	cmd.Flags().Float64Var(numeric["maintain"], "maintain", 0, "Maintain ratio percent")
	cmd.Flags().Float64Var(numeric["manage"], "manage", 0, "Manage ratio percent")
	cmd.Flags().Float64Var(numeric["velocity"], "velocity", 0, "Story points per man-day")
	cmd.Flags().Float64Var(numeric["cost"], "cost", 0, "Internal cost per hour in CHF")

	return cmd
}

func newDeveloperRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove KEY",
		Short: "Remove a developer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToUpper(args[0])
			if err := app.Developers.Delete(context.Background(), piFlag(cmd), key); err != nil {
				return err
			}
			fmt.Printf("Removed developer %s\n", key)
			return nil
		},
	}
}

func newDeveloperAvailabilityCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "availability KEY DATE VALUE",
		Short: "Set a developer's availability for one day",
		Long: "Set a developer's availability for one calendar day. VALUE is a\n" +
			"fraction like 0.5; an empty value means fully available, any\n" +
			"non-numeric value counts as away.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToUpper(args[0])
			if err := validateDate(args[1]); err != nil {
				return fmt.Errorf("invalid date %q: %w", args[1], err)
			}
			if err := app.Calendar.SetAvailability(context.Background(), piFlag(cmd), args[1], key, args[2]); err != nil {
				return err
			}
			fmt.Printf("Set %s on %s to %q\n", key, args[1], args[2])
			return nil
		},
	}
}
