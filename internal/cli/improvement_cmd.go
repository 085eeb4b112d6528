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

func newImprovementCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "improvement",
		Short: "Manage the improvement backlog",
	}

	cmd.AddCommand(
		newImprovementListCmd(app),
		newImprovementAddCmd(app),
		newImprovementStatusCmd(app),
		newImprovementRemoveCmd(app),
	)

	return cmd
}

// resolveImprovement finds an improvement by ID prefix.
func resolveImprovement(ctx context.Context, app *App, pi, input string) (*domain.Improvement, error) {
	imps, err := app.Improvements.ListByPI(ctx, pi)
	if err != nil {
		return nil, err
	}
	var matches []*domain.Improvement
	for _, imp := range imps {
		if strings.HasPrefix(imp.ID, input) {
			matches = append(matches, imp)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("improvement not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("improvement ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newImprovementListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List improvements",
		RunE: func(cmd *cobra.Command, args []string) error {
			imps, err := app.Improvements.ListByPI(context.Background(), piFlag(cmd))
			if err != nil {
				return err
			}
			if len(imps) == 0 {
				fmt.Println("No improvements recorded.")
				return nil
			}
			fmt.Println(formatter.FormatImprovements(imps))
			return nil
		},
	}
}

func newImprovementAddCmd(app *App) *cobra.Command {
	var idea, details, reporter, priority, date string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an improvement idea",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = time.Now().UTC().Format("2006-01-02")
			} else if err := validateDate(date); err != nil {
				return fmt.Errorf("invalid date %q: %w", date, err)
			}
			prio := domain.PriorityLow
			if strings.EqualFold(priority, string(domain.PriorityHigh)) {
				prio = domain.PriorityHigh
			}
			now := time.Now().UTC()
			imp := &domain.Improvement{
				ID:        uuid.New().String(),
				PI:        piFlag(cmd),
				Idea:      idea,
				Priority:  prio,
				Reporter:  reporter,
				Status:    domain.ImprovementBacklog,
				Details:   details,
				Date:      date,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := app.Improvements.Upsert(context.Background(), imp); err != nil {
				return err
			}
			fmt.Printf("Recorded improvement %s\n", imp.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&idea, "idea", "", "Short description")
	cmd.Flags().StringVar(&details, "details", "", "Longer notes")
	cmd.Flags().StringVar(&reporter, "reporter", "", "Who raised it")
	cmd.Flags().StringVar(&priority, "priority", "Low", "Low or High")
	cmd.Flags().StringVar(&date, "date", "", "Date raised (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("idea")

	return cmd
}

func newImprovementStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Move an improvement (Backlog|In Progress|Done|Dismissed)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			imp, err := resolveImprovement(ctx, app, piFlag(cmd), args[0])
			if err != nil {
				return err
			}
			status, err := parseImprovementStatus(args[1])
			if err != nil {
				return err
			}
			imp.Status = status
			imp.UpdatedAt = time.Now().UTC()
			if err := app.Improvements.Upsert(ctx, imp); err != nil {
				return err
			}
			fmt.Printf("Moved improvement %s to %s\n", imp.ID[:8], imp.Status)
			return nil
		},
	}
}

func parseImprovementStatus(s string) (domain.ImprovementStatus, error) {
	for _, status := range []domain.ImprovementStatus{
		domain.ImprovementBacklog,
		domain.ImprovementInProgress,
		domain.ImprovementDone,
		domain.ImprovementDismissed,
	} {
		if strings.EqualFold(s, string(status)) {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", s)
}

func newImprovementRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an improvement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			imp, err := resolveImprovement(ctx, app, piFlag(cmd), args[0])
			if err != nil {
				return err
			}
			if err := app.Improvements.Delete(ctx, imp.ID); err != nil {
				return err
			}
			fmt.Printf("Removed improvement %s\n", imp.ID[:8])
			return nil
		},
	}
}
