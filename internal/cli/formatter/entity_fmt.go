package formatter

import (
	"fmt"
	"strings"

	"github.com/mvogel/piboard/internal/domain"
)

// FormatTeams renders the configured team list.
func FormatTeams(teams []*domain.Team) string {
	rows := make([][]string, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, []string{
			t.ID,
			t.Name,
			CHF(t.StoryPointValue),
			CHF(t.Budget),
			CHF(t.HourlyRate),
		})
	}
	var b strings.Builder
	b.WriteString(Header("Teams"))
	b.WriteString("\n")
	b.WriteString(RenderTable(
		[]string{"ID", "Name", "SP Value", "Budget", "Rate"},
		rows, 2, 3, 4,
	))
	return b.String()
}

// FormatDevelopers renders the roster with the derivation-relevant
// numbers. Unset cells render blank so configured zeros stay visible.
func FormatDevelopers(devs []*domain.Developer) string {
	rows := make([][]string, 0, len(devs))
	for _, d := range devs {
		rows = append(rows, []string{
			d.Key,
			SpecialMark(d.Name, d.SpecialCase),
			d.Team,
			d.Stack,
			ptrCell(d.DailyHours),
			ptrCell(d.Load),
			ptrCell(d.DevelopRatio),
			ptrCell(d.MaintainRatio),
			ptrCell(d.ManageRatio),
			ptrCell(d.Velocity),
		})
	}
	var b strings.Builder
	b.WriteString(Header("Developers"))
	b.WriteString("\n")
	b.WriteString(RenderTable(
		[]string{"Key", "Name", "Team", "Stack", "Hours", "Load", "Dev", "Maint", "Mgmt", "Velocity"},
		rows, 4, 5, 6, 7, 8, 9,
	))
	return b.String()
}

func ptrCell(v *float64) string {
	if v == nil {
		return ""
	}
	s := fmt.Sprintf("%.1f", *v)
	return strings.TrimSuffix(s, ".0")
}

// FormatImprovements renders the improvement backlog.
func FormatImprovements(imps []*domain.Improvement) string {
	rows := make([][]string, 0, len(imps))
	for _, imp := range imps {
		rows = append(rows, []string{
			shortID(imp.ID),
			imp.Date,
			imp.Idea,
			priorityPill(imp.Priority),
			statusPill(imp.Status),
			imp.Reporter,
		})
	}
	var b strings.Builder
	b.WriteString(Header("Improvements"))
	b.WriteString("\n")
	b.WriteString(RenderTable([]string{"ID", "Date", "Idea", "Priority", "Status", "Reporter"}, rows))
	return b.String()
}

func priorityPill(p domain.ImprovementPriority) string {
	if p == domain.PriorityHigh {
		return StyleRed.Render("High")
	}
	return StyleBlue.Render("Low")
}

func statusPill(s domain.ImprovementStatus) string {
	switch s {
	case domain.ImprovementDone:
		return StyleGreen.Render("✔ Done")
	case domain.ImprovementInProgress:
		return StyleYellow.Render("● In Progress")
	case domain.ImprovementDismissed:
		return StyleDim.Render("✖ Dismissed")
	default:
		return StyleDim.Render("○ Backlog")
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return Dim(id)
}
