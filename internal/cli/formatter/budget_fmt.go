package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mvogel/piboard/internal/costing"
)

// FormatRates renders the derived team rate table.
func FormatRates(rates map[string]costing.TeamRate) string {
	names := make([]string, 0, len(rates))
	for name := range rates {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		r := rates[name]
		rows = append(rows, []string{
			name,
			Num(r.PlannedSP),
			CHF(r.PlannedCost),
			Hours(r.AvailableHours),
			fmt.Sprintf("%.2f", r.EffectiveRate),
		})
	}

	var b strings.Builder
	b.WriteString(Header("Team Rates"))
	b.WriteString("\n")
	b.WriteString(RenderTable(
		[]string{"Team", "Planned SP", "Planned CHF", "Hours", "CHF/h"},
		rows, 1, 2, 3, 4,
	))
	return b.String()
}

// FormatStoryCosts renders the priced story list. Stories without
// logged hours are dimmed.
func FormatStoryCosts(costs []costing.StoryCost) string {
	rows := make([][]string, 0, len(costs))
	for _, c := range costs {
		key := c.Story.Key
		if c.Hours == 0 {
			key = Dim(key)
		}
		rows = append(rows, []string{
			key,
			c.Story.Name,
			c.Story.Team,
			c.Story.Status,
			Num(c.Story.StoryPoints),
			Num(c.Hours),
			CHF(c.Cost),
		})
	}

	var b strings.Builder
	b.WriteString(Header("Story Costs"))
	b.WriteString("\n")
	b.WriteString(RenderTable(
		[]string{"Key", "Story", "Team", "Status", "SP", "Hours", "CHF"},
		rows, 4, 5, 6,
	))
	return b.String()
}

// FormatBudgetReport renders the topic/feature rollup with a progress
// bar per line and a colored variance.
func FormatBudgetReport(report *costing.BudgetReport) string {
	rows := make([][]string, 0, len(report.Topics)*3)
	appendRow := func(indent string, r costing.BudgetRow, bold bool) {
		name := indent + r.Name
		if bold {
			name = Bold(name)
		}
		rows = append(rows, []string{
			name,
			CHF(r.Budget),
			CHF(r.Planned),
			CHF(r.Actual),
			VarianceStyle(r.Variance).Render(CHF(r.Variance)),
			RenderProgress(float64(r.Progress)/100, 10),
		})
	}
	for _, topic := range report.Topics {
		appendRow("", topic.BudgetRow, true)
		for _, f := range topic.Features {
			appendRow("  ", f, false)
		}
	}
	appendRow("", report.Total, true)

	var b strings.Builder
	b.WriteString(Header("Budget"))
	b.WriteString("\n")
	b.WriteString(RenderTable(
		[]string{"Topic / Feature", "Budget", "Planned", "Actual", "Variance", "Progress"},
		rows, 1, 2, 3, 4,
	))
	return b.String()
}
