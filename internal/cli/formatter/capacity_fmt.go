package formatter

import (
	"fmt"
	"strings"

	"github.com/mvogel/piboard/internal/capacity"
)

// FormatCapacitySummary renders one bucket's capacity table: a row per
// developer, a column per sprint, totals at the bottom. Special-case
// developers are listed but marked; their numbers are not in the
// totals.
func FormatCapacitySummary(sum *capacity.Summary) string {
	headers := []string{"Developer", "Team"}
	headers = append(headers, sum.Sprints...)
	headers = append(headers, "Total", "w/o IP")

	rightCols := make([]int, 0, len(sum.Sprints)+2)
	for i := 2; i < len(headers); i++ {
		rightCols = append(rightCols, i)
	}

	rows := make([][]string, 0, len(sum.Rows)+1)
	for _, r := range sum.Rows {
		row := []string{SpecialMark(r.Dev.Name, r.Dev.SpecialCase), r.Dev.Team}
		for _, sprint := range sum.Sprints {
			row = append(row, Num(r.PerSprint[sprint]))
		}
		row = append(row, Hours(r.Total), Hours(r.TotalNoIP))
		rows = append(rows, row)
	}

	total := []string{Bold("Total"), ""}
	for _, sprint := range sum.Sprints {
		total = append(total, Bold(Hours(sum.SprintTotals[sprint])))
	}
	total = append(total, Bold(Hours(sum.Total)), Bold(Hours(sum.TotalNoIP)))
	rows = append(rows, total)

	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Capacity · %s", sum.Bucket)))
	b.WriteString("\n")
	b.WriteString(RenderTable(headers, rows, rightCols...))
	if hasSpecialCase(sum) {
		b.WriteString(Dim("* special case, excluded from totals"))
		b.WriteString("\n")
	}
	return b.String()
}

func hasSpecialCase(sum *capacity.Summary) bool {
	for _, r := range sum.Rows {
		if r.Dev.SpecialCase {
			return true
		}
	}
	return false
}
