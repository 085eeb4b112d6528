package formatter

import (
	"strconv"
	"strings"

	"github.com/mvogel/piboard/internal/domain"
	"github.com/mvogel/piboard/internal/sprintcal"
)

// FormatCalendar renders the PI day list: date, weekday, ISO week and
// sprint. Sprint boundaries get a blank line.
func FormatCalendar(days []domain.CalendarDay) string {
	rows := make([][]string, 0, len(days))
	prevSprint := ""
	for _, d := range days {
		if prevSprint != "" && d.Sprint != prevSprint {
			rows = append(rows, []string{"", "", "", ""})
		}
		prevSprint = d.Sprint
		rows = append(rows, []string{
			d.Date,
			sprintcal.WeekdayShort(d.Date),
			strconv.Itoa(sprintcal.ISOWeek(d.Date)),
			d.Sprint,
		})
	}

	var b strings.Builder
	b.WriteString(Header("Calendar"))
	b.WriteString("\n")
	b.WriteString(RenderTable([]string{"Date", "Day", "Week", "Sprint"}, rows, 2))
	return b.String()
}
