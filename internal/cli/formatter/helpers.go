package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// Num formats a number for a table cell: one decimal, trailing .0
// trimmed, a dimmed dash for zero.
func Num(v float64) string {
	if v == 0 {
		return StyleDim.Render("–")
	}
	s := strconv.FormatFloat(v, 'f', 1, 64)
	s = strings.TrimSuffix(s, ".0")
	return s
}

// Hours formats an hour amount with one decimal.
func Hours(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// CHF formats an amount in Swiss francs with an apostrophe thousands
// separator, the way the planning sheets always showed money.
func CHF(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	whole := int64(v + 0.5)
	s := strconv.FormatInt(whole, 10)
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, "'")
	if neg {
		out = "-" + out
	}
	return out
}

// Pct formats a ratio that may be blank. A nil value renders as a
// dimmed dash so unentered sheet cells stay visually distinct from a
// genuine zero.
func Pct(v *float64) string {
	if v == nil {
		return StyleDim.Render("–")
	}
	return fmt.Sprintf("%.0f%%", *v)
}

// SpecialMark appends the special-case marker to a developer name.
func SpecialMark(name string, special bool) string {
	if special {
		return name + StyleDim.Render(" *")
	}
	return name
}
