package domain

import (
	"strings"
	"time"
)

// Team carries the per-team planning parameters: the CHF value of one
// story point, the PI budget and a display hourly rate.
type Team struct {
	ID              string
	PI              string
	Name            string
	StoryPointValue float64
	Budget          float64
	HourlyRate      float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AliasSet resolves team names that appear under more than one spelling
// in imported data. Every team-name comparison in the engine goes
// through Same so "Hydrogen 1" and "H1" are one team everywhere.
type AliasSet struct {
	canon map[string]string // lowercased alias -> canonical name
}

// NewAliasSet builds an alias set from alias->canonical pairs. The
// mapping is applied in both directions: the canonical name resolves to
// itself and each alias resolves to the canonical form.
func NewAliasSet(pairs map[string]string) *AliasSet {
	canon := make(map[string]string, len(pairs)*2)
	for alias, name := range pairs {
		canon[strings.ToLower(strings.TrimSpace(alias))] = name
		canon[strings.ToLower(strings.TrimSpace(name))] = name
	}
	return &AliasSet{canon: canon}
}

// DefaultAliases returns the built-in team alias table.
func DefaultAliases() *AliasSet {
	return NewAliasSet(map[string]string{"Hydrogen 1": "H1"})
}

// Canonical returns the canonical spelling for name, or name itself
// (trimmed) when no alias is registered.
func (a *AliasSet) Canonical(name string) string {
	name = strings.TrimSpace(name)
	if c, ok := a.canon[strings.ToLower(name)]; ok {
		return c
	}
	return name
}

// Same reports whether two team names refer to the same team, ignoring
// case and registered aliases.
func (a *AliasSet) Same(x, y string) bool {
	return strings.EqualFold(a.Canonical(x), a.Canonical(y))
}
