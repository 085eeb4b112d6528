// Package config loads the optional piboard.yaml. Everything has a
// working default so a missing file is not an error.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mvogel/piboard/internal/domain"
	"github.com/mvogel/piboard/internal/sprintcal"
)

// Config is the structure of piboard.yaml. Only the fields the
// commands read are modeled.
type Config struct {
	DefaultPI string                    `yaml:"default_pi"`
	DBPath    string                    `yaml:"db_path"`
	Aliases   map[string]string         `yaml:"aliases"`
	PIs       map[string][]SprintWindow `yaml:"pis"`
}

// SprintWindow is one sprint's date range in the config file.
type SprintWindow struct {
	Label string `yaml:"label"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// Default returns the built-in configuration: PI 26.1 with its
// standard sprint windows, a piboard.db next to the binary and the
// built-in alias table.
func Default() *Config {
	return &Config{
		DefaultPI: "26.1",
		DBPath:    "piboard.db",
	}
}

// Load parses the YAML configuration file at path. A missing file
// yields the defaults; a present but broken file is an error.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if c.DefaultPI == "" {
		c.DefaultPI = "26.1"
	}
	if c.DBPath == "" {
		c.DBPath = "piboard.db"
	}
	return c, nil
}

// AliasSet merges the configured aliases over the built-in table.
func (c *Config) AliasSet() *domain.AliasSet {
	if len(c.Aliases) == 0 {
		return domain.DefaultAliases()
	}
	pairs := map[string]string{"Hydrogen 1": "H1"}
	for alias, name := range c.Aliases {
		pairs[alias] = name
	}
	return domain.NewAliasSet(pairs)
}

// WindowsFor returns the sprint windows for a PI, falling back to the
// built-in 26.1 windows when the PI is not configured.
func (c *Config) WindowsFor(pi string) []sprintcal.Window {
	if ws, ok := c.PIs[pi]; ok {
		out := make([]sprintcal.Window, len(ws))
		for i, w := range ws {
			label := w.Label
			if label == "" {
				label = fmt.Sprintf("%s-S%d", pi, i+1)
			}
			out[i] = sprintcal.Window{Label: label, Start: w.Start, End: w.End}
		}
		return out
	}
	return sprintcal.DefaultWindows(pi)
}
