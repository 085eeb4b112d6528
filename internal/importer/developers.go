package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mvogel/piboard/internal/domain"
)

// developerRecord is the JSON shape of one exported roster entry.
// Numerics are raw JSON so "80", 80 and null all coerce sensibly.
type developerRecord struct {
	Key           string            `json:"key"`
	Name          string            `json:"name"`
	Team          string            `json:"team"`
	Stack         string            `json:"stack"`
	SpecialCase   bool              `json:"specialCase"`
	DailyHours    json.RawMessage   `json:"dailyHours"`
	WorkRatio     json.RawMessage   `json:"workRatio"`
	Load          json.RawMessage   `json:"load"`
	DevelopRatio  json.RawMessage   `json:"developRatio"`
	MaintainRatio json.RawMessage   `json:"maintainRatio"`
	ManageRatio   json.RawMessage   `json:"manageRatio"`
	Velocity      json.RawMessage   `json:"velocity"`
	InternalCost  json.RawMessage   `json:"internalCost"`
	SprintTeams   map[string]string `json:"sprintTeams"`
}

// coerceFloat turns a raw JSON value into *float64. Numbers and numeric
// strings parse; null, "", and anything else come back nil.
func coerceFloat(raw json.RawMessage) *float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		if err := json.Unmarshal([]byte(s), &f); err == nil {
			return &f
		}
	}
	return nil
}

// ParseDevelopersJSON parses an exported roster. Every developer is
// forced onto the target PI regardless of what the export says.
func ParseDevelopersJSON(r io.Reader, pi string) ([]*domain.Developer, error) {
	var records []developerRecord
	dec := json.NewDecoder(r)
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding developers json: %w", err)
	}

	var devs []*domain.Developer
	for i, rec := range records {
		if rec.Key == "" {
			return nil, fmt.Errorf("developer %d: missing key", i)
		}
		devs = append(devs, &domain.Developer{
			PI:            pi,
			Key:           rec.Key,
			Name:          domain.CoalesceStr(rec.Name, rec.Key),
			Team:          rec.Team,
			Stack:         rec.Stack,
			SpecialCase:   rec.SpecialCase,
			DailyHours:    coerceFloat(rec.DailyHours),
			WorkRatio:     coerceFloat(rec.WorkRatio),
			Load:          coerceFloat(rec.Load),
			DevelopRatio:  coerceFloat(rec.DevelopRatio),
			MaintainRatio: coerceFloat(rec.MaintainRatio),
			ManageRatio:   coerceFloat(rec.ManageRatio),
			Velocity:      coerceFloat(rec.Velocity),
			InternalCost:  coerceFloat(rec.InternalCost),
			SprintTeams:   rec.SprintTeams,
		})
	}
	return devs, nil
}

// ParseDevelopersCSV parses a roster CSV. Empty numeric cells stay
// unset so the derivation defaults apply.
func ParseDevelopersCSV(r io.Reader, pi string) ([]*domain.Developer, error) {
	header, records, err := readAll(r)
	if err != nil {
		return nil, err
	}

	var devs []*domain.Developer
	for i, record := range records {
		if len(record) == 0 {
			continue
		}
		key := header.pick(record, "Key", "ID")
		if key == "" {
			return nil, fmt.Errorf("row %d: missing developer key", i+2)
		}
		d := &domain.Developer{
			PI:          pi,
			Key:         key,
			Name:        domain.CoalesceStr(header.pick(record, "Name"), key),
			Team:        header.pick(record, "Team"),
			Stack:       header.pick(record, "Stack"),
			SpecialCase: strings.EqualFold(header.pick(record, "Special Case", "specialCase"), "true"),
		}
		setIfPresent := func(dst **float64, names ...string) {
			if raw := header.pick(record, names...); raw != "" {
				v := header.pickFloat(record, names...)
				*dst = &v
			}
		}
		setIfPresent(&d.DailyHours, "Daily Hours", "dailyHours")
		setIfPresent(&d.WorkRatio, "Work Ratio", "workRatio")
		setIfPresent(&d.Load, "Load")
		setIfPresent(&d.DevelopRatio, "Develop Ratio", "developRatio")
		setIfPresent(&d.MaintainRatio, "Maintain Ratio", "maintainRatio")
		setIfPresent(&d.ManageRatio, "Manage Ratio", "manageRatio")
		setIfPresent(&d.Velocity, "Velocity")
		setIfPresent(&d.InternalCost, "Internal Cost", "internalCost")
		devs = append(devs, d)
	}
	return devs, nil
}
