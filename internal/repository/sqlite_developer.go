package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mvogel/piboard/internal/db"
	"github.com/mvogel/piboard/internal/domain"
)

// SQLiteDeveloperRepo implements DeveloperRepo using a SQLite database.
type SQLiteDeveloperRepo struct {
	db db.DBTX
}

// NewSQLiteDeveloperRepo creates a new SQLiteDeveloperRepo.
func NewSQLiteDeveloperRepo(conn db.DBTX) *SQLiteDeveloperRepo {
	return &SQLiteDeveloperRepo{db: conn}
}

const developerColumns = `pi, key, name, team, stack, special_case,
	daily_hours, work_ratio, load, develop_ratio, maintain_ratio, manage_ratio,
	velocity, internal_cost, sprint_teams, created_at, updated_at`

func (r *SQLiteDeveloperRepo) Upsert(ctx context.Context, d *domain.Developer) error {
	sprintTeams, err := encodeStringMap(d.SprintTeams)
	if err != nil {
		return err
	}
	now := nowUTC()
	query := `INSERT INTO developers (` + developerColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(pi, key) DO UPDATE SET
			name = excluded.name,
			team = excluded.team,
			stack = excluded.stack,
			special_case = excluded.special_case,
			daily_hours = excluded.daily_hours,
			work_ratio = excluded.work_ratio,
			load = excluded.load,
			develop_ratio = excluded.develop_ratio,
			maintain_ratio = excluded.maintain_ratio,
			manage_ratio = excluded.manage_ratio,
			velocity = excluded.velocity,
			internal_cost = excluded.internal_cost,
			sprint_teams = excluded.sprint_teams,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		d.PI, d.Key, d.Name, d.Team, d.Stack, boolToInt(d.SpecialCase),
		nullableFloatToValue(d.DailyHours),
		nullableFloatToValue(d.WorkRatio),
		nullableFloatToValue(d.Load),
		nullableFloatToValue(d.DevelopRatio),
		nullableFloatToValue(d.MaintainRatio),
		nullableFloatToValue(d.ManageRatio),
		nullableFloatToValue(d.Velocity),
		nullableFloatToValue(d.InternalCost),
		sprintTeams, now, now,
	)
	if err != nil {
		return fmt.Errorf("upserting developer: %w", err)
	}
	return nil
}

func (r *SQLiteDeveloperRepo) Get(ctx context.Context, pi, key string) (*domain.Developer, error) {
	query := `SELECT ` + developerColumns + ` FROM developers WHERE pi = ? AND key = ?`
	return scanDeveloper(r.db.QueryRowContext(ctx, query, pi, key))
}

func (r *SQLiteDeveloperRepo) ListByPI(ctx context.Context, pi string) ([]*domain.Developer, error) {
	query := `SELECT ` + developerColumns + ` FROM developers WHERE pi = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, pi)
	if err != nil {
		return nil, fmt.Errorf("listing developers: %w", err)
	}
	defer rows.Close()

	var devs []*domain.Developer
	for rows.Next() {
		d, err := scanDeveloper(rows)
		if err != nil {
			return nil, err
		}
		devs = append(devs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating developers: %w", err)
	}
	return devs, nil
}

func (r *SQLiteDeveloperRepo) Delete(ctx context.Context, pi, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM developers WHERE pi = ? AND key = ?`, pi, key); err != nil {
		return fmt.Errorf("deleting developer: %w", err)
	}
	return nil
}

func (r *SQLiteDeveloperRepo) ReplaceForPI(ctx context.Context, pi string, devs []*domain.Developer) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM developers WHERE pi = ?`, pi); err != nil {
		return fmt.Errorf("clearing developers: %w", err)
	}
	for _, d := range devs {
		d.PI = pi
		if err := r.Upsert(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

func scanDeveloper(row rowScanner) (*domain.Developer, error) {
	var d domain.Developer
	var specialCase int
	var dailyHours, workRatio, load, developRatio, maintainRatio, manageRatio, velocity, internalCost sql.NullFloat64
	var sprintTeams, createdAt, updatedAt string
	err := row.Scan(
		&d.PI, &d.Key, &d.Name, &d.Team, &d.Stack, &specialCase,
		&dailyHours, &workRatio, &load, &developRatio, &maintainRatio, &manageRatio,
		&velocity, &internalCost, &sprintTeams, &createdAt, &updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("developer: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning developer: %w", err)
	}
	d.SpecialCase = intToBool(specialCase)
	d.DailyHours = parseNullableFloat(dailyHours)
	d.WorkRatio = parseNullableFloat(workRatio)
	d.Load = parseNullableFloat(load)
	d.DevelopRatio = parseNullableFloat(developRatio)
	d.MaintainRatio = parseNullableFloat(maintainRatio)
	d.ManageRatio = parseNullableFloat(manageRatio)
	d.Velocity = parseNullableFloat(velocity)
	d.InternalCost = parseNullableFloat(internalCost)
	teams, err := decodeStringMap[string](sprintTeams)
	if err != nil {
		return nil, err
	}
	if len(teams) > 0 {
		d.SprintTeams = teams
	}
	d.CreatedAt = parseTime(createdAt)
	d.UpdatedAt = parseTime(updatedAt)
	return &d, nil
}
