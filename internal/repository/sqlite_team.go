package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mvogel/piboard/internal/db"
	"github.com/mvogel/piboard/internal/domain"
)

// SQLiteTeamRepo implements TeamRepo using a SQLite database.
type SQLiteTeamRepo struct {
	db db.DBTX
}

// NewSQLiteTeamRepo creates a new SQLiteTeamRepo.
func NewSQLiteTeamRepo(conn db.DBTX) *SQLiteTeamRepo {
	return &SQLiteTeamRepo{db: conn}
}

func (r *SQLiteTeamRepo) Upsert(ctx context.Context, t *domain.Team) error {
	now := nowUTC()
	query := `INSERT INTO teams (pi, id, name, story_point_value, budget, hourly_rate, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(pi, id) DO UPDATE SET
			name = excluded.name,
			story_point_value = excluded.story_point_value,
			budget = excluded.budget,
			hourly_rate = excluded.hourly_rate,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		t.PI, t.ID, t.Name, t.StoryPointValue, t.Budget, t.HourlyRate, now, now,
	)
	if err != nil {
		return fmt.Errorf("upserting team: %w", err)
	}
	return nil
}

func (r *SQLiteTeamRepo) Get(ctx context.Context, pi, id string) (*domain.Team, error) {
	query := `SELECT pi, id, name, story_point_value, budget, hourly_rate, created_at, updated_at
		FROM teams WHERE pi = ? AND id = ?`
	row := r.db.QueryRowContext(ctx, query, pi, id)
	return scanTeam(row)
}

func (r *SQLiteTeamRepo) ListByPI(ctx context.Context, pi string) ([]*domain.Team, error) {
	query := `SELECT pi, id, name, story_point_value, budget, hourly_rate, created_at, updated_at
		FROM teams WHERE pi = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, pi)
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	defer rows.Close()

	var teams []*domain.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating teams: %w", err)
	}
	return teams, nil
}

func (r *SQLiteTeamRepo) Delete(ctx context.Context, pi, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE pi = ? AND id = ?`, pi, id); err != nil {
		return fmt.Errorf("deleting team: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTeam(row rowScanner) (*domain.Team, error) {
	var t domain.Team
	var createdAt, updatedAt string
	err := row.Scan(&t.PI, &t.ID, &t.Name, &t.StoryPointValue, &t.Budget, &t.HourlyRate, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("team: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning team: %w", err)
	}
	t.CreatedAt = parseTime(createdAt)
	t.UpdatedAt = parseTime(updatedAt)
	return &t, nil
}
