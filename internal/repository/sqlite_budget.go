package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mvogel/piboard/internal/db"
	"github.com/mvogel/piboard/internal/domain"
)

// SQLiteTopicRepo implements TopicRepo using a SQLite database.
type SQLiteTopicRepo struct {
	db db.DBTX
}

// NewSQLiteTopicRepo creates a new SQLiteTopicRepo.
func NewSQLiteTopicRepo(conn db.DBTX) *SQLiteTopicRepo {
	return &SQLiteTopicRepo{db: conn}
}

func (r *SQLiteTopicRepo) Upsert(ctx context.Context, t *domain.Topic) error {
	budgets, err := encodeStringMap(t.PerTeamBudget)
	if err != nil {
		return err
	}
	now := nowUTC()
	query := `INSERT INTO topics (id, pi, key, name, priority, budget, per_team_budget, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			key = excluded.key,
			name = excluded.name,
			priority = excluded.priority,
			budget = excluded.budget,
			per_team_budget = excluded.per_team_budget,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		t.ID, t.PI, t.Key, t.Name, t.Priority, t.Budget, budgets, now, now,
	)
	if err != nil {
		return fmt.Errorf("upserting topic: %w", err)
	}
	return nil
}

func (r *SQLiteTopicRepo) GetByKey(ctx context.Context, pi, key string) (*domain.Topic, error) {
	query := `SELECT id, pi, key, name, priority, budget, per_team_budget, created_at, updated_at
		FROM topics WHERE pi = ? AND key = ?`
	return scanTopic(r.db.QueryRowContext(ctx, query, pi, key))
}

func (r *SQLiteTopicRepo) ListByPI(ctx context.Context, pi string) ([]domain.Topic, error) {
	query := `SELECT id, pi, key, name, priority, budget, per_team_budget, created_at, updated_at
		FROM topics WHERE pi = ? ORDER BY priority, name`
	rows, err := r.db.QueryContext(ctx, query, pi)
	if err != nil {
		return nil, fmt.Errorf("listing topics: %w", err)
	}
	defer rows.Close()

	var topics []domain.Topic
	for rows.Next() {
		t, err := scanTopic(rows)
		if err != nil {
			return nil, err
		}
		topics = append(topics, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating topics: %w", err)
	}
	return topics, nil
}

func (r *SQLiteTopicRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM topics WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting topic: %w", err)
	}
	return nil
}

func scanTopic(row rowScanner) (*domain.Topic, error) {
	var t domain.Topic
	var budgets, createdAt, updatedAt string
	err := row.Scan(&t.ID, &t.PI, &t.Key, &t.Name, &t.Priority, &t.Budget, &budgets, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("topic: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning topic: %w", err)
	}
	perTeam, err := decodeStringMap[float64](budgets)
	if err != nil {
		return nil, err
	}
	if len(perTeam) > 0 {
		t.PerTeamBudget = perTeam
	}
	t.CreatedAt = parseTime(createdAt)
	t.UpdatedAt = parseTime(updatedAt)
	return &t, nil
}

// SQLiteFeatureRepo implements FeatureRepo using a SQLite database.
type SQLiteFeatureRepo struct {
	db db.DBTX
}

// NewSQLiteFeatureRepo creates a new SQLiteFeatureRepo.
func NewSQLiteFeatureRepo(conn db.DBTX) *SQLiteFeatureRepo {
	return &SQLiteFeatureRepo{db: conn}
}

func (r *SQLiteFeatureRepo) Upsert(ctx context.Context, f *domain.Feature) error {
	budgets, err := encodeStringMap(f.PerTeamBudget)
	if err != nil {
		return err
	}
	now := nowUTC()
	query := `INSERT INTO features (id, pi, name, jira_key, budget, per_team_budget, epic_owner, topic_key, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			jira_key = excluded.jira_key,
			budget = excluded.budget,
			per_team_budget = excluded.per_team_budget,
			epic_owner = excluded.epic_owner,
			topic_key = excluded.topic_key,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		f.ID, f.PI, f.Name, f.JiraKey, f.Budget, budgets, f.EpicOwner, f.TopicKey, now, now,
	)
	if err != nil {
		return fmt.Errorf("upserting feature: %w", err)
	}
	return nil
}

func (r *SQLiteFeatureRepo) Get(ctx context.Context, id string) (*domain.Feature, error) {
	query := `SELECT id, pi, name, jira_key, budget, per_team_budget, epic_owner, topic_key, created_at, updated_at
		FROM features WHERE id = ?`
	return scanFeature(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteFeatureRepo) ListByPI(ctx context.Context, pi string) ([]domain.Feature, error) {
	query := `SELECT id, pi, name, jira_key, budget, per_team_budget, epic_owner, topic_key, created_at, updated_at
		FROM features WHERE pi = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, pi)
	if err != nil {
		return nil, fmt.Errorf("listing features: %w", err)
	}
	defer rows.Close()

	var features []domain.Feature
	for rows.Next() {
		f, err := scanFeature(rows)
		if err != nil {
			return nil, err
		}
		features = append(features, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating features: %w", err)
	}
	return features, nil
}

func (r *SQLiteFeatureRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM features WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting feature: %w", err)
	}
	return nil
}

func scanFeature(row rowScanner) (*domain.Feature, error) {
	var f domain.Feature
	var budgets, createdAt, updatedAt string
	err := row.Scan(&f.ID, &f.PI, &f.Name, &f.JiraKey, &f.Budget, &budgets, &f.EpicOwner, &f.TopicKey, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("feature: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning feature: %w", err)
	}
	perTeam, err := decodeStringMap[float64](budgets)
	if err != nil {
		return nil, err
	}
	if len(perTeam) > 0 {
		f.PerTeamBudget = perTeam
	}
	f.CreatedAt = parseTime(createdAt)
	f.UpdatedAt = parseTime(updatedAt)
	return &f, nil
}
