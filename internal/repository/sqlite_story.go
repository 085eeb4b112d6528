package repository

import (
	"context"
	"fmt"

	"github.com/mvogel/piboard/internal/db"
	"github.com/mvogel/piboard/internal/domain"
)

// SQLiteStoryRepo implements StoryRepo using a SQLite database.
type SQLiteStoryRepo struct {
	db db.DBTX
}

// NewSQLiteStoryRepo creates a new SQLiteStoryRepo.
func NewSQLiteStoryRepo(conn db.DBTX) *SQLiteStoryRepo {
	return &SQLiteStoryRepo{db: conn}
}

func (r *SQLiteStoryRepo) Upsert(ctx context.Context, s *domain.Story) error {
	query := `INSERT OR REPLACE INTO stories (pi, key, name, story_points, team, status, sprint, epic_key)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.PI, s.Key, s.Name, s.StoryPoints, s.Team, s.Status, s.Sprint, s.EpicKey,
	)
	if err != nil {
		return fmt.Errorf("upserting story: %w", err)
	}
	return nil
}

func (r *SQLiteStoryRepo) ListByPI(ctx context.Context, pi string) ([]domain.Story, error) {
	query := `SELECT pi, key, name, story_points, team, status, sprint, epic_key
		FROM stories WHERE pi = ? ORDER BY key`
	rows, err := r.db.QueryContext(ctx, query, pi)
	if err != nil {
		return nil, fmt.Errorf("listing stories: %w", err)
	}
	defer rows.Close()

	var stories []domain.Story
	for rows.Next() {
		var s domain.Story
		if err := rows.Scan(&s.PI, &s.Key, &s.Name, &s.StoryPoints, &s.Team, &s.Status, &s.Sprint, &s.EpicKey); err != nil {
			return nil, fmt.Errorf("scanning story: %w", err)
		}
		stories = append(stories, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stories: %w", err)
	}
	return stories, nil
}

// ReplaceForPI swaps a PI's stories wholesale. Run it inside a unit of
// work so a failed import leaves the previous rows intact.
func (r *SQLiteStoryRepo) ReplaceForPI(ctx context.Context, pi string, stories []domain.Story) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM stories WHERE pi = ?`, pi); err != nil {
		return fmt.Errorf("clearing stories: %w", err)
	}
	for i := range stories {
		stories[i].PI = pi
		if err := r.Upsert(ctx, &stories[i]); err != nil {
			return err
		}
	}
	return nil
}

// SQLiteTimeEntryRepo implements TimeEntryRepo using a SQLite database.
type SQLiteTimeEntryRepo struct {
	db db.DBTX
}

// NewSQLiteTimeEntryRepo creates a new SQLiteTimeEntryRepo.
func NewSQLiteTimeEntryRepo(conn db.DBTX) *SQLiteTimeEntryRepo {
	return &SQLiteTimeEntryRepo{db: conn}
}

func (r *SQLiteTimeEntryRepo) ListByPI(ctx context.Context, pi string) ([]domain.TimeEntry, error) {
	query := `SELECT pi, issue_key, sprint, hours FROM time_entries WHERE pi = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, pi)
	if err != nil {
		return nil, fmt.Errorf("listing time entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.TimeEntry
	for rows.Next() {
		var e domain.TimeEntry
		if err := rows.Scan(&e.PI, &e.IssueKey, &e.Sprint, &e.Hours); err != nil {
			return nil, fmt.Errorf("scanning time entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating time entries: %w", err)
	}
	return entries, nil
}

func (r *SQLiteTimeEntryRepo) ReplaceForPI(ctx context.Context, pi string, entries []domain.TimeEntry) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM time_entries WHERE pi = ?`, pi); err != nil {
		return fmt.Errorf("clearing time entries: %w", err)
	}
	query := `INSERT INTO time_entries (pi, issue_key, sprint, hours) VALUES (?, ?, ?, ?)`
	for _, e := range entries {
		if _, err := r.db.ExecContext(ctx, query, pi, e.IssueKey, e.Sprint, e.Hours); err != nil {
			return fmt.Errorf("inserting time entry: %w", err)
		}
	}
	return nil
}
