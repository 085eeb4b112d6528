package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mvogel/piboard/internal/db"
	"github.com/mvogel/piboard/internal/domain"
)

// SQLiteImprovementRepo implements ImprovementRepo using a SQLite database.
type SQLiteImprovementRepo struct {
	db db.DBTX
}

// NewSQLiteImprovementRepo creates a new SQLiteImprovementRepo.
func NewSQLiteImprovementRepo(conn db.DBTX) *SQLiteImprovementRepo {
	return &SQLiteImprovementRepo{db: conn}
}

func (r *SQLiteImprovementRepo) Upsert(ctx context.Context, imp *domain.Improvement) error {
	now := nowUTC()
	query := `INSERT INTO improvements (id, pi, idea, priority, reporter, status, details, date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			idea = excluded.idea,
			priority = excluded.priority,
			reporter = excluded.reporter,
			status = excluded.status,
			details = excluded.details,
			date = excluded.date,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		imp.ID, imp.PI, imp.Idea, string(imp.Priority), imp.Reporter,
		string(imp.Status), imp.Details, imp.Date, now, now,
	)
	if err != nil {
		return fmt.Errorf("upserting improvement: %w", err)
	}
	return nil
}

func (r *SQLiteImprovementRepo) Get(ctx context.Context, id string) (*domain.Improvement, error) {
	query := `SELECT id, pi, idea, priority, reporter, status, details, date, created_at, updated_at
		FROM improvements WHERE id = ?`
	return scanImprovement(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteImprovementRepo) ListByPI(ctx context.Context, pi string) ([]*domain.Improvement, error) {
	query := `SELECT id, pi, idea, priority, reporter, status, details, date, created_at, updated_at
		FROM improvements WHERE pi = ? ORDER BY date DESC, idea`
	rows, err := r.db.QueryContext(ctx, query, pi)
	if err != nil {
		return nil, fmt.Errorf("listing improvements: %w", err)
	}
	defer rows.Close()

	var imps []*domain.Improvement
	for rows.Next() {
		imp, err := scanImprovement(rows)
		if err != nil {
			return nil, err
		}
		imps = append(imps, imp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating improvements: %w", err)
	}
	return imps, nil
}

func (r *SQLiteImprovementRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM improvements WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting improvement: %w", err)
	}
	return nil
}

func scanImprovement(row rowScanner) (*domain.Improvement, error) {
	var imp domain.Improvement
	var priority, status, createdAt, updatedAt string
	err := row.Scan(&imp.ID, &imp.PI, &imp.Idea, &priority, &imp.Reporter, &status, &imp.Details, &imp.Date, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("improvement: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning improvement: %w", err)
	}
	imp.Priority = domain.ImprovementPriority(priority)
	imp.Status = domain.ImprovementStatus(status)
	imp.CreatedAt = parseTime(createdAt)
	imp.UpdatedAt = parseTime(updatedAt)
	return &imp, nil
}

// SQLiteMetadataRepo implements MetadataRepo using a SQLite database.
type SQLiteMetadataRepo struct {
	db db.DBTX
}

// NewSQLiteMetadataRepo creates a new SQLiteMetadataRepo.
func NewSQLiteMetadataRepo(conn db.DBTX) *SQLiteMetadataRepo {
	return &SQLiteMetadataRepo{db: conn}
}

func (r *SQLiteMetadataRepo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("metadata %q: %w", key, ErrNotFound)
		}
		return "", fmt.Errorf("reading metadata: %w", err)
	}
	return value, nil
}

func (r *SQLiteMetadataRepo) Set(ctx context.Context, key, value string) error {
	query := `INSERT OR REPLACE INTO metadata (key, value) VALUES (?, ?)`
	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}
	return nil
}
