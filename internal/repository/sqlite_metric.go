package repository

import (
	"context"
	"fmt"

	"github.com/mvogel/piboard/internal/db"
	"github.com/mvogel/piboard/internal/domain"
)

// SQLiteMetricRepo implements MetricRepo using a SQLite database.
type SQLiteMetricRepo struct {
	db db.DBTX
}

// NewSQLiteMetricRepo creates a new SQLiteMetricRepo.
func NewSQLiteMetricRepo(conn db.DBTX) *SQLiteMetricRepo {
	return &SQLiteMetricRepo{db: conn}
}

func (r *SQLiteMetricRepo) Set(ctx context.Context, pi, team string, key domain.MetricKey, value float64) error {
	query := `INSERT OR REPLACE INTO metric_values (pi, team, sprint, metric, kind, value)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, pi, team, key.Sprint, key.Metric, string(key.Kind), value)
	if err != nil {
		return fmt.Errorf("setting metric value: %w", err)
	}
	return nil
}

func (r *SQLiteMetricRepo) SheetFor(ctx context.Context, pi, team string) (*domain.MetricSheet, error) {
	query := `SELECT sprint, metric, kind, value FROM metric_values WHERE pi = ? AND team = ?`
	rows, err := r.db.QueryContext(ctx, query, pi, team)
	if err != nil {
		return nil, fmt.Errorf("loading metric sheet: %w", err)
	}
	defer rows.Close()

	sheet := domain.NewMetricSheet(pi, team)
	for rows.Next() {
		var sprint int
		var metric, kind string
		var value float64
		if err := rows.Scan(&sprint, &metric, &kind, &value); err != nil {
			return nil, fmt.Errorf("scanning metric value: %w", err)
		}
		sheet.Set(sprint, metric, domain.MetricKind(kind), value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating metric values: %w", err)
	}
	return sheet, nil
}

func (r *SQLiteMetricRepo) SheetsByPI(ctx context.Context, pi string) ([]*domain.MetricSheet, error) {
	query := `SELECT team, sprint, metric, kind, value FROM metric_values WHERE pi = ? ORDER BY team`
	rows, err := r.db.QueryContext(ctx, query, pi)
	if err != nil {
		return nil, fmt.Errorf("loading metric sheets: %w", err)
	}
	defer rows.Close()

	byTeam := map[string]*domain.MetricSheet{}
	var order []string
	for rows.Next() {
		var team, metric, kind string
		var sprint int
		var value float64
		if err := rows.Scan(&team, &sprint, &metric, &kind, &value); err != nil {
			return nil, fmt.Errorf("scanning metric value: %w", err)
		}
		sheet, ok := byTeam[team]
		if !ok {
			sheet = domain.NewMetricSheet(pi, team)
			byTeam[team] = sheet
			order = append(order, team)
		}
		sheet.Set(sprint, metric, domain.MetricKind(kind), value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating metric values: %w", err)
	}

	sheets := make([]*domain.MetricSheet, 0, len(order))
	for _, team := range order {
		sheets = append(sheets, byTeam[team])
	}
	return sheets, nil
}
