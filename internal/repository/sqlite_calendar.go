package repository

import (
	"context"
	"fmt"

	"github.com/mvogel/piboard/internal/db"
	"github.com/mvogel/piboard/internal/domain"
)

// SQLiteCalendarRepo implements CalendarRepo using a SQLite database.
type SQLiteCalendarRepo struct {
	db db.DBTX
}

// NewSQLiteCalendarRepo creates a new SQLiteCalendarRepo.
func NewSQLiteCalendarRepo(conn db.DBTX) *SQLiteCalendarRepo {
	return &SQLiteCalendarRepo{db: conn}
}

func (r *SQLiteCalendarRepo) UpsertDay(ctx context.Context, d *domain.CalendarDay) error {
	query := `INSERT OR REPLACE INTO calendar_days (pi, date, sprint) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, d.PI, d.Date, d.Sprint); err != nil {
		return fmt.Errorf("upserting calendar day: %w", err)
	}
	return nil
}

func (r *SQLiteCalendarRepo) ListByPI(ctx context.Context, pi string) ([]domain.CalendarDay, error) {
	query := `SELECT pi, date, sprint FROM calendar_days WHERE pi = ? ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, pi)
	if err != nil {
		return nil, fmt.Errorf("listing calendar days: %w", err)
	}
	defer rows.Close()

	var days []domain.CalendarDay
	for rows.Next() {
		var d domain.CalendarDay
		if err := rows.Scan(&d.PI, &d.Date, &d.Sprint); err != nil {
			return nil, fmt.Errorf("scanning calendar day: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating calendar days: %w", err)
	}
	return days, nil
}

func (r *SQLiteCalendarRepo) CountByPI(ctx context.Context, pi string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM calendar_days WHERE pi = ?`, pi).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting calendar days: %w", err)
	}
	return n, nil
}

// SQLiteAvailabilityRepo implements AvailabilityRepo using a SQLite database.
type SQLiteAvailabilityRepo struct {
	db db.DBTX
}

// NewSQLiteAvailabilityRepo creates a new SQLiteAvailabilityRepo.
func NewSQLiteAvailabilityRepo(conn db.DBTX) *SQLiteAvailabilityRepo {
	return &SQLiteAvailabilityRepo{db: conn}
}

func (r *SQLiteAvailabilityRepo) Set(ctx context.Context, d *domain.AvailabilityDay) error {
	query := `INSERT OR REPLACE INTO availability (pi, date, dev_key, value) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, d.PI, d.Date, d.Dev, d.Value); err != nil {
		return fmt.Errorf("setting availability: %w", err)
	}
	return nil
}

func (r *SQLiteAvailabilityRepo) GridByPI(ctx context.Context, pi string) (domain.AvailabilitySet, error) {
	query := `SELECT date, dev_key, value FROM availability WHERE pi = ?`
	rows, err := r.db.QueryContext(ctx, query, pi)
	if err != nil {
		return nil, fmt.Errorf("loading availability: %w", err)
	}
	defer rows.Close()

	grid := domain.AvailabilitySet{}
	for rows.Next() {
		var date, dev, value string
		if err := rows.Scan(&date, &dev, &value); err != nil {
			return nil, fmt.Errorf("scanning availability: %w", err)
		}
		grid.Set(dev, date, value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating availability: %w", err)
	}
	return grid, nil
}
