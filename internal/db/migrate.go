package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS teams (
		pi                TEXT NOT NULL,
		id                TEXT NOT NULL,
		name              TEXT NOT NULL,
		story_point_value REAL NOT NULL DEFAULT 0,
		budget            REAL NOT NULL DEFAULT 0,
		hourly_rate       REAL NOT NULL DEFAULT 0,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL,
		PRIMARY KEY (pi, id)
	)`,

	`CREATE TABLE IF NOT EXISTS developers (
		pi             TEXT NOT NULL,
		key            TEXT NOT NULL,
		name           TEXT NOT NULL DEFAULT '',
		team           TEXT NOT NULL DEFAULT '',
		stack          TEXT NOT NULL DEFAULT '',
		special_case   INTEGER NOT NULL DEFAULT 0,
		daily_hours    REAL,
		work_ratio     REAL,
		load           REAL,
		develop_ratio  REAL,
		maintain_ratio REAL,
		manage_ratio   REAL,
		velocity       REAL,
		internal_cost  REAL,
		sprint_teams   TEXT NOT NULL DEFAULT '{}',
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL,
		PRIMARY KEY (pi, key)
	)`,

	`CREATE TABLE IF NOT EXISTS calendar_days (
		pi     TEXT NOT NULL,
		date   TEXT NOT NULL,
		sprint TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (pi, date)
	)`,

	`CREATE TABLE IF NOT EXISTS availability (
		pi      TEXT NOT NULL,
		date    TEXT NOT NULL,
		dev_key TEXT NOT NULL,
		value   TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (pi, date, dev_key)
	)`,

	`CREATE TABLE IF NOT EXISTS stories (
		pi           TEXT NOT NULL,
		key          TEXT NOT NULL,
		name         TEXT NOT NULL DEFAULT '',
		story_points REAL NOT NULL DEFAULT 0,
		team         TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL DEFAULT '',
		sprint       TEXT NOT NULL DEFAULT '',
		epic_key     TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (pi, key)
	)`,

	`CREATE TABLE IF NOT EXISTS time_entries (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		pi        TEXT NOT NULL,
		issue_key TEXT NOT NULL,
		sprint    TEXT NOT NULL DEFAULT '',
		hours     REAL NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_pi ON time_entries(pi)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_key ON time_entries(pi, issue_key)`,

	`CREATE TABLE IF NOT EXISTS topics (
		id              TEXT PRIMARY KEY,
		pi              TEXT NOT NULL,
		key             TEXT NOT NULL,
		name            TEXT NOT NULL DEFAULT '',
		priority        INTEGER NOT NULL DEFAULT 0,
		budget          REAL NOT NULL DEFAULT 0,
		per_team_budget TEXT NOT NULL DEFAULT '{}',
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL,
		UNIQUE (pi, key)
	)`,

	`CREATE TABLE IF NOT EXISTS features (
		id              TEXT PRIMARY KEY,
		pi              TEXT NOT NULL,
		name            TEXT NOT NULL DEFAULT '',
		jira_key        TEXT NOT NULL DEFAULT '',
		budget          REAL NOT NULL DEFAULT 0,
		per_team_budget TEXT NOT NULL DEFAULT '{}',
		epic_owner      TEXT NOT NULL DEFAULT '',
		topic_key       TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_features_pi ON features(pi)`,

	`CREATE TABLE IF NOT EXISTS metric_values (
		pi     TEXT NOT NULL,
		team   TEXT NOT NULL,
		sprint INTEGER NOT NULL,
		metric TEXT NOT NULL,
		kind   TEXT NOT NULL CHECK(kind IN ('plan','actual')),
		value  REAL NOT NULL DEFAULT 0,
		PRIMARY KEY (pi, team, sprint, metric, kind)
	)`,

	`CREATE TABLE IF NOT EXISTS improvements (
		id         TEXT PRIMARY KEY,
		pi         TEXT NOT NULL,
		idea       TEXT NOT NULL DEFAULT '',
		priority   TEXT NOT NULL DEFAULT 'Low'
		           CHECK(priority IN ('Low','High')),
		reporter   TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL DEFAULT 'Backlog'
		           CHECK(status IN ('Backlog','In Progress','Done','Dismissed')),
		details    TEXT NOT NULL DEFAULT '',
		date       TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS metadata (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL DEFAULT ''
	)`,
}
