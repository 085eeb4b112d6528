package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvogel/piboard/internal/db"
)

func TestMigrate_CreatesAllTables(t *testing.T) {
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	tables := []string{
		"teams", "developers", "calendar_days", "availability",
		"stories", "time_entries", "topics", "features",
		"metric_values", "improvements", "metadata",
	}
	for _, table := range tables {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		require.NoError(t, err, "table %s missing", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, db.Migrate(database))
	require.NoError(t, db.Migrate(database))
}

// Story rows upsert by (pi, key): the second write wins.
func TestStoryUpsert_LastWriteWins(t *testing.T) {
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	const insert = `INSERT OR REPLACE INTO stories (pi, key, name, story_points, team, status, sprint, epic_key)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = database.Exec(insert, "26.1", "PD-1", "first", 3.0, "Neon", "Open", "26.1-S1", "")
	require.NoError(t, err)
	_, err = database.Exec(insert, "26.1", "PD-1", "second", 5.0, "Neon", "Done", "26.1-S2", "PD-100")
	require.NoError(t, err)

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM stories`).Scan(&count))
	assert.Equal(t, 1, count)

	var name string
	var sp float64
	require.NoError(t, database.QueryRow(
		`SELECT name, story_points FROM stories WHERE pi = ? AND key = ?`, "26.1", "PD-1",
	).Scan(&name, &sp))
	assert.Equal(t, "second", name)
	assert.Equal(t, 5.0, sp)
}
