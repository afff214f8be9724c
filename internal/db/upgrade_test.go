package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradePath_ProjectsWithoutBudget simulates a database whose
// project rows predate stored budgets. Existing rows must survive and end up
// with a decodable empty budget.
func TestMigrate_UpgradePath_ProjectsWithoutBudget(t *testing.T) {
	db, err := sql.Open("sqlite", MemoryPath)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(migrations[0])
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO projects (id, short_id, name, status, created_at, updated_at)
		VALUES ('p1', 'OPERA01', 'Legacy Opera', 'active', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	var name, budget string
	require.NoError(t, db.QueryRow(`SELECT name, budget_json FROM projects WHERE id = 'p1'`).Scan(&name, &budget))
	assert.Equal(t, "Legacy Opera", name)
	assert.Equal(t, EmptyBudgetJSON, budget)

	// Re-running leaves the backfilled value alone.
	_, err = db.Exec(`UPDATE projects SET budget_json = '{"revision":3}' WHERE id = 'p1'`)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, db.QueryRow(`SELECT budget_json FROM projects WHERE id = 'p1'`).Scan(&budget))
	assert.Equal(t, `{"revision":3}`, budget)
}
