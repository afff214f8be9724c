package db

import (
	"context"
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
	if err := migrateBackfillBudgets(db); err != nil {
		return fmt.Errorf("backfilling empty budgets: %w", err)
	}
	return nil
}

// Money columns are TEXT holding a decimal string, never REAL.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id              TEXT PRIMARY KEY,
		short_id        TEXT NOT NULL DEFAULT '',
		name            TEXT NOT NULL,
		discipline      TEXT NOT NULL DEFAULT '',
		status          TEXT NOT NULL DEFAULT 'active'
		                CHECK(status IN ('active','archived')),
		budget_json     TEXT NOT NULL DEFAULT '',
		estimated_sales TEXT NOT NULL DEFAULT '0',
		actual_sales    TEXT NOT NULL DEFAULT '0',
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_short_id ON projects(short_id) WHERE short_id != ''`,

	`CREATE TABLE IF NOT EXISTS venues (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		capacity     INTEGER NOT NULL DEFAULT 0,
		cost_type    TEXT NOT NULL DEFAULT 'free'
		             CHECK(cost_type IN ('free','rented','in_kind')),
		cost_amount  TEXT NOT NULL DEFAULT '0',
		cost_period  TEXT NOT NULL DEFAULT 'flat_rate'
		             CHECK(cost_period IN ('flat_rate','per_day','per_hour')),
		created_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS occurrences (
		id                   TEXT PRIMARY KEY,
		project_id           TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		venue_id             TEXT REFERENCES venues(id) ON DELETE SET NULL,
		title                TEXT NOT NULL DEFAULT '',
		status               TEXT NOT NULL DEFAULT 'scheduled'
		                     CHECK(status IN ('scheduled','confirmed','completed','pending','cancelled')),
		start_date           TEXT NOT NULL,
		end_date             TEXT,
		start_time           TEXT NOT NULL DEFAULT '',
		end_time             TEXT NOT NULL DEFAULT '',
		is_all_day           INTEGER NOT NULL DEFAULT 0,
		is_template          INTEGER NOT NULL DEFAULT 0,
		override_cost_type   TEXT,
		override_cost_amount TEXT,
		override_cost_period TEXT,
		created_at           TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_occurrences_project ON occurrences(project_id)`,

	`CREATE TABLE IF NOT EXISTS ticket_offerings (
		id                TEXT PRIMARY KEY,
		occurrence_id     TEXT NOT NULL REFERENCES occurrences(id) ON DELETE CASCADE,
		name              TEXT NOT NULL DEFAULT '',
		price             TEXT NOT NULL DEFAULT '0',
		capacity_override INTEGER NOT NULL DEFAULT 0,
		sold_count        INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_ticket_offerings_occurrence ON ticket_offerings(occurrence_id)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id             TEXT PRIMARY KEY,
		project_id     TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		title          TEXT NOT NULL,
		work_type      TEXT NOT NULL DEFAULT 'paid'
		               CHECK(work_type IN ('paid','in_kind','volunteer')),
		hourly_rate    TEXT NOT NULL DEFAULT '0',
		budget_item_id TEXT NOT NULL DEFAULT '',
		created_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,

	`CREATE TABLE IF NOT EXISTS activities (
		id         TEXT PRIMARY KEY,
		task_id    TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		date       TEXT NOT NULL,
		hours      TEXT NOT NULL DEFAULT '0',
		status     TEXT NOT NULL DEFAULT 'pending'
		           CHECK(status IN ('pending','approved')),
		note       TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_activities_task ON activities(task_id)`,

	`CREATE TABLE IF NOT EXISTS sale_sessions (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		association_type TEXT NOT NULL
		                 CHECK(association_type IN ('project','event')),
		project_id       TEXT NOT NULL DEFAULT '',
		event_id         TEXT NOT NULL DEFAULT '',
		expected_revenue TEXT NOT NULL DEFAULT '0'
	)`,

	`CREATE TABLE IF NOT EXISTS sales_transactions (
		id              TEXT PRIMARY KEY,
		sale_session_id TEXT NOT NULL REFERENCES sale_sessions(id) ON DELETE CASCADE,
		total           TEXT NOT NULL DEFAULT '0',
		recorded_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sales_transactions_session ON sales_transactions(sale_session_id)`,
}

// migrateBackfillBudgets gives projects created before budgets were stored
// an empty budget document so every row decodes.
// Idempotent: only rows with an empty budget_json are touched.
func migrateBackfillBudgets(db *sql.DB) error {
	ctx := context.Background()
	if _, err := db.ExecContext(ctx, `UPDATE projects SET budget_json = ? WHERE budget_json = ''`, EmptyBudgetJSON); err != nil {
		return fmt.Errorf("updating projects: %w", err)
	}
	return nil
}

// EmptyBudgetJSON is the stored form of a budget with no lines.
const EmptyBudgetJSON = `{"revision":0,"revenues":{},"expenses":{}}`
