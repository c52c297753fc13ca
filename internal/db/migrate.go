package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations run in order on every open. Statements are idempotent
// (CREATE IF NOT EXISTS) except ALTER TABLE additions, whose duplicate
// column errors are tolerated by Migrate.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id                    TEXT PRIMARY KEY,
		email                 TEXT NOT NULL UNIQUE,
		display_name          TEXT NOT NULL,
		organization_id       TEXT NOT NULL,
		skills                TEXT NOT NULL DEFAULT '',
		weekly_capacity_hours REAL NOT NULL DEFAULT 40,
		performance_score     INTEGER NOT NULL DEFAULT 50,
		available             INTEGER NOT NULL DEFAULT 1,
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS timelines (
		id                TEXT PRIMARY KEY,
		name              TEXT NOT NULL,
		framework         TEXT NOT NULL DEFAULT '',
		start_date        TEXT NOT NULL,
		target_completion TEXT NOT NULL,
		status            TEXT NOT NULL
		                  CHECK(status IN ('draft','active','paused','completed','cancelled')),
		current_progress  INTEGER NOT NULL DEFAULT 0,
		health_score      INTEGER NOT NULL DEFAULT 100,
		critical_path     TEXT NOT NULL DEFAULT '',
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS milestones (
		id               TEXT PRIMARY KEY,
		timeline_id      TEXT NOT NULL REFERENCES timelines(id) ON DELETE CASCADE,
		name             TEXT NOT NULL,
		type             TEXT NOT NULL
		                 CHECK(type IN ('framework','business','risk')),
		target_date      TEXT NOT NULL,
		status           TEXT NOT NULL
		                 CHECK(status IN ('pending','in_progress','completed','delayed','cancelled')),
		progress         INTEGER NOT NULL DEFAULT 0,
		dependencies     TEXT NOT NULL DEFAULT '',
		success_criteria TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id              TEXT PRIMARY KEY,
		title           TEXT NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		type            TEXT NOT NULL
		                CHECK(type IN ('evidence','remediation','review')),
		framework       TEXT NOT NULL DEFAULT '',
		control_id      TEXT NOT NULL DEFAULT '',
		priority        TEXT NOT NULL
		                CHECK(priority IN ('critical','high','medium','low')),
		estimated_hours REAL NOT NULL DEFAULT 0,
		assigned_to     TEXT,
		status          TEXT NOT NULL
		                CHECK(status IN ('draft','assigned','in_progress','review','completed','blocked')),
		due_date        TEXT,
		progress        INTEGER NOT NULL DEFAULT 0,
		tags            TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS task_dependencies (
		task_id       TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		depends_on_id TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		type          TEXT NOT NULL
		              CHECK(type IN ('blocks','triggers','informs')),
		status        TEXT NOT NULL
		              CHECK(status IN ('active','resolved')),
		PRIMARY KEY (task_id, depends_on_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_framework ON tasks(framework)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_assigned ON tasks(assigned_to)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,
	`CREATE INDEX IF NOT EXISTS idx_milestones_timeline ON milestones(timeline_id)`,
	`CREATE INDEX IF NOT EXISTS idx_deps_task ON task_dependencies(task_id)`,
	`CREATE INDEX IF NOT EXISTS idx_deps_target ON task_dependencies(depends_on_id)`,
	`CREATE INDEX IF NOT EXISTS idx_users_org ON users(organization_id)`,
}

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
