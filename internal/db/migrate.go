package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migratePlanItemsRepetitionKind(db); err != nil {
		return fmt.Errorf("migrating plan_items kind constraint: %w", err)
	}
	return nil
}

// migratePlanItemsRepetitionKind rebuilds plan_items when its kind CHECK
// predates spaced-repetition items. SQLite cannot alter a CHECK in place.
func migratePlanItemsRepetitionKind(db *sql.DB) error {
	ctx := context.Background()
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquiring db connection: %w", err)
	}
	defer conn.Close()

	var createSQL string
	if err := conn.QueryRowContext(ctx, `SELECT sql FROM sqlite_master WHERE type = 'table' AND name = 'plan_items'`).Scan(&createSQL); err != nil {
		return fmt.Errorf("loading plan_items schema: %w", err)
	}
	if strings.Contains(strings.ToLower(createSQL), "'repetition'") {
		return nil
	}

	if _, err := conn.ExecContext(ctx, `PRAGMA foreign_keys = OFF`); err != nil {
		return fmt.Errorf("disabling foreign keys: %w", err)
	}
	defer func() {
		_, _ = conn.ExecContext(ctx, `PRAGMA foreign_keys = ON`)
	}()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting migration transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS plan_items_new`); err != nil {
		return fmt.Errorf("dropping stale plan_items_new: %w", err)
	}
	if _, err := tx.ExecContext(ctx, strings.Replace(planItemsTable, "plan_items (", "plan_items_new (", 1)); err != nil {
		return fmt.Errorf("creating plan_items_new: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO plan_items_new (
		plan_id, position, date, module_title, section_title, video_indices_json,
		completed, total_ms, estimated_ms, warnings_json, kind, time_of_day
	) SELECT
		plan_id, position, date, module_title, section_title, video_indices_json,
		completed, total_ms, estimated_ms, warnings_json, kind, time_of_day
	FROM plan_items`); err != nil {
		return fmt.Errorf("copying plan_items data: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DROP TABLE plan_items`); err != nil {
		return fmt.Errorf("dropping old plan_items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `ALTER TABLE plan_items_new RENAME TO plan_items`); err != nil {
		return fmt.Errorf("renaming plan_items_new: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_plan_items_date ON plan_items(date)`); err != nil {
		return fmt.Errorf("recreating idx_plan_items_date: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing plan_items migration: %w", err)
	}
	committed = true

	return nil
}

const planItemsTable = `CREATE TABLE IF NOT EXISTS plan_items (
		plan_id            TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		position           INTEGER NOT NULL,
		date               TEXT NOT NULL,
		module_title       TEXT NOT NULL,
		section_title      TEXT NOT NULL DEFAULT '',
		video_indices_json TEXT NOT NULL DEFAULT '[]',
		completed          INTEGER NOT NULL DEFAULT 0 CHECK(completed IN (0,1)),
		total_ms           INTEGER NOT NULL DEFAULT 0 CHECK(total_ms >= 0),
		estimated_ms       INTEGER NOT NULL DEFAULT 0 CHECK(estimated_ms >= 0),
		warnings_json      TEXT NOT NULL DEFAULT '[]',
		kind               TEXT NOT NULL DEFAULT 'study'
		                   CHECK(kind IN ('study','repetition','review','rest')),
		time_of_day        TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (plan_id, position)
	)`

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS courses (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		structure_json TEXT,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_courses_name ON courses(name)`,

	`CREATE TABLE IF NOT EXISTS course_videos (
		course_id   TEXT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		idx         INTEGER NOT NULL CHECK(idx >= 0),
		title       TEXT NOT NULL,
		duration_ms INTEGER NOT NULL DEFAULT 0 CHECK(duration_ms >= 0),
		PRIMARY KEY (course_id, idx)
	)`,

	`CREATE TABLE IF NOT EXISTS plans (
		id            TEXT PRIMARY KEY,
		course_id     TEXT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		strategy      TEXT NOT NULL,
		settings_json TEXT NOT NULL,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_plans_course ON plans(course_id)`,

	planItemsTable,
	`CREATE INDEX IF NOT EXISTS idx_plan_items_date ON plan_items(date)`,

	// Import source, shown by course show.
	`ALTER TABLE courses ADD COLUMN source_path TEXT NOT NULL DEFAULT ''`,
	// Optimizer passes already applied to a plan.
	`ALTER TABLE plans ADD COLUMN applied_json TEXT NOT NULL DEFAULT '[]'`,
	// Adaptive strategy time-of-day hint.
	`ALTER TABLE plan_items ADD COLUMN time_of_day TEXT NOT NULL DEFAULT ''`,
}
