package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate creates the database schema and applies one-time data migrations
// for older layouts. Exported so tests can build in-memory databases with
// the production schema.
func Migrate(ctx context.Context, db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT,
		status TEXT NOT NULL DEFAULT 'To-do',
		start_date TEXT,
		end_date TEXT,
		budget REAL NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		priority TEXT NOT NULL DEFAULT 'medium',
		responsible TEXT,
		deadline TEXT,
		estimated_hours REAL NOT NULL DEFAULT 0,
		actual_hours REAL NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS expenses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id INTEGER NOT NULL,
		description TEXT NOT NULL,
		amount REAL NOT NULL,
		category TEXT NOT NULL DEFAULT 'other',
		status TEXT NOT NULL DEFAULT 'pending',
		date TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS requirements (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		type TEXT NOT NULL DEFAULT 'functional',
		status TEXT NOT NULL DEFAULT 'pending',
		priority TEXT NOT NULL DEFAULT 'medium',
		deadline TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS tags (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		color TEXT NOT NULL DEFAULT '#6B7280'
	);

	CREATE TABLE IF NOT EXISTS task_tags (
		task_id INTEGER NOT NULL,
		tag_id INTEGER NOT NULL,
		PRIMARY KEY (task_id, tag_id),
		FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE,
		FOREIGN KEY (tag_id) REFERENCES tags(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS time_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		task_id INTEGER NOT NULL,
		start_time TEXT,
		end_time TEXT,
		hours_worked REAL NOT NULL,
		description TEXT,
		date TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);
	CREATE INDEX IF NOT EXISTS idx_expenses_project ON expenses(project_id);
	CREATE INDEX IF NOT EXISTS idx_requirements_project ON requirements(project_id);
	CREATE INDEX IF NOT EXISTS idx_time_entries_task ON time_entries(task_id);
	CREATE INDEX IF NOT EXISTS idx_task_tags_tag ON task_tags(tag_id);
	`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := migrateLegacyExpenseApproval(ctx, db); err != nil {
		return fmt.Errorf("failed to migrate legacy expense approval: %w", err)
	}

	return nil
}

// migrateLegacyExpenseApproval rewrites the old boolean approved column into
// the three-state status enum: 1 -> approved, 0 -> pending. Runs once; a
// database without the legacy column is left untouched.
func migrateLegacyExpenseApproval(ctx context.Context, db *sql.DB) error {
	hasApproved, err := columnExists(ctx, db, "expenses", "approved")
	if err != nil {
		return err
	}
	if !hasApproved {
		return nil
	}

	hasStatus, err := columnExists(ctx, db, "expenses", "status")
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if !hasStatus {
		if _, err := tx.ExecContext(ctx,
			`ALTER TABLE expenses ADD COLUMN status TEXT NOT NULL DEFAULT 'pending'`,
		); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE expenses
		 SET status = CASE approved WHEN 1 THEN 'approved' ELSE 'pending' END`,
	); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `ALTER TABLE expenses DROP COLUMN approved`); err != nil {
		return err
	}

	return tx.Commit()
}

// columnExists checks table_info for a named column
func columnExists(ctx context.Context, db *sql.DB, table, column string) (bool, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			name       string
			colType    string
			notNull    int
			dfltValue  sql.NullString
			primaryKey int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &primaryKey); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
