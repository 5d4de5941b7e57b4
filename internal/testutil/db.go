package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/lmarin/obra/internal/database"
	_ "modernc.org/sqlite"
)

// SetupTestDB creates an in-memory database with the full production schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db
}

// CreateTestProject inserts a project row and returns its ID
func CreateTestProject(t *testing.T, db *sql.DB, name string) int {
	t.Helper()
	result, err := db.ExecContext(context.Background(),
		"INSERT INTO projects (name, description, status, budget) VALUES (?, ?, 'Doing', 10000)",
		name, "Test description")
	if err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	id, _ := result.LastInsertId()
	return int(id)
}

// CreateTestTask inserts a task row under a project and returns its ID
func CreateTestTask(t *testing.T, db *sql.DB, projectID int, title string) int {
	t.Helper()
	result, err := db.ExecContext(context.Background(),
		"INSERT INTO tasks (project_id, title, estimated_hours) VALUES (?, ?, 8)",
		projectID, title)
	if err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}
	id, _ := result.LastInsertId()
	return int(id)
}

// CreateTestExpense inserts an expense row and returns its ID
func CreateTestExpense(t *testing.T, db *sql.DB, projectID int, amount float64, status string) int {
	t.Helper()
	result, err := db.ExecContext(context.Background(),
		"INSERT INTO expenses (project_id, description, amount, status, date) VALUES (?, 'Test expense', ?, ?, '2025-06-01')",
		projectID, amount, status)
	if err != nil {
		t.Fatalf("Failed to create test expense: %v", err)
	}
	id, _ := result.LastInsertId()
	return int(id)
}

// CreateTestTag inserts a tag row and returns its ID
func CreateTestTag(t *testing.T, db *sql.DB, name, color string) int {
	t.Helper()
	result, err := db.ExecContext(context.Background(),
		"INSERT INTO tags (name, color) VALUES (?, ?)", name, color)
	if err != nil {
		t.Fatalf("Failed to create test tag: %v", err)
	}
	id, _ := result.LastInsertId()
	return int(id)
}
