package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lmarin/obra/internal/database"
	"github.com/lmarin/obra/internal/models"
	"github.com/lmarin/obra/internal/testutil"
)

func TestProjectCRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	ctx := context.Background()

	created, err := repo.CreateProject(ctx, &models.Project{
		Name:        "Office move",
		Description: "Relocate to the new building",
		Status:      models.ProjectStatusTodo,
		StartDate:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Budget:      25000,
	})
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected server-assigned id")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	created.Status = models.ProjectStatusDoing
	created.Budget = 30000
	updated, err := repo.UpdateProject(ctx, created)
	if err != nil {
		t.Fatalf("UpdateProject failed: %v", err)
	}
	if updated.Status != models.ProjectStatusDoing || updated.Budget != 30000 {
		t.Errorf("update not persisted: %+v", updated)
	}

	list, err := repo.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d projects, want 1", len(list))
	}

	if err := repo.DeleteProject(ctx, created.ID); err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}
	if _, err := repo.GetProject(ctx, created.ID); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("GetProject after delete = %v, want ErrNotFound", err)
	}
}

func TestProjectNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	ctx := context.Background()

	if _, err := repo.GetProject(ctx, 999); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("GetProject = %v, want ErrNotFound", err)
	}
	if err := repo.DeleteProject(ctx, 999); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("DeleteProject = %v, want ErrNotFound", err)
	}
	if _, err := repo.UpdateProject(ctx, &models.Project{ID: 999, Name: "x"}); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("UpdateProject = %v, want ErrNotFound", err)
	}
}

func TestTaskCRUDWithTags(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	ctx := context.Background()
	projectID := testutil.CreateTestProject(t, db, "Tagged work")

	task, err := repo.CreateTask(ctx, &models.Task{
		ProjectID:      projectID,
		Title:          "Design API",
		Status:         models.TaskStatusPending,
		Priority:       models.TaskPriorityHigh,
		Assignee:       "mira",
		DueDate:        time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
		EstimatedHours: 12,
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task.Priority != models.TaskPriorityHigh || task.Assignee != "mira" {
		t.Errorf("fields not persisted: %+v", task)
	}
	if len(task.Tags) != 0 {
		t.Errorf("new task should have no tags, got %d", len(task.Tags))
	}

	backend, err := repo.CreateTag(ctx, "backend", "#FF0000")
	if err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}
	urgent, err := repo.CreateTag(ctx, "urgent", "#00FF00")
	if err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}
	if err := repo.AddTagToTask(ctx, task.ID, backend.ID); err != nil {
		t.Fatalf("AddTagToTask failed: %v", err)
	}
	if err := repo.AddTagToTask(ctx, task.ID, urgent.ID); err != nil {
		t.Fatalf("AddTagToTask failed: %v", err)
	}
	// re-assigning the same tag is a no-op
	if err := repo.AddTagToTask(ctx, task.ID, backend.ID); err != nil {
		t.Fatalf("duplicate AddTagToTask failed: %v", err)
	}

	got, err := repo.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if len(got.Tags) != 2 {
		t.Fatalf("got %d tags, want 2", len(got.Tags))
	}

	if err := repo.RemoveTagFromTask(ctx, task.ID, urgent.ID); err != nil {
		t.Fatalf("RemoveTagFromTask failed: %v", err)
	}
	got, err = repo.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if len(got.Tags) != 1 || got.Tags[0].Name != "backend" {
		t.Errorf("tags after removal = %+v", got.Tags)
	}

	if err := repo.UpdateTaskStatus(ctx, task.ID, models.TaskStatusCompleted); err != nil {
		t.Fatalf("UpdateTaskStatus failed: %v", err)
	}
	got, _ = repo.GetTask(ctx, task.ID)
	if !got.Completed() {
		t.Error("task should report completed")
	}
}

func TestListTasksScopedToProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	ctx := context.Background()

	p1 := testutil.CreateTestProject(t, db, "One")
	p2 := testutil.CreateTestProject(t, db, "Two")
	testutil.CreateTestTask(t, db, p1, "a")
	testutil.CreateTestTask(t, db, p1, "b")
	testutil.CreateTestTask(t, db, p2, "c")

	tasks, err := repo.ListTasks(ctx, p1)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("got %d tasks for project 1, want 2", len(tasks))
	}
}

func TestDeleteProjectCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	ctx := context.Background()

	projectID := testutil.CreateTestProject(t, db, "Doomed")
	taskID := testutil.CreateTestTask(t, db, projectID, "orphan-to-be")
	testutil.CreateTestExpense(t, db, projectID, 100, "approved")
	if _, err := repo.CommitTime(ctx, taskID, models.TimeEntry{Hours: 1, Date: time.Now()}); err != nil {
		t.Fatalf("CommitTime failed: %v", err)
	}

	if err := repo.DeleteProject(ctx, projectID); err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}

	var n int
	for _, table := range []string{"tasks", "expenses", "time_entries"} {
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != 0 {
			t.Errorf("%s not cascaded, %d rows remain", table, n)
		}
	}
}

func TestCommitTime(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	ctx := context.Background()

	projectID := testutil.CreateTestProject(t, db, "Timed")
	taskID := testutil.CreateTestTask(t, db, projectID, "tracked")

	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	total, err := repo.CommitTime(ctx, taskID, models.TimeEntry{
		StartTime: start,
		EndTime:   start.Add(90 * time.Minute),
		Hours:     1.5,
		Date:      start,
	})
	if err != nil {
		t.Fatalf("CommitTime failed: %v", err)
	}
	if total != 1.5 {
		t.Errorf("total = %v, want 1.5", total)
	}

	// a second commit accumulates
	total, err = repo.CommitTime(ctx, taskID, models.TimeEntry{
		Hours:       2.5,
		Description: "code review",
		Date:        start.AddDate(0, 0, 1),
	})
	if err != nil {
		t.Fatalf("CommitTime failed: %v", err)
	}
	if total != 4.0 {
		t.Errorf("total = %v, want 4.0", total)
	}

	entries, err := repo.GetTimeEntries(ctx, taskID)
	if err != nil {
		t.Fatalf("GetTimeEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	task, err := repo.GetTask(ctx, taskID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if task.ActualHours != 4.0 {
		t.Errorf("ActualHours = %v, want 4.0", task.ActualHours)
	}
}

func TestCommitTimeUnknownTaskLeavesNoEntry(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	ctx := context.Background()

	_, err := repo.CommitTime(ctx, 999, models.TimeEntry{Hours: 1, Date: time.Now()})
	if !errors.Is(err, database.ErrNotFound) {
		t.Fatalf("CommitTime = %v, want ErrNotFound", err)
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM time_entries").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("failed commit left %d time entries", n)
	}
}

func TestExpenseCRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	ctx := context.Background()
	projectID := testutil.CreateTestProject(t, db, "Spender")

	expense, err := repo.CreateExpense(ctx, &models.Expense{
		ProjectID:   projectID,
		Description: "Licenses",
		Amount:      499.99,
		Category:    models.ExpenseCategorySoftware,
		Status:      models.ExpenseStatusPending,
		Date:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	if expense.Approved() {
		t.Error("new pending expense should not be approved")
	}

	if err := repo.UpdateExpenseStatus(ctx, expense.ID, models.ExpenseStatusApproved); err != nil {
		t.Fatalf("UpdateExpenseStatus failed: %v", err)
	}
	got, err := repo.GetExpense(ctx, expense.ID)
	if err != nil {
		t.Fatalf("GetExpense failed: %v", err)
	}
	if !got.Approved() {
		t.Error("expense should be approved after status update")
	}

	if err := repo.DeleteExpense(ctx, expense.ID); err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}
	list, err := repo.ListExpenses(ctx, projectID)
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("got %d expenses after delete, want 0", len(list))
	}
}

func TestRequirementCRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	ctx := context.Background()
	projectID := testutil.CreateTestProject(t, db, "Regulated")

	req, err := repo.CreateRequirement(ctx, &models.Requirement{
		ProjectID: projectID,
		Title:     "GDPR data export",
		Type:      models.RequirementTypeLegal,
		Status:    models.RequirementStatusPending,
		Priority:  models.RequirementPriorityCritical,
		DueDate:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateRequirement failed: %v", err)
	}
	if req.Type != models.RequirementTypeLegal || req.Priority != models.RequirementPriorityCritical {
		t.Errorf("fields not persisted: %+v", req)
	}

	if err := repo.UpdateRequirementStatus(ctx, req.ID, models.RequirementStatusApproved); err != nil {
		t.Fatalf("UpdateRequirementStatus failed: %v", err)
	}
	got, err := repo.GetRequirement(ctx, req.ID)
	if err != nil {
		t.Fatalf("GetRequirement failed: %v", err)
	}
	if got.Status != models.RequirementStatusApproved {
		t.Errorf("Status = %q, want approved", got.Status)
	}
}

func TestTagCRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	ctx := context.Background()

	tag, err := repo.CreateTag(ctx, "frontend", "#3B82F6")
	if err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}

	tag.Color = "#111111"
	if err := repo.UpdateTag(ctx, tag); err != nil {
		t.Fatalf("UpdateTag failed: %v", err)
	}
	got, err := repo.GetTag(ctx, tag.ID)
	if err != nil {
		t.Fatalf("GetTag failed: %v", err)
	}
	if got.Color != "#111111" {
		t.Errorf("Color = %q", got.Color)
	}

	if err := repo.DeleteTag(ctx, tag.ID); err != nil {
		t.Fatalf("DeleteTag failed: %v", err)
	}
	tags, err := repo.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("got %d tags after delete, want 0", len(tags))
	}
}

func TestCorruptRowsDegradeGracefully(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	ctx := context.Background()
	projectID := testutil.CreateTestProject(t, db, "Messy")

	// bypass the repository to plant bad data
	_, err := db.Exec(
		`INSERT INTO tasks (project_id, title, status, priority, deadline) VALUES (?, 'bad', 'bogus', 'asap', 'not-a-date')`,
		projectID)
	if err != nil {
		t.Fatal(err)
	}

	tasks, err := repo.ListTasks(ctx, projectID)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	task := tasks[0]
	if task.Status != models.TaskStatusPending || task.Priority != models.TaskPriorityMedium {
		t.Errorf("bad enums not coerced: %+v", task)
	}
	if !task.DueDate.IsZero() {
		t.Errorf("bad date not coerced: %v", task.DueDate)
	}
}
