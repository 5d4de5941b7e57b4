package project_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lmarin/obra/internal/database"
	"github.com/lmarin/obra/internal/models"
	"github.com/lmarin/obra/internal/services/project"
	"github.com/lmarin/obra/internal/testutil"
)

func newService(t *testing.T) (project.Service, *database.Repository) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	return project.NewService(repo, repo, repo), repo
}

func TestCreateAndRefresh(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, project.CreateRequest{
		Name:   "Warehouse automation",
		Budget: 80000,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Status != models.ProjectStatusTodo {
		t.Errorf("default status = %q, want To-do", created.Status)
	}

	items := svc.Items()
	if len(items) != 1 || items[0].ID != created.ID {
		t.Fatalf("local collection not updated: %+v", items)
	}

	if err := svc.Refresh(ctx); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if len(svc.Items()) != 1 {
		t.Error("refresh should keep the created project")
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     project.CreateRequest
		wantErr error
	}{
		{"empty name", project.CreateRequest{}, project.ErrEmptyName},
		{"negative budget", project.CreateRequest{Name: "x", Budget: -1}, project.ErrNegativeBudget},
		{"bad status", project.CreateRequest{Name: "x", Status: "Paused"}, project.ErrInvalidStatus},
		{
			"end before start",
			project.CreateRequest{
				Name:      "x",
				StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			},
			project.ErrInvalidDateRange,
		},
		{
			"end equals start",
			project.CreateRequest{
				Name:      "x",
				StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			},
			project.ErrInvalidDateRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("Create = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if len(svc.Items()) != 0 {
		t.Error("failed creates must not touch the local collection")
	}
}

func TestUpdatePartial(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, project.CreateRequest{Name: "Rename me", Budget: 100})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	name := "Renamed"
	updated, err := svc.Update(ctx, project.UpdateRequest{ID: created.ID, Name: &name})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Errorf("Name = %q", updated.Name)
	}
	if updated.Budget != 100 {
		t.Errorf("untouched Budget changed to %v", updated.Budget)
	}

	items := svc.Items()
	if items[0].Name != "Renamed" {
		t.Error("local collection should carry the update")
	}
}

func TestUpdateRejectsInvalid(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, project.CreateRequest{Name: "Stable"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	empty := ""
	if _, err := svc.Update(ctx, project.UpdateRequest{ID: created.ID, Name: &empty}); !errors.Is(err, project.ErrEmptyName) {
		t.Errorf("Update = %v, want ErrEmptyName", err)
	}

	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if _, err := svc.Update(ctx, project.UpdateRequest{ID: created.ID, StartDate: &day, EndDate: &day}); !errors.Is(err, project.ErrInvalidDateRange) {
		t.Errorf("Update with equal dates = %v, want ErrInvalidDateRange", err)
	}

	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Stable" {
		t.Errorf("rejected update leaked: %q", got.Name)
	}
}

func TestDeleteRemovesFromCollection(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, project.CreateRequest{Name: "Short-lived"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(svc.Items()) != 0 {
		t.Error("deleted project still in local collection")
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func TestSummary(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, project.CreateRequest{Name: "Metrics", Budget: 1000})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	for i, status := range []models.TaskStatus{models.TaskStatusCompleted, models.TaskStatusPending} {
		_, err := repo.CreateTask(ctx, &models.Task{
			ProjectID:      created.ID,
			Title:          "t",
			Status:         status,
			Priority:       models.TaskPriorityMedium,
			EstimatedHours: float64(i + 1),
		})
		if err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}
	_, err = repo.CreateExpense(ctx, &models.Expense{
		ProjectID: created.ID, Description: "x", Amount: 250,
		Category: models.ExpenseCategoryOther, Status: models.ExpenseStatusApproved,
		Date: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	sum, err := svc.Summary(ctx, created.ID)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if sum.Progress != 50 {
		t.Errorf("Progress = %d, want 50", sum.Progress)
	}
	if sum.Spent != 250 || sum.RemainingBudget != 750 {
		t.Errorf("Spent = %v, Remaining = %v", sum.Spent, sum.RemainingBudget)
	}
	if sum.Utilization != 25 {
		t.Errorf("Utilization = %v, want 25", sum.Utilization)
	}
}
