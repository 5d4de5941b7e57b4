package app_test

import (
	"context"
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/lmarin/obra/internal/app"
	"github.com/lmarin/obra/internal/database"
	"github.com/lmarin/obra/internal/services/project"
	"github.com/lmarin/obra/internal/settings"
	"github.com/lmarin/obra/internal/testutil"
)

func TestNewWiresAllServices(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)

	a, err := app.New(repo, settings.NewMemStore(), language.MustParse("es-ES"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if a.ProjectService == nil || a.TaskService == nil || a.ExpenseService == nil ||
		a.RequirementService == nil || a.TagService == nil {
		t.Fatal("services not wired")
	}
	if a.Settings == nil || a.Timers == nil {
		t.Fatal("settings or timers not wired")
	}
}

func TestTimerCommitsThroughTaskService(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	projectID := testutil.CreateTestProject(t, db, "Wired")
	taskID := testutil.CreateTestTask(t, db, projectID, "timed")

	a, err := app.New(repo, settings.NewMemStore(), language.MustParse("es-ES"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx := context.Background()
	if _, err := a.Timers.AddManual(ctx, taskID, "01:30:00", time.Now(), "via manager"); err != nil {
		t.Fatalf("AddManual failed: %v", err)
	}

	got, err := a.TaskService.GetByID(ctx, taskID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.ActualHours != 1.5 {
		t.Errorf("ActualHours = %v, want 1.5", got.ActualHours)
	}
}

func TestProjectLifecycleThroughApp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)

	a, err := app.New(repo, settings.NewMemStore(), language.MustParse("es-ES"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx := context.Background()
	created, err := a.ProjectService.Create(ctx, project.CreateRequest{Name: "Via app", Budget: 500})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	sum, err := a.ProjectService.Summary(ctx, created.ID)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if sum.RemainingBudget != 500 {
		t.Errorf("RemainingBudget = %v, want 500", sum.RemainingBudget)
	}
}
