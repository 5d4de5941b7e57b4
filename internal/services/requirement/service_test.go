package requirement_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lmarin/obra/internal/database"
	"github.com/lmarin/obra/internal/models"
	"github.com/lmarin/obra/internal/services/requirement"
	"github.com/lmarin/obra/internal/testutil"
)

func newService(t *testing.T) (requirement.Service, int) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	projectID := testutil.CreateTestProject(t, db, "Regulated")
	svc := requirement.NewService(repo)
	if err := svc.Refresh(context.Background(), projectID); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	return svc, projectID
}

func TestCreateRequirement(t *testing.T) {
	svc, projectID := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, requirement.CreateRequest{
		ProjectID: projectID,
		Title:     "Audit log retention",
		Type:      models.RequirementTypeLegal,
		Priority:  models.RequirementPriorityCritical,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Status != models.RequirementStatusPending {
		t.Errorf("new requirement status = %q, want pending", created.Status)
	}
	if len(svc.Items()) != 1 {
		t.Error("local collection not updated")
	}
}

func TestCreateDefaults(t *testing.T) {
	svc, projectID := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, requirement.CreateRequest{
		ProjectID: projectID,
		Title:     "Minimal",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Type != models.RequirementTypeFunctional {
		t.Errorf("Type = %q, want functional", created.Type)
	}
	if created.Priority != models.RequirementPriorityMedium {
		t.Errorf("Priority = %q, want medium", created.Priority)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, projectID := newService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     requirement.CreateRequest
		wantErr error
	}{
		{"no project", requirement.CreateRequest{Title: "x"}, requirement.ErrInvalidProjectID},
		{"empty title", requirement.CreateRequest{ProjectID: projectID}, requirement.ErrEmptyTitle},
		{"bad type", requirement.CreateRequest{ProjectID: projectID, Title: "x", Type: "wishful"}, requirement.ErrInvalidType},
		{"bad priority", requirement.CreateRequest{ProjectID: projectID, Title: "x", Priority: "whenever"}, requirement.ErrInvalidPriority},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("Create = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestReviewWorkflow(t *testing.T) {
	svc, projectID := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, requirement.CreateRequest{
		ProjectID: projectID, Title: "SSO support",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	for _, status := range []models.RequirementStatus{
		models.RequirementStatusInReview,
		models.RequirementStatusApproved,
	} {
		if err := svc.SetStatus(ctx, created.ID, status); err != nil {
			t.Fatalf("SetStatus(%q) failed: %v", status, err)
		}
	}

	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != models.RequirementStatusApproved {
		t.Errorf("Status = %q, want approved", got.Status)
	}
	if items := svc.Items(); items[0].Status != models.RequirementStatusApproved {
		t.Error("local collection should track status changes")
	}
}

func TestUpdateAndDelete(t *testing.T) {
	svc, projectID := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, requirement.CreateRequest{
		ProjectID: projectID, Title: "Draft",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	title := "Finalized"
	prio := models.RequirementPriorityHigh
	updated, err := svc.Update(ctx, requirement.UpdateRequest{ID: created.ID, Title: &title, Priority: &prio})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Title != "Finalized" || updated.Priority != models.RequirementPriorityHigh {
		t.Errorf("update not applied: %+v", updated)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(svc.Items()) != 0 {
		t.Error("deleted requirement still in local collection")
	}
}
