package database

import (
	"context"

	"github.com/lmarin/obra/internal/models"
)

// Segregated per-entity interfaces. Services depend only on the slice they
// use, which keeps their test doubles small.

type ProjectReader interface {
	GetProject(ctx context.Context, id int) (*models.Project, error)
	ListProjects(ctx context.Context) ([]*models.Project, error)
}

type ProjectWriter interface {
	CreateProject(ctx context.Context, p *models.Project) (*models.Project, error)
	UpdateProject(ctx context.Context, p *models.Project) (*models.Project, error)
	DeleteProject(ctx context.Context, id int) error
}

type ProjectStore interface {
	ProjectReader
	ProjectWriter
}

type TaskReader interface {
	GetTask(ctx context.Context, id int) (*models.Task, error)
	ListTasks(ctx context.Context, projectID int) ([]*models.Task, error)
	GetTimeEntries(ctx context.Context, taskID int) ([]*models.TimeEntry, error)
}

type TaskWriter interface {
	CreateTask(ctx context.Context, t *models.Task) (*models.Task, error)
	UpdateTask(ctx context.Context, t *models.Task) (*models.Task, error)
	UpdateTaskStatus(ctx context.Context, id int, status models.TaskStatus) error
	DeleteTask(ctx context.Context, id int) error
	CommitTime(ctx context.Context, taskID int, entry models.TimeEntry) (float64, error)
}

type TaskStore interface {
	TaskReader
	TaskWriter
}

type ExpenseReader interface {
	GetExpense(ctx context.Context, id int) (*models.Expense, error)
	ListExpenses(ctx context.Context, projectID int) ([]*models.Expense, error)
}

type ExpenseWriter interface {
	CreateExpense(ctx context.Context, e *models.Expense) (*models.Expense, error)
	UpdateExpense(ctx context.Context, e *models.Expense) (*models.Expense, error)
	UpdateExpenseStatus(ctx context.Context, id int, status models.ExpenseStatus) error
	DeleteExpense(ctx context.Context, id int) error
}

type ExpenseStore interface {
	ExpenseReader
	ExpenseWriter
}

type RequirementReader interface {
	GetRequirement(ctx context.Context, id int) (*models.Requirement, error)
	ListRequirements(ctx context.Context, projectID int) ([]*models.Requirement, error)
}

type RequirementWriter interface {
	CreateRequirement(ctx context.Context, r *models.Requirement) (*models.Requirement, error)
	UpdateRequirement(ctx context.Context, r *models.Requirement) (*models.Requirement, error)
	UpdateRequirementStatus(ctx context.Context, id int, status models.RequirementStatus) error
	DeleteRequirement(ctx context.Context, id int) error
}

type RequirementStore interface {
	RequirementReader
	RequirementWriter
}

type TagStore interface {
	CreateTag(ctx context.Context, name, color string) (*models.Tag, error)
	GetTag(ctx context.Context, id int) (*models.Tag, error)
	ListTags(ctx context.Context) ([]*models.Tag, error)
	UpdateTag(ctx context.Context, tag *models.Tag) error
	DeleteTag(ctx context.Context, id int) error
	AddTagToTask(ctx context.Context, taskID, tagID int) error
	RemoveTagFromTask(ctx context.Context, taskID, tagID int) error
}

// DataStore is the full persistence surface, satisfied by Repository
type DataStore interface {
	ProjectStore
	TaskStore
	ExpenseStore
	RequirementStore
	TagStore
}
