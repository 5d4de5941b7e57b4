package database

import (
	"context"
	"database/sql"

	"github.com/lmarin/obra/internal/models"
)

// Repository composes the per-entity repos behind the DataStore interface
type Repository struct {
	projects     *ProjectRepo
	tasks        *TaskRepo
	expenses     *ExpenseRepo
	requirements *RequirementRepo
	tags         *TagRepo
}

var _ DataStore = (*Repository)(nil)

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		projects:     NewProjectRepo(db),
		tasks:        NewTaskRepo(db),
		expenses:     NewExpenseRepo(db),
		requirements: NewRequirementRepo(db),
		tags:         NewTagRepo(db),
	}
}

// Projects

func (r *Repository) CreateProject(ctx context.Context, p *models.Project) (*models.Project, error) {
	return r.projects.Create(ctx, p)
}

func (r *Repository) GetProject(ctx context.Context, id int) (*models.Project, error) {
	return r.projects.GetByID(ctx, id)
}

func (r *Repository) ListProjects(ctx context.Context) ([]*models.Project, error) {
	return r.projects.List(ctx)
}

func (r *Repository) UpdateProject(ctx context.Context, p *models.Project) (*models.Project, error) {
	return r.projects.Update(ctx, p)
}

func (r *Repository) DeleteProject(ctx context.Context, id int) error {
	return r.projects.Delete(ctx, id)
}

// Tasks

func (r *Repository) CreateTask(ctx context.Context, t *models.Task) (*models.Task, error) {
	return r.tasks.Create(ctx, t)
}

func (r *Repository) GetTask(ctx context.Context, id int) (*models.Task, error) {
	return r.tasks.GetByID(ctx, id)
}

func (r *Repository) ListTasks(ctx context.Context, projectID int) ([]*models.Task, error) {
	return r.tasks.ListByProject(ctx, projectID)
}

func (r *Repository) UpdateTask(ctx context.Context, t *models.Task) (*models.Task, error) {
	return r.tasks.Update(ctx, t)
}

func (r *Repository) UpdateTaskStatus(ctx context.Context, id int, status models.TaskStatus) error {
	return r.tasks.UpdateStatus(ctx, id, status)
}

func (r *Repository) DeleteTask(ctx context.Context, id int) error {
	return r.tasks.Delete(ctx, id)
}

func (r *Repository) CommitTime(ctx context.Context, taskID int, entry models.TimeEntry) (float64, error) {
	return r.tasks.CommitTime(ctx, taskID, entry)
}

func (r *Repository) GetTimeEntries(ctx context.Context, taskID int) ([]*models.TimeEntry, error) {
	return r.tasks.GetTimeEntries(ctx, taskID)
}

// Expenses

func (r *Repository) CreateExpense(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	return r.expenses.Create(ctx, e)
}

func (r *Repository) GetExpense(ctx context.Context, id int) (*models.Expense, error) {
	return r.expenses.GetByID(ctx, id)
}

func (r *Repository) ListExpenses(ctx context.Context, projectID int) ([]*models.Expense, error) {
	return r.expenses.ListByProject(ctx, projectID)
}

func (r *Repository) UpdateExpense(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	return r.expenses.Update(ctx, e)
}

func (r *Repository) UpdateExpenseStatus(ctx context.Context, id int, status models.ExpenseStatus) error {
	return r.expenses.UpdateStatus(ctx, id, status)
}

func (r *Repository) DeleteExpense(ctx context.Context, id int) error {
	return r.expenses.Delete(ctx, id)
}

// Requirements

func (r *Repository) CreateRequirement(ctx context.Context, req *models.Requirement) (*models.Requirement, error) {
	return r.requirements.Create(ctx, req)
}

func (r *Repository) GetRequirement(ctx context.Context, id int) (*models.Requirement, error) {
	return r.requirements.GetByID(ctx, id)
}

func (r *Repository) ListRequirements(ctx context.Context, projectID int) ([]*models.Requirement, error) {
	return r.requirements.ListByProject(ctx, projectID)
}

func (r *Repository) UpdateRequirement(ctx context.Context, req *models.Requirement) (*models.Requirement, error) {
	return r.requirements.Update(ctx, req)
}

func (r *Repository) UpdateRequirementStatus(ctx context.Context, id int, status models.RequirementStatus) error {
	return r.requirements.UpdateStatus(ctx, id, status)
}

func (r *Repository) DeleteRequirement(ctx context.Context, id int) error {
	return r.requirements.Delete(ctx, id)
}

// Tags

func (r *Repository) CreateTag(ctx context.Context, name, color string) (*models.Tag, error) {
	return r.tags.Create(ctx, name, color)
}

func (r *Repository) GetTag(ctx context.Context, id int) (*models.Tag, error) {
	return r.tags.GetByID(ctx, id)
}

func (r *Repository) ListTags(ctx context.Context) ([]*models.Tag, error) {
	return r.tags.List(ctx)
}

func (r *Repository) UpdateTag(ctx context.Context, tag *models.Tag) error {
	return r.tags.Update(ctx, tag)
}

func (r *Repository) DeleteTag(ctx context.Context, id int) error {
	return r.tags.Delete(ctx, id)
}

func (r *Repository) AddTagToTask(ctx context.Context, taskID, tagID int) error {
	return r.tags.AddToTask(ctx, taskID, tagID)
}

func (r *Repository) RemoveTagFromTask(ctx context.Context, taskID, tagID int) error {
	return r.tags.RemoveFromTask(ctx, taskID, tagID)
}
