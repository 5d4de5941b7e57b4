package project

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lmarin/obra/internal/database"
	"github.com/lmarin/obra/internal/metrics"
	"github.com/lmarin/obra/internal/models"
	"github.com/lmarin/obra/internal/services/guard"
)

// Service defines all project-related business operations
type Service interface {
	// Read operations
	Refresh(ctx context.Context) error
	Items() []*models.Project
	GetByID(ctx context.Context, id int) (*models.Project, error)
	Summary(ctx context.Context, projectID int) (models.ProjectSummary, error)

	// Write operations
	Create(ctx context.Context, req CreateRequest) (*models.Project, error)
	Update(ctx context.Context, req UpdateRequest) (*models.Project, error)
	Delete(ctx context.Context, id int) error
}

// CreateRequest encapsulates data for creating a project
type CreateRequest struct {
	Name        string
	Description string
	Status      models.ProjectStatus
	StartDate   time.Time
	EndDate     time.Time
	Budget      float64
}

// UpdateRequest encapsulates data for updating a project.
// Nil fields keep their current values.
type UpdateRequest struct {
	ID          int
	Name        *string
	Description *string
	Status      *models.ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      *float64
}

// service keeps a local collection that only changes after the store
// confirms a write, so readers never observe speculative state
type service struct {
	store    database.ProjectStore
	tasks    database.TaskReader
	expenses database.ExpenseReader
	inFlight *guard.Guard

	mu    sync.RWMutex
	items []*models.Project
}

// NewService creates a new project service
func NewService(store database.ProjectStore, tasks database.TaskReader, expenses database.ExpenseReader) Service {
	return &service{
		store:    store,
		tasks:    tasks,
		expenses: expenses,
		inFlight: guard.New(),
	}
}

// Refresh replaces the local collection with the store's current contents
func (s *service) Refresh(ctx context.Context) error {
	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh projects: %w", err)
	}

	s.mu.Lock()
	s.items = projects
	s.mu.Unlock()
	return nil
}

// Items returns a snapshot of the local collection
func (s *service) Items() []*models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Project, len(s.items))
	copy(out, s.items)
	return out
}

func (s *service) GetByID(ctx context.Context, id int) (*models.Project, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	return s.store.GetProject(ctx, id)
}

// Summary derives the project's dashboard figures from its tasks and
// approved expenses
func (s *service) Summary(ctx context.Context, projectID int) (models.ProjectSummary, error) {
	if projectID <= 0 {
		return models.ProjectSummary{}, ErrInvalidID
	}

	p, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return models.ProjectSummary{}, fmt.Errorf("failed to get project: %w", err)
	}
	tasks, err := s.tasks.ListTasks(ctx, projectID)
	if err != nil {
		return models.ProjectSummary{}, fmt.Errorf("failed to list tasks: %w", err)
	}
	expenses, err := s.expenses.ListExpenses(ctx, projectID)
	if err != nil {
		return models.ProjectSummary{}, fmt.Errorf("failed to list expenses: %w", err)
	}

	return metrics.Summarize(p, tasks, expenses), nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*models.Project, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.ProjectStatusTodo
	}

	created, err := s.store.CreateProject(ctx, &models.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.Budget,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.mu.Lock()
	s.items = append([]*models.Project{created}, s.items...)
	s.mu.Unlock()
	return created, nil
}

func (s *service) Update(ctx context.Context, req UpdateRequest) (*models.Project, error) {
	if req.ID <= 0 {
		return nil, ErrInvalidID
	}
	if !s.inFlight.Acquire(req.ID) {
		return nil, ErrOperationInFlight
	}
	defer s.inFlight.Release(req.ID)

	existing, err := s.store.GetProject(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	next := *existing
	if req.Name != nil {
		next.Name = *req.Name
	}
	if req.Description != nil {
		next.Description = *req.Description
	}
	if req.Status != nil {
		next.Status = *req.Status
	}
	if req.StartDate != nil {
		next.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		next.EndDate = *req.EndDate
	}
	if req.Budget != nil {
		next.Budget = *req.Budget
	}

	if err := validateProject(&next); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateProject(ctx, &next)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.mu.Lock()
	for i, p := range s.items {
		if p.ID == updated.ID {
			s.items[i] = updated
			break
		}
	}
	s.mu.Unlock()
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidID
	}
	if !s.inFlight.Acquire(id) {
		return ErrOperationInFlight
	}
	defer s.inFlight.Release(id)

	if err := s.store.DeleteProject(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.mu.Lock()
	for i, p := range s.items {
		if p.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

func validateCreate(req CreateRequest) error {
	return validateProject(&models.Project{
		Name:      req.Name,
		Status:    req.Status,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Budget:    req.Budget,
	})
}

func validateProject(p *models.Project) error {
	if p.Name == "" {
		return ErrEmptyName
	}
	if len(p.Name) > 255 {
		return ErrNameTooLong
	}
	if p.Status != "" && !p.Status.Valid() {
		return ErrInvalidStatus
	}
	if p.Budget < 0 {
		return ErrNegativeBudget
	}
	if !p.StartDate.IsZero() && !p.EndDate.IsZero() && !p.EndDate.After(p.StartDate) {
		return ErrInvalidDateRange
	}
	return nil
}
