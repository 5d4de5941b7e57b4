package task

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lmarin/obra/internal/database"
	"github.com/lmarin/obra/internal/models"
	"github.com/lmarin/obra/internal/services/guard"
)

// Service defines all task-related business operations
type Service interface {
	// Read operations
	Refresh(ctx context.Context, projectID int) error
	Items() []*models.Task
	GetByID(ctx context.Context, id int) (*models.Task, error)
	TimeEntries(ctx context.Context, taskID int) ([]*models.TimeEntry, error)

	// Write operations
	Create(ctx context.Context, req CreateRequest) (*models.Task, error)
	Update(ctx context.Context, req UpdateRequest) (*models.Task, error)
	SetStatus(ctx context.Context, id int, status models.TaskStatus) error
	Delete(ctx context.Context, id int) error

	// CommitTime records worked time against a task and returns its new
	// actual hours total. Satisfies the timer package's committer.
	CommitTime(ctx context.Context, taskID int, entry models.TimeEntry) (float64, error)
}

// CreateRequest encapsulates data for creating a task
type CreateRequest struct {
	ProjectID      int
	Title          string
	Description    string
	Status         models.TaskStatus
	Priority       models.TaskPriority
	Assignee       string
	DueDate        time.Time
	EstimatedHours float64
}

// UpdateRequest encapsulates data for updating a task.
// Nil fields keep their current values.
type UpdateRequest struct {
	ID             int
	Title          *string
	Description    *string
	Status         *models.TaskStatus
	Priority       *models.TaskPriority
	Assignee       *string
	DueDate        *time.Time
	EstimatedHours *float64
}

type service struct {
	store    database.TaskStore
	inFlight *guard.Guard

	mu        sync.RWMutex
	projectID int
	items     []*models.Task
}

// NewService creates a new task service
func NewService(store database.TaskStore) Service {
	return &service{
		store:    store,
		inFlight: guard.New(),
	}
}

// Refresh loads the tasks of one project into the local collection
func (s *service) Refresh(ctx context.Context, projectID int) error {
	if projectID <= 0 {
		return ErrInvalidProjectID
	}

	tasks, err := s.store.ListTasks(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to refresh tasks: %w", err)
	}

	s.mu.Lock()
	s.projectID = projectID
	s.items = tasks
	s.mu.Unlock()
	return nil
}

// Items returns a snapshot of the local collection
func (s *service) Items() []*models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Task, len(s.items))
	copy(out, s.items)
	return out
}

func (s *service) GetByID(ctx context.Context, id int) (*models.Task, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	return s.store.GetTask(ctx, id)
}

func (s *service) TimeEntries(ctx context.Context, taskID int) ([]*models.TimeEntry, error) {
	if taskID <= 0 {
		return nil, ErrInvalidID
	}
	return s.store.GetTimeEntries(ctx, taskID)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*models.Task, error) {
	if req.ProjectID <= 0 {
		return nil, ErrInvalidProjectID
	}

	status := req.Status
	if status == "" {
		status = models.TaskStatusPending
	}
	priority := req.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}

	next := &models.Task{
		ProjectID:      req.ProjectID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         status,
		Priority:       priority,
		Assignee:       req.Assignee,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
	}
	if err := validateTask(next); err != nil {
		return nil, err
	}

	created, err := s.store.CreateTask(ctx, next)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.mu.Lock()
	if s.projectID == created.ProjectID {
		s.items = append([]*models.Task{created}, s.items...)
	}
	s.mu.Unlock()
	return created, nil
}

func (s *service) Update(ctx context.Context, req UpdateRequest) (*models.Task, error) {
	if req.ID <= 0 {
		return nil, ErrInvalidID
	}
	if !s.inFlight.Acquire(req.ID) {
		return nil, ErrOperationInFlight
	}
	defer s.inFlight.Release(req.ID)

	existing, err := s.store.GetTask(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	next := *existing
	if req.Title != nil {
		next.Title = *req.Title
	}
	if req.Description != nil {
		next.Description = *req.Description
	}
	if req.Status != nil {
		next.Status = *req.Status
	}
	if req.Priority != nil {
		next.Priority = *req.Priority
	}
	if req.Assignee != nil {
		next.Assignee = *req.Assignee
	}
	if req.DueDate != nil {
		next.DueDate = *req.DueDate
	}
	if req.EstimatedHours != nil {
		next.EstimatedHours = *req.EstimatedHours
	}

	if err := validateTask(&next); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateTask(ctx, &next)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.replaceItem(updated)
	return updated, nil
}

func (s *service) SetStatus(ctx context.Context, id int, status models.TaskStatus) error {
	if id <= 0 {
		return ErrInvalidID
	}
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if !s.inFlight.Acquire(id) {
		return ErrOperationInFlight
	}
	defer s.inFlight.Release(id)

	if err := s.store.UpdateTaskStatus(ctx, id, status); err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}

	s.mu.Lock()
	for i, t := range s.items {
		if t.ID == id {
			copied := *t
			copied.Status = status
			s.items[i] = &copied
			break
		}
	}
	s.mu.Unlock()
	return nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidID
	}
	if !s.inFlight.Acquire(id) {
		return ErrOperationInFlight
	}
	defer s.inFlight.Release(id)

	if err := s.store.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.mu.Lock()
	for i, t := range s.items {
		if t.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

func (s *service) CommitTime(ctx context.Context, taskID int, entry models.TimeEntry) (float64, error) {
	if taskID <= 0 {
		return 0, ErrInvalidID
	}
	if entry.Hours <= 0 {
		return 0, ErrInvalidHours
	}

	total, err := s.store.CommitTime(ctx, taskID, entry)
	if err != nil {
		return 0, fmt.Errorf("failed to commit time: %w", err)
	}

	s.mu.Lock()
	for i, t := range s.items {
		if t.ID == taskID {
			copied := *t
			copied.ActualHours = total
			s.items[i] = &copied
			break
		}
	}
	s.mu.Unlock()
	return total, nil
}

func (s *service) replaceItem(updated *models.Task) {
	s.mu.Lock()
	for i, t := range s.items {
		if t.ID == updated.ID {
			s.items[i] = updated
			break
		}
	}
	s.mu.Unlock()
}

func validateTask(t *models.Task) error {
	if t.Title == "" {
		return ErrEmptyTitle
	}
	if len(t.Title) > 255 {
		return ErrTitleTooLong
	}
	if !t.Status.Valid() {
		return ErrInvalidStatus
	}
	if !t.Priority.Valid() {
		return ErrInvalidPriority
	}
	if t.EstimatedHours < 0 {
		return ErrInvalidHours
	}
	return nil
}
