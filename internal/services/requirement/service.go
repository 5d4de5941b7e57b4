package requirement

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lmarin/obra/internal/database"
	"github.com/lmarin/obra/internal/models"
	"github.com/lmarin/obra/internal/services/guard"
)

// Service defines all requirement-related business operations
type Service interface {
	// Read operations
	Refresh(ctx context.Context, projectID int) error
	Items() []*models.Requirement
	GetByID(ctx context.Context, id int) (*models.Requirement, error)

	// Write operations
	Create(ctx context.Context, req CreateRequest) (*models.Requirement, error)
	Update(ctx context.Context, req UpdateRequest) (*models.Requirement, error)
	SetStatus(ctx context.Context, id int, status models.RequirementStatus) error
	Delete(ctx context.Context, id int) error
}

// CreateRequest encapsulates data for creating a requirement
type CreateRequest struct {
	ProjectID   int
	Title       string
	Description string
	Type        models.RequirementType
	Priority    models.RequirementPriority
	DueDate     time.Time
}

// UpdateRequest encapsulates data for updating a requirement.
// Nil fields keep their current values.
type UpdateRequest struct {
	ID          int
	Title       *string
	Description *string
	Type        *models.RequirementType
	Priority    *models.RequirementPriority
	DueDate     *time.Time
}

type service struct {
	store    database.RequirementStore
	inFlight *guard.Guard

	mu        sync.RWMutex
	projectID int
	items     []*models.Requirement
}

// NewService creates a new requirement service
func NewService(store database.RequirementStore) Service {
	return &service{
		store:    store,
		inFlight: guard.New(),
	}
}

func (s *service) Refresh(ctx context.Context, projectID int) error {
	if projectID <= 0 {
		return ErrInvalidProjectID
	}

	requirements, err := s.store.ListRequirements(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to refresh requirements: %w", err)
	}

	s.mu.Lock()
	s.projectID = projectID
	s.items = requirements
	s.mu.Unlock()
	return nil
}

func (s *service) Items() []*models.Requirement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Requirement, len(s.items))
	copy(out, s.items)
	return out
}

func (s *service) GetByID(ctx context.Context, id int) (*models.Requirement, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	return s.store.GetRequirement(ctx, id)
}

// Create records a new requirement. Review always starts at pending.
func (s *service) Create(ctx context.Context, req CreateRequest) (*models.Requirement, error) {
	if req.ProjectID <= 0 {
		return nil, ErrInvalidProjectID
	}

	reqType := req.Type
	if reqType == "" {
		reqType = models.RequirementTypeFunctional
	}
	priority := req.Priority
	if priority == "" {
		priority = models.RequirementPriorityMedium
	}

	next := &models.Requirement{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Type:        reqType,
		Status:      models.RequirementStatusPending,
		Priority:    priority,
		DueDate:     req.DueDate,
	}
	if err := validateRequirement(next); err != nil {
		return nil, err
	}

	created, err := s.store.CreateRequirement(ctx, next)
	if err != nil {
		return nil, fmt.Errorf("failed to create requirement: %w", err)
	}

	s.mu.Lock()
	if s.projectID == created.ProjectID {
		s.items = append([]*models.Requirement{created}, s.items...)
	}
	s.mu.Unlock()
	return created, nil
}

func (s *service) Update(ctx context.Context, req UpdateRequest) (*models.Requirement, error) {
	if req.ID <= 0 {
		return nil, ErrInvalidID
	}
	if !s.inFlight.Acquire(req.ID) {
		return nil, ErrOperationInFlight
	}
	defer s.inFlight.Release(req.ID)

	existing, err := s.store.GetRequirement(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get requirement: %w", err)
	}

	next := *existing
	if req.Title != nil {
		next.Title = *req.Title
	}
	if req.Description != nil {
		next.Description = *req.Description
	}
	if req.Type != nil {
		next.Type = *req.Type
	}
	if req.Priority != nil {
		next.Priority = *req.Priority
	}
	if req.DueDate != nil {
		next.DueDate = *req.DueDate
	}

	if err := validateRequirement(&next); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateRequirement(ctx, &next)
	if err != nil {
		return nil, fmt.Errorf("failed to update requirement: %w", err)
	}

	s.mu.Lock()
	for i, r := range s.items {
		if r.ID == updated.ID {
			s.items[i] = updated
			break
		}
	}
	s.mu.Unlock()
	return updated, nil
}

// SetStatus moves a requirement through the review workflow
func (s *service) SetStatus(ctx context.Context, id int, status models.RequirementStatus) error {
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

	if err := s.store.UpdateRequirementStatus(ctx, id, status); err != nil {
		return fmt.Errorf("failed to update requirement status: %w", err)
	}

	s.mu.Lock()
	for i, r := range s.items {
		if r.ID == id {
			copied := *r
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

	if err := s.store.DeleteRequirement(ctx, id); err != nil {
		return fmt.Errorf("failed to delete requirement: %w", err)
	}

	s.mu.Lock()
	for i, r := range s.items {
		if r.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

func validateRequirement(r *models.Requirement) error {
	if r.Title == "" {
		return ErrEmptyTitle
	}
	if len(r.Title) > 255 {
		return ErrTitleTooLong
	}
	if !r.Type.Valid() {
		return ErrInvalidType
	}
	if !r.Status.Valid() {
		return ErrInvalidStatus
	}
	if !r.Priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}
