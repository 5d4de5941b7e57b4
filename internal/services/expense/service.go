package expense

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lmarin/obra/internal/database"
	"github.com/lmarin/obra/internal/models"
	"github.com/lmarin/obra/internal/services/guard"
)

// Service defines all expense-related business operations
type Service interface {
	// Read operations
	Refresh(ctx context.Context, projectID int) error
	Items() []*models.Expense
	GetByID(ctx context.Context, id int) (*models.Expense, error)

	// Write operations
	Create(ctx context.Context, req CreateRequest) (*models.Expense, error)
	Update(ctx context.Context, req UpdateRequest) (*models.Expense, error)
	SetStatus(ctx context.Context, id int, status models.ExpenseStatus) error
	Delete(ctx context.Context, id int) error
}

// CreateRequest encapsulates data for creating an expense
type CreateRequest struct {
	ProjectID   int
	Description string
	Amount      float64
	Category    models.ExpenseCategory
	Date        time.Time
}

// UpdateRequest encapsulates data for updating an expense.
// Nil fields keep their current values.
type UpdateRequest struct {
	ID          int
	Description *string
	Amount      *float64
	Category    *models.ExpenseCategory
	Date        *time.Time
}

type service struct {
	store    database.ExpenseStore
	inFlight *guard.Guard

	mu        sync.RWMutex
	projectID int
	items     []*models.Expense
}

// NewService creates a new expense service
func NewService(store database.ExpenseStore) Service {
	return &service{
		store:    store,
		inFlight: guard.New(),
	}
}

func (s *service) Refresh(ctx context.Context, projectID int) error {
	if projectID <= 0 {
		return ErrInvalidProjectID
	}

	expenses, err := s.store.ListExpenses(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to refresh expenses: %w", err)
	}

	s.mu.Lock()
	s.projectID = projectID
	s.items = expenses
	s.mu.Unlock()
	return nil
}

func (s *service) Items() []*models.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Expense, len(s.items))
	copy(out, s.items)
	return out
}

func (s *service) GetByID(ctx context.Context, id int) (*models.Expense, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	return s.store.GetExpense(ctx, id)
}

// Create records a new expense. New expenses always start pending; approval
// is a separate explicit step.
func (s *service) Create(ctx context.Context, req CreateRequest) (*models.Expense, error) {
	if req.ProjectID <= 0 {
		return nil, ErrInvalidProjectID
	}
	if req.Description == "" {
		return nil, ErrEmptyDescription
	}
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	category := req.Category
	if category == "" {
		category = models.ExpenseCategoryOther
	}
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}

	created, err := s.store.CreateExpense(ctx, &models.Expense{
		ProjectID:   req.ProjectID,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    category,
		Status:      models.ExpenseStatusPending,
		Date:        date,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	s.mu.Lock()
	if s.projectID == created.ProjectID {
		s.items = append([]*models.Expense{created}, s.items...)
	}
	s.mu.Unlock()
	return created, nil
}

func (s *service) Update(ctx context.Context, req UpdateRequest) (*models.Expense, error) {
	if req.ID <= 0 {
		return nil, ErrInvalidID
	}
	if !s.inFlight.Acquire(req.ID) {
		return nil, ErrOperationInFlight
	}
	defer s.inFlight.Release(req.ID)

	existing, err := s.store.GetExpense(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	next := *existing
	if req.Description != nil {
		next.Description = *req.Description
	}
	if req.Amount != nil {
		next.Amount = *req.Amount
	}
	if req.Category != nil {
		next.Category = *req.Category
	}
	if req.Date != nil {
		next.Date = *req.Date
	}

	if next.Description == "" {
		return nil, ErrEmptyDescription
	}
	if next.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if !next.Category.Valid() {
		return nil, ErrInvalidCategory
	}

	updated, err := s.store.UpdateExpense(ctx, &next)
	if err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	s.mu.Lock()
	for i, e := range s.items {
		if e.ID == updated.ID {
			s.items[i] = updated
			break
		}
	}
	s.mu.Unlock()
	return updated, nil
}

// SetStatus moves an expense through the approval workflow
func (s *service) SetStatus(ctx context.Context, id int, status models.ExpenseStatus) error {
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

	if err := s.store.UpdateExpenseStatus(ctx, id, status); err != nil {
		return fmt.Errorf("failed to update expense status: %w", err)
	}

	s.mu.Lock()
	for i, e := range s.items {
		if e.ID == id {
			copied := *e
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

	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	s.mu.Lock()
	for i, e := range s.items {
		if e.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}
