package tag

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/lmarin/obra/internal/database"
	"github.com/lmarin/obra/internal/models"
)

// DefaultColor is assigned when a tag is created without one
const DefaultColor = "#6B7280"

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Service defines all tag-related business operations
type Service interface {
	// Read operations
	Refresh(ctx context.Context) error
	Items() []*models.Tag

	// Write operations
	Create(ctx context.Context, name, color string) (*models.Tag, error)
	Update(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, id int) error

	// Task assignment
	AddToTask(ctx context.Context, taskID, tagID int) error
	RemoveFromTask(ctx context.Context, taskID, tagID int) error
}

type service struct {
	store database.TagStore

	mu    sync.RWMutex
	items []*models.Tag
}

// NewService creates a new tag service
func NewService(store database.TagStore) Service {
	return &service{store: store}
}

func (s *service) Refresh(ctx context.Context) error {
	tags, err := s.store.ListTags(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh tags: %w", err)
	}

	s.mu.Lock()
	s.items = tags
	s.mu.Unlock()
	return nil
}

func (s *service) Items() []*models.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Tag, len(s.items))
	copy(out, s.items)
	return out
}

func (s *service) Create(ctx context.Context, name, color string) (*models.Tag, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > 50 {
		return nil, ErrNameTooLong
	}
	if color == "" {
		color = DefaultColor
	}
	if !hexColor.MatchString(color) {
		return nil, ErrInvalidColor
	}

	created, err := s.store.CreateTag(ctx, name, color)
	if err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	s.mu.Lock()
	s.items = append(s.items, created)
	s.mu.Unlock()
	return created, nil
}

func (s *service) Update(ctx context.Context, tag *models.Tag) error {
	if tag.ID <= 0 {
		return ErrInvalidID
	}
	if tag.Name == "" {
		return ErrEmptyName
	}
	if !hexColor.MatchString(tag.Color) {
		return ErrInvalidColor
	}

	if err := s.store.UpdateTag(ctx, tag); err != nil {
		return fmt.Errorf("failed to update tag: %w", err)
	}

	s.mu.Lock()
	for i, item := range s.items {
		if item.ID == tag.ID {
			s.items[i] = tag
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

	if err := s.store.DeleteTag(ctx, id); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	s.mu.Lock()
	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

func (s *service) AddToTask(ctx context.Context, taskID, tagID int) error {
	if taskID <= 0 || tagID <= 0 {
		return ErrInvalidID
	}
	return s.store.AddTagToTask(ctx, taskID, tagID)
}

func (s *service) RemoveFromTask(ctx context.Context, taskID, tagID int) error {
	if taskID <= 0 || tagID <= 0 {
		return ErrInvalidID
	}
	return s.store.RemoveTagFromTask(ctx, taskID, tagID)
}
