package app

import (
	"golang.org/x/text/language"

	"github.com/lmarin/obra/internal/database"
	expenseservice "github.com/lmarin/obra/internal/services/expense"
	projectservice "github.com/lmarin/obra/internal/services/project"
	requirementservice "github.com/lmarin/obra/internal/services/requirement"
	tagservice "github.com/lmarin/obra/internal/services/tag"
	taskservice "github.com/lmarin/obra/internal/services/task"
	"github.com/lmarin/obra/internal/settings"
	"github.com/lmarin/obra/internal/timer"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Repository layer (direct database access)
	repo database.DataStore

	// Service layer (business logic)
	ProjectService     projectservice.Service
	TaskService        taskservice.Service
	ExpenseService     expenseservice.Service
	RequirementService requirementservice.Service
	TagService         tagservice.Service

	// Cross-cutting services
	Settings *settings.Service
	Timers   *timer.Manager
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
func New(repo database.DataStore, store settings.Store, locale language.Tag) (*App, error) {
	settingsService := settings.NewService(store, locale)
	taskService := taskservice.NewService(repo)

	return &App{
		repo:               repo,
		ProjectService:     projectservice.NewService(repo, repo, repo),
		TaskService:        taskService,
		ExpenseService:     expenseservice.NewService(repo),
		RequirementService: requirementservice.NewService(repo),
		TagService:         tagservice.NewService(repo),
		Settings:           settingsService,
		Timers:             timer.NewManager(taskService),
	}, nil
}

// Repo returns the underlying repository for direct database access
func (a *App) Repo() database.DataStore {
	return a.repo
}
