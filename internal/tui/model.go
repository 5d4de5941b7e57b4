// Package tui provides the interactive Bubble Tea dashboard for obra.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lmarin/obra/internal/app"
	"github.com/lmarin/obra/internal/config"
	"github.com/lmarin/obra/internal/models"
)

// Tabs in display order
var tabs = []string{"Overview", "Tasks", "Expenses", "Requirements", "Time", "Settings"}

const (
	tabOverview = iota
	tabTasks
	tabExpenses
	tabRequirements
	tabTime
	tabSettings
)

// mode is the interaction state of the dashboard
type mode int

const (
	modeNormal mode = iota
	modeForm
	modeConfirm
	modeView
)

// Model is the root Bubble Tea model
type Model struct {
	app    *app.App
	keys   config.KeyMappings
	styles Styles

	width  int
	height int

	activeTab int
	showHelp  bool
	mode      mode

	projects   []*models.Project
	projectIdx int
	summary    models.ProjectSummary

	// Per-tab cursors
	taskCursor int
	expCursor  int
	reqCursor  int
	timeCursor int

	// Live timer display, refreshed every second
	elapsed map[int]string

	// Time entries of the task selected on the time tab
	entries []*models.TimeEntry

	form     *form
	confirm  confirmState
	viewBody string

	notice    string
	noticeErr bool
}

type confirmState struct {
	prompt string
	action tea.Cmd
}

// Messages

type tickMsg struct{}

type projectsLoadedMsg struct {
	projects []*models.Project
}

type projectDataMsg struct {
	summary models.ProjectSummary
}

type entriesMsg struct {
	entries []*models.TimeEntry
}

type noticeMsg struct {
	text  string
	isErr bool
}

// actionDoneMsg reports a completed mutation; reload pulls fresh data
type actionDoneMsg struct {
	text   string
	reload bool
}

// NewModel creates the dashboard model
func NewModel(a *app.App, cfg *config.Config) Model {
	return Model{
		app:     a,
		keys:    cfg.KeyMappings,
		styles:  NewStyles(cfg.ColorScheme),
		elapsed: map[int]string{},
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadProjectsCmd(m.app), tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func loadProjectsCmd(a *app.App) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := a.ProjectService.Refresh(ctx); err != nil {
			return noticeMsg{text: err.Error(), isErr: true}
		}
		return projectsLoadedMsg{projects: a.ProjectService.Items()}
	}
}

// loadProjectDataCmd refreshes the per-project collections and recomputes
// the summary for the overview header
func loadProjectDataCmd(a *app.App, projectID int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := a.TaskService.Refresh(ctx, projectID); err != nil {
			return noticeMsg{text: err.Error(), isErr: true}
		}
		if err := a.ExpenseService.Refresh(ctx, projectID); err != nil {
			return noticeMsg{text: err.Error(), isErr: true}
		}
		if err := a.RequirementService.Refresh(ctx, projectID); err != nil {
			return noticeMsg{text: err.Error(), isErr: true}
		}
		if err := a.TagService.Refresh(ctx); err != nil {
			return noticeMsg{text: err.Error(), isErr: true}
		}
		summary, err := a.ProjectService.Summary(ctx, projectID)
		if err != nil {
			return noticeMsg{text: err.Error(), isErr: true}
		}
		return projectDataMsg{summary: summary}
	}
}

func loadEntriesCmd(a *app.App, taskID int) tea.Cmd {
	return func() tea.Msg {
		entries, err := a.TaskService.TimeEntries(context.Background(), taskID)
		if err != nil {
			return noticeMsg{text: err.Error(), isErr: true}
		}
		return entriesMsg{entries: entries}
	}
}

// currentProject returns the selected project, or nil when none exist
func (m Model) currentProject() *models.Project {
	if len(m.projects) == 0 {
		return nil
	}
	if m.projectIdx >= len(m.projects) {
		return m.projects[0]
	}
	return m.projects[m.projectIdx]
}

// selectedTask returns the task under the cursor for the given cursor value
func (m Model) selectedTask(cursor int) *models.Task {
	items := m.app.TaskService.Items()
	if cursor < 0 || cursor >= len(items) {
		return nil
	}
	return items[cursor]
}

func (m Model) selectedExpense() *models.Expense {
	items := m.app.ExpenseService.Items()
	if m.expCursor < 0 || m.expCursor >= len(items) {
		return nil
	}
	return items[m.expCursor]
}

func (m Model) selectedRequirement() *models.Requirement {
	items := m.app.RequirementService.Items()
	if m.reqCursor < 0 || m.reqCursor >= len(items) {
		return nil
	}
	return items[m.reqCursor]
}

// clampCursors keeps all cursors inside their collections after a reload
func (m *Model) clampCursors() {
	m.taskCursor = clamp(m.taskCursor, len(m.app.TaskService.Items()))
	m.expCursor = clamp(m.expCursor, len(m.app.ExpenseService.Items()))
	m.reqCursor = clamp(m.reqCursor, len(m.app.RequirementService.Items()))
	m.timeCursor = clamp(m.timeCursor, len(m.app.TaskService.Items()))
}

func clamp(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

// nextTab cycles forward through the tabs
func nextTab(active int) int {
	return (active + 1) % len(tabs)
}

// prevTab cycles backward through the tabs
func prevTab(active int) int {
	return (active + len(tabs) - 1) % len(tabs)
}
