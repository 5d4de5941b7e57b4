package tui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lmarin/obra/internal/app"
	"github.com/lmarin/obra/internal/models"
	"github.com/lmarin/obra/internal/services/expense"
	"github.com/lmarin/obra/internal/services/project"
	"github.com/lmarin/obra/internal/services/requirement"
	"github.com/lmarin/obra/internal/services/task"
	"github.com/lmarin/obra/internal/settings"
	"github.com/lmarin/obra/internal/timer"
)

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.elapsed = m.app.Timers.Elapsed()
		return m, tickCmd()

	case projectsLoadedMsg:
		m.projects = msg.projects
		m.projectIdx = clamp(m.projectIdx, len(m.projects))
		if p := m.currentProject(); p != nil {
			return m, loadProjectDataCmd(m.app, p.ID)
		}
		return m, nil

	case projectDataMsg:
		m.summary = msg.summary
		m.clampCursors()
		return m, nil

	case entriesMsg:
		m.entries = msg.entries
		return m, nil

	case noticeMsg:
		m.notice = msg.text
		m.noticeErr = msg.isErr
		return m, nil

	case actionDoneMsg:
		m.notice = msg.text
		m.noticeErr = false
		if msg.reload {
			return m, loadProjectsCmd(m.app)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == modeForm && m.form != nil {
		return m, m.form.update(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case modeForm:
		return m.handleFormKey(msg)
	case modeConfirm:
		return m.handleConfirmKey(key)
	case modeView:
		m.mode = modeNormal
		m.viewBody = ""
		return m, nil
	}

	// Help overlay swallows the next key
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch key {
	case m.keys.Quit:
		return m, tea.Quit
	case m.keys.ShowHelp:
		m.showHelp = true
		return m, nil
	case m.keys.NextTab, "right":
		m.activeTab = nextTab(m.activeTab)
		return m, nil
	case m.keys.PrevTab, "left":
		m.activeTab = prevTab(m.activeTab)
		return m, nil
	case m.keys.NextProject:
		return m.cycleProject(1)
	case m.keys.PrevProject:
		return m.cycleProject(-1)
	case m.keys.ToggleTimeFormat:
		return m, m.toggleTimeFormatCmd()
	}

	switch m.activeTab {
	case tabOverview:
		return m.handleOverviewKey(key)
	case tabTasks:
		return m.handleTasksKey(key)
	case tabExpenses:
		return m.handleExpensesKey(key)
	case tabRequirements:
		return m.handleRequirementsKey(key)
	case tabTime:
		return m.handleTimeKey(key)
	case tabSettings:
		return m.handleSettingsKey(key)
	}
	return m, nil
}

func (m Model) cycleProject(dir int) (tea.Model, tea.Cmd) {
	if len(m.projects) == 0 {
		return m, nil
	}
	m.projectIdx = (m.projectIdx + dir + len(m.projects)) % len(m.projects)
	m.taskCursor, m.expCursor, m.reqCursor, m.timeCursor = 0, 0, 0, 0
	return m, loadProjectDataCmd(m.app, m.projects[m.projectIdx].ID)
}

func (m Model) handleOverviewKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case m.keys.Add:
		m.form = newProjectForm(nil)
		m.mode = modeForm
	case m.keys.Edit:
		if p := m.currentProject(); p != nil {
			m.form = newProjectForm(p)
			m.mode = modeForm
		}
	case m.keys.Delete:
		if p := m.currentProject(); p != nil {
			m.confirm = confirmState{
				prompt: "Delete project \"" + p.Name + "\" and everything in it?",
				action: deleteProjectCmd(m.app, p.ID),
			}
			m.mode = modeConfirm
		}
	case m.keys.View:
		if p := m.currentProject(); p != nil && p.Description != "" {
			m.viewBody = renderMarkdown(p.Description, m.width)
			m.mode = modeView
		}
	case m.keys.SetStatus:
		if p := m.currentProject(); p != nil {
			next := nextProjectStatus(p.Status)
			return m, updateProjectStatusCmd(m.app, p.ID, next)
		}
	}
	return m, nil
}

func (m Model) handleTasksKey(key string) (tea.Model, tea.Cmd) {
	items := m.app.TaskService.Items()

	switch key {
	case m.keys.NextItem, "down":
		m.taskCursor = clamp(m.taskCursor+1, len(items))
	case m.keys.PrevItem, "up":
		m.taskCursor = clamp(m.taskCursor-1, len(items))
	case m.keys.Add:
		if m.currentProject() != nil {
			m.form = newTaskForm(nil)
			m.mode = modeForm
		}
	case m.keys.Edit:
		if t := m.selectedTask(m.taskCursor); t != nil {
			m.form = newTaskForm(t)
			m.mode = modeForm
		}
	case m.keys.Delete:
		if t := m.selectedTask(m.taskCursor); t != nil {
			m.confirm = confirmState{
				prompt: "Delete task \"" + t.Title + "\"?",
				action: deleteTaskCmd(m.app, t.ID),
			}
			m.mode = modeConfirm
		}
	case m.keys.View:
		if t := m.selectedTask(m.taskCursor); t != nil && t.Description != "" {
			m.viewBody = renderMarkdown(t.Description, m.width)
			m.mode = modeView
		}
	case m.keys.SetStatus:
		if t := m.selectedTask(m.taskCursor); t != nil {
			return m, setTaskStatusCmd(m.app, t.ID, nextTaskStatus(t.Status))
		}
	case m.keys.StartTimer:
		if t := m.selectedTask(m.taskCursor); t != nil {
			return m, startTimerCmd(m.app, t.ID)
		}
	case m.keys.StopTimer:
		if t := m.selectedTask(m.taskCursor); t != nil {
			return m, stopTimerCmd(m.app, t.ID)
		}
	case m.keys.LogTime:
		if t := m.selectedTask(m.taskCursor); t != nil {
			m.form = newLogTimeForm(t.ID)
			m.mode = modeForm
		}
	case m.keys.AddTag:
		if t := m.selectedTask(m.taskCursor); t != nil {
			m.form = newAddTagForm(t.ID)
			m.mode = modeForm
		}
	case m.keys.RemoveTag:
		if t := m.selectedTask(m.taskCursor); t != nil && len(t.Tags) > 0 {
			m.form = newRemoveTagForm(t.ID)
			m.mode = modeForm
		}
	}
	return m, nil
}

func (m Model) handleExpensesKey(key string) (tea.Model, tea.Cmd) {
	items := m.app.ExpenseService.Items()

	switch key {
	case m.keys.NextItem, "down":
		m.expCursor = clamp(m.expCursor+1, len(items))
	case m.keys.PrevItem, "up":
		m.expCursor = clamp(m.expCursor-1, len(items))
	case m.keys.Add:
		if m.currentProject() != nil {
			m.form = newExpenseForm(nil)
			m.mode = modeForm
		}
	case m.keys.Edit:
		if e := m.selectedExpense(); e != nil {
			m.form = newExpenseForm(e)
			m.mode = modeForm
		}
	case m.keys.Delete:
		if e := m.selectedExpense(); e != nil {
			m.confirm = confirmState{
				prompt: "Delete expense \"" + e.Description + "\"?",
				action: deleteExpenseCmd(m.app, e.ID),
			}
			m.mode = modeConfirm
		}
	case m.keys.SetStatus:
		if e := m.selectedExpense(); e != nil {
			return m, setExpenseStatusCmd(m.app, e.ID, nextExpenseStatus(e.Status))
		}
	}
	return m, nil
}

func (m Model) handleRequirementsKey(key string) (tea.Model, tea.Cmd) {
	items := m.app.RequirementService.Items()

	switch key {
	case m.keys.NextItem, "down":
		m.reqCursor = clamp(m.reqCursor+1, len(items))
	case m.keys.PrevItem, "up":
		m.reqCursor = clamp(m.reqCursor-1, len(items))
	case m.keys.Add:
		if m.currentProject() != nil {
			m.form = newRequirementForm(nil)
			m.mode = modeForm
		}
	case m.keys.Edit:
		if r := m.selectedRequirement(); r != nil {
			m.form = newRequirementForm(r)
			m.mode = modeForm
		}
	case m.keys.Delete:
		if r := m.selectedRequirement(); r != nil {
			m.confirm = confirmState{
				prompt: "Delete requirement \"" + r.Title + "\"?",
				action: deleteRequirementCmd(m.app, r.ID),
			}
			m.mode = modeConfirm
		}
	case m.keys.View:
		if r := m.selectedRequirement(); r != nil && r.Description != "" {
			m.viewBody = renderMarkdown(r.Description, m.width)
			m.mode = modeView
		}
	case m.keys.SetStatus:
		if r := m.selectedRequirement(); r != nil {
			return m, setRequirementStatusCmd(m.app, r.ID, nextRequirementStatus(r.Status))
		}
	}
	return m, nil
}

func (m Model) handleTimeKey(key string) (tea.Model, tea.Cmd) {
	items := m.app.TaskService.Items()

	switch key {
	case m.keys.NextItem, "down":
		m.timeCursor = clamp(m.timeCursor+1, len(items))
		m.entries = nil
	case m.keys.PrevItem, "up":
		m.timeCursor = clamp(m.timeCursor-1, len(items))
		m.entries = nil
	case m.keys.View:
		if t := m.selectedTask(m.timeCursor); t != nil {
			return m, loadEntriesCmd(m.app, t.ID)
		}
	case m.keys.StartTimer:
		if t := m.selectedTask(m.timeCursor); t != nil {
			return m, startTimerCmd(m.app, t.ID)
		}
	case m.keys.StopTimer:
		if t := m.selectedTask(m.timeCursor); t != nil {
			return m, stopTimerCmd(m.app, t.ID)
		}
	case m.keys.LogTime:
		if t := m.selectedTask(m.timeCursor); t != nil {
			m.form = newLogTimeForm(t.ID)
			m.mode = modeForm
		}
	}
	return m, nil
}

func (m Model) handleSettingsKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case m.keys.Edit:
		m.form = newCurrencyForm(m.app.Settings.Current().Currency)
		m.mode = modeForm
	case m.keys.ToggleTimeFormat:
		return m, m.toggleTimeFormatCmd()
	}
	return m, nil
}

func (m Model) handleConfirmKey(key string) (tea.Model, tea.Cmd) {
	action := m.confirm.action
	m.confirm = confirmState{}
	m.mode = modeNormal
	if key == "y" || key == "Y" {
		return m, action
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form = nil
		m.mode = modeNormal
		return m, nil
	case m.keys.SaveForm:
		cmd := m.submitForm()
		m.form = nil
		m.mode = modeNormal
		return m, cmd
	}
	return m, m.form.update(msg)
}

// submitForm turns the completed form into a service call
func (m Model) submitForm() tea.Cmd {
	f := m.form
	a := m.app
	p := m.currentProject()

	switch f.kind {
	case formNewProject:
		req := project.CreateRequest{
			Name:        f.value(0),
			Description: f.value(1),
			StartDate:   parseDate(f.value(2)),
			EndDate:     parseDate(f.value(3)),
			Budget:      parseAmount(f.value(4)),
		}
		return func() tea.Msg {
			if _, err := a.ProjectService.Create(context.Background(), req); err != nil {
				return noticeMsg{text: err.Error(), isErr: true}
			}
			return actionDoneMsg{text: "Project created", reload: true}
		}

	case formEditProject:
		name, desc := f.value(0), f.value(1)
		start, end := parseDate(f.value(2)), parseDate(f.value(3))
		budget := parseAmount(f.value(4))
		status := models.ProjectStatus(f.value(5))
		req := project.UpdateRequest{
			ID: f.targetID, Name: &name, Description: &desc,
			StartDate: &start, EndDate: &end, Budget: &budget, Status: &status,
		}
		return func() tea.Msg {
			if _, err := a.ProjectService.Update(context.Background(), req); err != nil {
				return serviceErrMsg(err)
			}
			return actionDoneMsg{text: "Project updated", reload: true}
		}

	case formNewTask:
		if p == nil {
			return nil
		}
		req := task.CreateRequest{
			ProjectID:      p.ID,
			Title:          f.value(0),
			Description:    f.value(1),
			Assignee:       f.value(2),
			Priority:       models.TaskPriority(strings.TrimSpace(f.value(3))),
			DueDate:        parseDate(f.value(4)),
			EstimatedHours: a.Settings.ParseTime(f.value(5)),
		}
		if req.Priority == "" {
			req.Priority = models.TaskPriorityMedium
		}
		return func() tea.Msg {
			if _, err := a.TaskService.Create(context.Background(), req); err != nil {
				return serviceErrMsg(err)
			}
			return actionDoneMsg{text: "Task created", reload: true}
		}

	case formEditTask:
		title, desc, assignee := f.value(0), f.value(1), f.value(2)
		priority := models.TaskPriority(strings.TrimSpace(f.value(3)))
		due := parseDate(f.value(4))
		estimate := a.Settings.ParseTime(f.value(5))
		req := task.UpdateRequest{
			ID: f.targetID, Title: &title, Description: &desc, Assignee: &assignee,
			Priority: &priority, DueDate: &due, EstimatedHours: &estimate,
		}
		return func() tea.Msg {
			if _, err := a.TaskService.Update(context.Background(), req); err != nil {
				return serviceErrMsg(err)
			}
			return actionDoneMsg{text: "Task updated", reload: true}
		}

	case formNewExpense:
		if p == nil {
			return nil
		}
		req := expense.CreateRequest{
			ProjectID:   p.ID,
			Description: f.value(0),
			Amount:      parseAmount(f.value(1)),
			Category:    models.ExpenseCategory(strings.TrimSpace(f.value(2))),
			Date:        parseDate(f.value(3)),
		}
		return func() tea.Msg {
			if _, err := a.ExpenseService.Create(context.Background(), req); err != nil {
				return serviceErrMsg(err)
			}
			return actionDoneMsg{text: "Expense recorded", reload: true}
		}

	case formEditExpense:
		desc := f.value(0)
		amount := parseAmount(f.value(1))
		category := models.ExpenseCategory(strings.TrimSpace(f.value(2)))
		date := parseDate(f.value(3))
		req := expense.UpdateRequest{
			ID: f.targetID, Description: &desc, Amount: &amount,
			Category: &category, Date: &date,
		}
		return func() tea.Msg {
			if _, err := a.ExpenseService.Update(context.Background(), req); err != nil {
				return serviceErrMsg(err)
			}
			return actionDoneMsg{text: "Expense updated", reload: true}
		}

	case formNewRequirement:
		if p == nil {
			return nil
		}
		req := requirement.CreateRequest{
			ProjectID:   p.ID,
			Title:       f.value(0),
			Description: f.value(1),
			Type:        models.RequirementType(strings.TrimSpace(f.value(2))),
			Priority:    models.RequirementPriority(strings.TrimSpace(f.value(3))),
			DueDate:     parseDate(f.value(4)),
		}
		return func() tea.Msg {
			if _, err := a.RequirementService.Create(context.Background(), req); err != nil {
				return serviceErrMsg(err)
			}
			return actionDoneMsg{text: "Requirement created", reload: true}
		}

	case formEditRequirement:
		title, desc := f.value(0), f.value(1)
		reqType := models.RequirementType(strings.TrimSpace(f.value(2)))
		priority := models.RequirementPriority(strings.TrimSpace(f.value(3)))
		due := parseDate(f.value(4))
		req := requirement.UpdateRequest{
			ID: f.targetID, Title: &title, Description: &desc,
			Type: &reqType, Priority: &priority, DueDate: &due,
		}
		return func() tea.Msg {
			if _, err := a.RequirementService.Update(context.Background(), req); err != nil {
				return serviceErrMsg(err)
			}
			return actionDoneMsg{text: "Requirement updated", reload: true}
		}

	case formLogTime:
		hms, date, desc := f.value(0), parseDate(f.value(1)), f.value(2)
		taskID := f.targetID
		return func() tea.Msg {
			if _, err := a.Timers.AddManual(context.Background(), taskID, hms, date, desc); err != nil {
				return serviceErrMsg(err)
			}
			return actionDoneMsg{text: "Time logged", reload: true}
		}

	case formAddTag:
		name := strings.TrimSpace(f.value(0))
		color := strings.TrimSpace(f.value(1))
		taskID := f.targetID
		return func() tea.Msg {
			ctx := context.Background()
			existing := findTagByName(a.TagService.Items(), name)
			if existing == nil {
				created, err := a.TagService.Create(ctx, name, color)
				if err != nil {
					return serviceErrMsg(err)
				}
				existing = created
			}
			if err := a.TagService.AddToTask(ctx, taskID, existing.ID); err != nil {
				return serviceErrMsg(err)
			}
			return actionDoneMsg{text: "Tagged with " + existing.Name, reload: true}
		}

	case formRemoveTag:
		name := strings.TrimSpace(f.value(0))
		taskID := f.targetID
		return func() tea.Msg {
			tag := findTagByName(a.TagService.Items(), name)
			if tag == nil {
				return noticeMsg{text: "No tag named " + name, isErr: true}
			}
			if err := a.TagService.RemoveFromTask(context.Background(), taskID, tag.ID); err != nil {
				return serviceErrMsg(err)
			}
			return actionDoneMsg{text: "Removed tag " + tag.Name, reload: true}
		}

	case formCurrency:
		code := strings.ToUpper(strings.TrimSpace(f.value(0)))
		return func() tea.Msg {
			if err := a.Settings.Update(settings.Partial{Currency: &code}); err != nil {
				return serviceErrMsg(err)
			}
			return actionDoneMsg{text: "Currency set to " + code}
		}
	}
	return nil
}

func (m Model) toggleTimeFormatCmd() tea.Cmd {
	a := m.app
	return func() tea.Msg {
		next := settings.ModeHMS
		if a.Settings.Current().TimeFormat == settings.ModeHMS {
			next = settings.ModeDecimal
		}
		if err := a.Settings.Update(settings.Partial{TimeFormat: &next}); err != nil {
			return serviceErrMsg(err)
		}
		return actionDoneMsg{text: "Time format: " + string(next)}
	}
}

// Mutation commands

func deleteProjectCmd(a *app.App, id int) tea.Cmd {
	return func() tea.Msg {
		if err := a.ProjectService.Delete(context.Background(), id); err != nil {
			return serviceErrMsg(err)
		}
		return actionDoneMsg{text: "Project deleted", reload: true}
	}
}

func updateProjectStatusCmd(a *app.App, id int, status models.ProjectStatus) tea.Cmd {
	return func() tea.Msg {
		req := project.UpdateRequest{ID: id, Status: &status}
		if _, err := a.ProjectService.Update(context.Background(), req); err != nil {
			return serviceErrMsg(err)
		}
		return actionDoneMsg{text: "Project moved to " + string(status), reload: true}
	}
}

func deleteTaskCmd(a *app.App, id int) tea.Cmd {
	return func() tea.Msg {
		if err := a.TaskService.Delete(context.Background(), id); err != nil {
			return serviceErrMsg(err)
		}
		return actionDoneMsg{text: "Task deleted", reload: true}
	}
}

func setTaskStatusCmd(a *app.App, id int, status models.TaskStatus) tea.Cmd {
	return func() tea.Msg {
		if err := a.TaskService.SetStatus(context.Background(), id, status); err != nil {
			return serviceErrMsg(err)
		}
		return actionDoneMsg{text: "Task moved to " + string(status), reload: true}
	}
}

func deleteExpenseCmd(a *app.App, id int) tea.Cmd {
	return func() tea.Msg {
		if err := a.ExpenseService.Delete(context.Background(), id); err != nil {
			return serviceErrMsg(err)
		}
		return actionDoneMsg{text: "Expense deleted", reload: true}
	}
}

func setExpenseStatusCmd(a *app.App, id int, status models.ExpenseStatus) tea.Cmd {
	return func() tea.Msg {
		if err := a.ExpenseService.SetStatus(context.Background(), id, status); err != nil {
			return serviceErrMsg(err)
		}
		return actionDoneMsg{text: "Expense " + string(status), reload: true}
	}
}

func deleteRequirementCmd(a *app.App, id int) tea.Cmd {
	return func() tea.Msg {
		if err := a.RequirementService.Delete(context.Background(), id); err != nil {
			return serviceErrMsg(err)
		}
		return actionDoneMsg{text: "Requirement deleted", reload: true}
	}
}

func setRequirementStatusCmd(a *app.App, id int, status models.RequirementStatus) tea.Cmd {
	return func() tea.Msg {
		if err := a.RequirementService.SetStatus(context.Background(), id, status); err != nil {
			return serviceErrMsg(err)
		}
		return actionDoneMsg{text: "Requirement " + string(status), reload: true}
	}
}

func startTimerCmd(a *app.App, taskID int) tea.Cmd {
	return func() tea.Msg {
		if err := a.Timers.Start(taskID); err != nil {
			if errors.Is(err, timer.ErrAlreadyRunning) {
				return noticeMsg{text: "Timer already running for this task"}
			}
			return serviceErrMsg(err)
		}
		return actionDoneMsg{text: "Timer started"}
	}
}

func stopTimerCmd(a *app.App, taskID int) tea.Cmd {
	return func() tea.Msg {
		entry, err := a.Timers.Stop(context.Background(), taskID)
		if err != nil {
			if errors.Is(err, timer.ErrNotRunning) {
				return noticeMsg{text: "No timer running for this task"}
			}
			return serviceErrMsg(err)
		}
		return actionDoneMsg{
			text:   "Session committed: " + formatFloat(entry.Hours) + "h",
			reload: true,
		}
	}
}

// findTagByName matches case-insensitively so "Urgent" attaches the
// existing "urgent" tag instead of creating a near-duplicate
func findTagByName(tags []*models.Tag, name string) *models.Tag {
	for _, tag := range tags {
		if strings.EqualFold(tag.Name, name) {
			return tag
		}
	}
	return nil
}

// serviceErrMsg maps a service error to a status-line notice
func serviceErrMsg(err error) tea.Msg {
	return noticeMsg{text: err.Error(), isErr: true}
}

// Status cycling for the set-status key

func nextProjectStatus(s models.ProjectStatus) models.ProjectStatus {
	switch s {
	case models.ProjectStatusTodo:
		return models.ProjectStatusDoing
	case models.ProjectStatusDoing:
		return models.ProjectStatusFinished
	default:
		return models.ProjectStatusTodo
	}
}

func nextTaskStatus(s models.TaskStatus) models.TaskStatus {
	switch s {
	case models.TaskStatusPending:
		return models.TaskStatusInProgress
	case models.TaskStatusInProgress:
		return models.TaskStatusCompleted
	default:
		return models.TaskStatusPending
	}
}

func nextExpenseStatus(s models.ExpenseStatus) models.ExpenseStatus {
	switch s {
	case models.ExpenseStatusPending:
		return models.ExpenseStatusApproved
	case models.ExpenseStatusApproved:
		return models.ExpenseStatusRejected
	default:
		return models.ExpenseStatusPending
	}
}

func nextRequirementStatus(s models.RequirementStatus) models.RequirementStatus {
	switch s {
	case models.RequirementStatusPending:
		return models.RequirementStatusInReview
	case models.RequirementStatusInReview:
		return models.RequirementStatusApproved
	case models.RequirementStatusApproved:
		return models.RequirementStatusRejected
	default:
		return models.RequirementStatusPending
	}
}
