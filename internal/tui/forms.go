package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lmarin/obra/internal/models"
)

// formKind identifies what a submitted form creates or edits
type formKind int

const (
	formNewProject formKind = iota
	formEditProject
	formNewTask
	formEditTask
	formNewExpense
	formEditExpense
	formNewRequirement
	formEditRequirement
	formLogTime
	formAddTag
	formRemoveTag
	formCurrency
)

const dateLayout = "2006-01-02"

// form is a vertical stack of labelled text inputs
type form struct {
	kind     formKind
	title    string
	labels   []string
	inputs   []textinput.Model
	focus    int
	targetID int
}

func newForm(kind formKind, title string, fields ...formFieldSpec) *form {
	f := &form{kind: kind, title: title}
	for i, spec := range fields {
		ti := textinput.New()
		ti.Placeholder = spec.placeholder
		ti.SetValue(spec.value)
		ti.CharLimit = 255
		if i == 0 {
			ti.Focus()
		}
		f.labels = append(f.labels, spec.label)
		f.inputs = append(f.inputs, ti)
	}
	return f
}

type formFieldSpec struct {
	label       string
	placeholder string
	value       string
}

// update routes key and blink messages to the focused input and handles
// focus movement between fields
func (f *form) update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down", "enter":
			f.setFocus(f.focus + 1)
			return nil
		case "shift+tab", "up":
			f.setFocus(f.focus - 1)
			return nil
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) setFocus(next int) {
	if next < 0 {
		next = len(f.inputs) - 1
	}
	if next >= len(f.inputs) {
		next = 0
	}
	f.inputs[f.focus].Blur()
	f.focus = next
	f.inputs[f.focus].Focus()
}

func (f *form) value(i int) string {
	return f.inputs[i].Value()
}

// parseDate parses a form date field; empty input means unset
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// parseAmount parses a money or budget field; malformed input yields 0 and
// is caught by service validation
func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// Form constructors

func newProjectForm(p *models.Project) *form {
	if p == nil {
		return newForm(formNewProject, "New project",
			formFieldSpec{label: "Name"},
			formFieldSpec{label: "Description"},
			formFieldSpec{label: "Start date", placeholder: dateLayout},
			formFieldSpec{label: "End date", placeholder: dateLayout},
			formFieldSpec{label: "Budget", placeholder: "0"},
		)
	}
	f := newForm(formEditProject, "Edit project",
		formFieldSpec{label: "Name", value: p.Name},
		formFieldSpec{label: "Description", value: p.Description},
		formFieldSpec{label: "Start date", placeholder: dateLayout, value: formatDate(p.StartDate)},
		formFieldSpec{label: "End date", placeholder: dateLayout, value: formatDate(p.EndDate)},
		formFieldSpec{label: "Budget", value: formatFloat(p.Budget)},
		formFieldSpec{label: "Status", placeholder: "To-do / Doing / Finished", value: string(p.Status)},
	)
	f.targetID = p.ID
	return f
}

func newTaskForm(t *models.Task) *form {
	if t == nil {
		return newForm(formNewTask, "New task",
			formFieldSpec{label: "Title"},
			formFieldSpec{label: "Description"},
			formFieldSpec{label: "Assignee"},
			formFieldSpec{label: "Priority", placeholder: "low / medium / high"},
			formFieldSpec{label: "Due date", placeholder: dateLayout},
			formFieldSpec{label: "Estimated hours", placeholder: "0 or HH:MM:SS"},
		)
	}
	f := newForm(formEditTask, "Edit task",
		formFieldSpec{label: "Title", value: t.Title},
		formFieldSpec{label: "Description", value: t.Description},
		formFieldSpec{label: "Assignee", value: t.Assignee},
		formFieldSpec{label: "Priority", placeholder: "low / medium / high", value: string(t.Priority)},
		formFieldSpec{label: "Due date", placeholder: dateLayout, value: formatDate(t.DueDate)},
		formFieldSpec{label: "Estimated hours", value: formatFloat(t.EstimatedHours)},
	)
	f.targetID = t.ID
	return f
}

func newExpenseForm(e *models.Expense) *form {
	if e == nil {
		return newForm(formNewExpense, "New expense",
			formFieldSpec{label: "Description"},
			formFieldSpec{label: "Amount", placeholder: "0.00"},
			formFieldSpec{label: "Category", placeholder: "personal / equipment / software / services / other"},
			formFieldSpec{label: "Date", placeholder: dateLayout},
		)
	}
	f := newForm(formEditExpense, "Edit expense",
		formFieldSpec{label: "Description", value: e.Description},
		formFieldSpec{label: "Amount", value: formatFloat(e.Amount)},
		formFieldSpec{label: "Category", value: string(e.Category)},
		formFieldSpec{label: "Date", placeholder: dateLayout, value: formatDate(e.Date)},
	)
	f.targetID = e.ID
	return f
}

func newRequirementForm(r *models.Requirement) *form {
	if r == nil {
		return newForm(formNewRequirement, "New requirement",
			formFieldSpec{label: "Title"},
			formFieldSpec{label: "Description"},
			formFieldSpec{label: "Type", placeholder: "functional / technical / legal / business"},
			formFieldSpec{label: "Priority", placeholder: "low / medium / high / critical"},
			formFieldSpec{label: "Due date", placeholder: dateLayout},
		)
	}
	f := newForm(formEditRequirement, "Edit requirement",
		formFieldSpec{label: "Title", value: r.Title},
		formFieldSpec{label: "Description", value: r.Description},
		formFieldSpec{label: "Type", value: string(r.Type)},
		formFieldSpec{label: "Priority", value: string(r.Priority)},
		formFieldSpec{label: "Due date", placeholder: dateLayout, value: formatDate(r.DueDate)},
	)
	f.targetID = r.ID
	return f
}

func newLogTimeForm(taskID int) *form {
	f := newForm(formLogTime, "Log time",
		formFieldSpec{label: "Duration", placeholder: "HH:MM:SS"},
		formFieldSpec{label: "Date", placeholder: dateLayout, value: time.Now().Format(dateLayout)},
		formFieldSpec{label: "Description"},
	)
	f.targetID = taskID
	return f
}

// newAddTagForm attaches a tag by name to the task, creating the tag when
// no tag with that name exists yet
func newAddTagForm(taskID int) *form {
	f := newForm(formAddTag, "Tag task",
		formFieldSpec{label: "Name"},
		formFieldSpec{label: "Color", placeholder: "#RRGGBB (optional)"},
	)
	f.targetID = taskID
	return f
}

func newRemoveTagForm(taskID int) *form {
	f := newForm(formRemoveTag, "Remove tag",
		formFieldSpec{label: "Name"},
	)
	f.targetID = taskID
	return f
}

func newCurrencyForm(current string) *form {
	return newForm(formCurrency, "Currency",
		formFieldSpec{label: "ISO code", placeholder: "EUR", value: current},
	)
}
