package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/lmarin/obra/internal/metrics"
	"github.com/lmarin/obra/internal/models"
)

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabBar())
	b.WriteString("\n\n")

	switch m.mode {
	case modeForm:
		b.WriteString(m.renderForm())
	case modeConfirm:
		b.WriteString(m.renderConfirm())
	case modeView:
		b.WriteString(m.viewBody)
		b.WriteString("\n" + m.styles.Help.Render("press any key to close"))
	default:
		if m.showHelp {
			b.WriteString(m.renderHelp())
		} else {
			b.WriteString(m.renderTab())
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	return b.String()
}

func (m Model) renderHeader() string {
	p := m.currentProject()
	if p == nil {
		return m.styles.Title.Render("obra") + m.styles.Muted.Render("  no projects yet, press 'a' on Overview")
	}

	position := fmt.Sprintf("[%d/%d]", m.projectIdx+1, len(m.projects))
	status := m.styles.Muted.Render(string(p.Status))
	return m.styles.Title.Render("obra ") +
		m.styles.Selected.Render(p.Name) + " " +
		m.styles.Muted.Render(position) + " " + status
}

func (m Model) renderTabBar() string {
	parts := make([]string, len(tabs))
	for i, name := range tabs {
		if i == m.activeTab {
			parts[i] = m.styles.TabActive.Render(name)
		} else {
			parts[i] = m.styles.TabIdle.Render(name)
		}
	}
	return strings.Join(parts, m.styles.Muted.Render(" | "))
}

func (m Model) renderTab() string {
	switch m.activeTab {
	case tabOverview:
		return m.renderOverview()
	case tabTasks:
		return m.renderTasks()
	case tabExpenses:
		return m.renderExpenses()
	case tabRequirements:
		return m.renderRequirements()
	case tabTime:
		return m.renderTime()
	case tabSettings:
		return m.renderSettings()
	}
	return ""
}

func (m Model) renderOverview() string {
	p := m.currentProject()
	if p == nil {
		return m.styles.Muted.Render("Create a project to get started.")
	}
	s := m.summary
	fmtr := m.app.Settings

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %d%%   %s %d/%d\n",
		m.styles.FormLabel.Render("Progress"), s.Progress,
		m.styles.FormLabel.Render("Tasks"), s.CompletedTasks, s.TotalTasks))
	b.WriteString(fmt.Sprintf("%s %s of %s (%s%%)\n",
		m.styles.FormLabel.Render("Spent"),
		fmtr.FormatCurrency(s.Spent),
		fmtr.FormatCurrency(p.Budget),
		formatFloat(s.Utilization)))

	remaining := fmtr.FormatCurrency(s.RemainingBudget)
	if s.RemainingBudget < 0 {
		remaining = m.styles.Danger.Render(remaining)
	} else {
		remaining = m.styles.Success.Render(remaining)
	}
	b.WriteString(m.styles.FormLabel.Render("Remaining") + " " + remaining + "\n")
	b.WriteString(m.styles.FormLabel.Render("Hours worked") + " " + fmtr.FormatTime(s.TotalHoursWorked) + "\n")

	if eff := metrics.Efficiency(m.app.TaskService.Items()); eff > 0 {
		b.WriteString(m.styles.FormLabel.Render("Efficiency") + " " + formatFloat(eff) + "%\n")
	}

	byCategory := metrics.ExpensesByCategory(m.app.ExpenseService.Items())
	if len(byCategory) > 0 {
		b.WriteString("\n" + m.styles.FormLabel.Render("Approved spend by category") + "\n")
		for _, cat := range models.ExpenseCategories {
			if total, ok := byCategory[cat]; ok {
				b.WriteString(fmt.Sprintf("  %-10s %s\n", cat, fmtr.FormatCurrency(total)))
			}
		}
	}

	if !p.StartDate.IsZero() || !p.EndDate.IsZero() {
		b.WriteString("\n" + m.styles.Muted.Render(
			formatDate(p.StartDate)+" .. "+formatDate(p.EndDate)) + "\n")
	}
	return b.String()
}

func (m Model) renderTasks() string {
	items := m.app.TaskService.Items()
	if len(items) == 0 {
		return m.styles.Muted.Render("No tasks. Press 'a' to add one.")
	}

	var b strings.Builder
	for i, t := range items {
		line := fmt.Sprintf("%-30s %-12s %-8s %s",
			truncate(t.Title, 30), t.Status, t.Priority,
			m.app.Settings.FormatTime(t.ActualHours))
		if live, running := m.elapsed[t.ID]; running {
			line += " " + m.styles.Warning.Render("⏱ "+live)
		}
		if len(t.Tags) > 0 {
			names := make([]string, len(t.Tags))
			for j, tag := range t.Tags {
				names[j] = tag.Name
			}
			line += " " + m.styles.Muted.Render("["+strings.Join(names, ",")+"]")
		}
		b.WriteString(m.cursorLine(line, i == m.taskCursor))
	}
	return b.String()
}

func (m Model) renderExpenses() string {
	items := m.app.ExpenseService.Items()
	if len(items) == 0 {
		return m.styles.Muted.Render("No expenses. Press 'a' to add one.")
	}

	var b strings.Builder
	for i, e := range items {
		status := string(e.Status)
		switch e.Status {
		case models.ExpenseStatusApproved:
			status = m.styles.Success.Render(status)
		case models.ExpenseStatusRejected:
			status = m.styles.Danger.Render(status)
		default:
			status = m.styles.Warning.Render(status)
		}
		line := fmt.Sprintf("%-30s %12s %-10s %s  %s",
			truncate(e.Description, 30),
			m.app.Settings.FormatCurrency(e.Amount),
			e.Category, formatDate(e.Date), status)
		b.WriteString(m.cursorLine(line, i == m.expCursor))
	}

	total := metrics.SpentBudget(items)
	b.WriteString("\n" + m.styles.FormLabel.Render("Approved total") + " " +
		m.app.Settings.FormatCurrency(total) + "\n")
	return b.String()
}

func (m Model) renderRequirements() string {
	items := m.app.RequirementService.Items()
	if len(items) == 0 {
		return m.styles.Muted.Render("No requirements. Press 'a' to add one.")
	}

	var b strings.Builder
	for i, r := range items {
		line := fmt.Sprintf("%-30s %-10s %-10s %-8s %s",
			truncate(r.Title, 30), r.Type, r.Status, r.Priority, formatDate(r.DueDate))
		b.WriteString(m.cursorLine(line, i == m.reqCursor))
	}

	b.WriteString("\n" + m.styles.FormLabel.Render("Approval rate") + " " +
		fmt.Sprintf("%d%%", metrics.RequirementApprovalRate(items)) + "\n")
	return b.String()
}

func (m Model) renderTime() string {
	items := m.app.TaskService.Items()
	if len(items) == 0 {
		return m.styles.Muted.Render("No tasks to track time against.")
	}

	var b strings.Builder
	for i, t := range items {
		line := fmt.Sprintf("%-30s est %-10s actual %-10s",
			truncate(t.Title, 30),
			m.app.Settings.FormatTime(t.EstimatedHours),
			m.app.Settings.FormatTime(t.ActualHours))
		if live, running := m.elapsed[t.ID]; running {
			line += " " + m.styles.Warning.Render("⏱ "+live)
		}
		b.WriteString(m.cursorLine(line, i == m.timeCursor))
	}

	if len(m.entries) > 0 {
		b.WriteString("\n" + m.styles.FormLabel.Render("Entries") + "\n")
		for _, e := range m.entries {
			desc := e.Description
			if desc == "" {
				desc = "(session)"
			}
			b.WriteString(fmt.Sprintf("  %s  %-10s %s\n",
				formatDate(e.Date), m.app.Settings.FormatTime(e.Hours), desc))
		}
	}
	return b.String()
}

func (m Model) renderSettings() string {
	current := m.app.Settings.Current()

	var b strings.Builder
	b.WriteString(m.styles.FormLabel.Render("Currency") + "     " + current.Currency + "\n")
	b.WriteString(m.styles.FormLabel.Render("Time format") + "  " + string(current.TimeFormat) + "\n\n")
	b.WriteString(m.styles.Help.Render("e: change currency   f: toggle time format"))
	return b.String()
}

func (m Model) renderForm() string {
	f := m.form
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(f.title) + "\n\n")
	for i, label := range f.labels {
		b.WriteString(m.styles.FormLabel.Render(fmt.Sprintf("%-16s", label)))
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n" + m.styles.Help.Render(m.keys.SaveForm+": save   esc: cancel"))
	return b.String()
}

func (m Model) renderConfirm() string {
	return m.styles.Danger.Render(m.confirm.prompt) + "\n\n" +
		m.styles.Help.Render("y: confirm   any other key: cancel")
}

func (m Model) renderHelp() string {
	k := m.keys
	rows := [][2]string{
		{k.NextTab + "/" + k.PrevTab, "switch tab"},
		{k.NextItem + "/" + k.PrevItem, "move cursor"},
		{k.PrevProject + "/" + k.NextProject, "switch project"},
		{k.Add, "add"},
		{k.Edit, "edit"},
		{k.Delete, "delete"},
		{k.View, "view details / time entries"},
		{k.SetStatus, "cycle status"},
		{k.StartTimer, "start timer"},
		{k.StopTimer, "stop timer and commit"},
		{k.LogTime, "log time manually"},
		{k.AddTag, "tag task"},
		{k.RemoveTag, "remove tag from task"},
		{k.ToggleTimeFormat, "toggle decimal / hh:mm:ss"},
		{k.Quit, "quit"},
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Keys") + "\n\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %-8s %s\n", row[0], m.styles.Muted.Render(row[1])))
	}
	return b.String()
}

func (m Model) renderStatusLine() string {
	if m.notice == "" {
		return m.styles.Help.Render("? for help")
	}
	if m.noticeErr {
		return m.styles.ErrNotice.Render(m.notice)
	}
	return m.styles.Notice.Render(m.notice)
}

func (m Model) cursorLine(line string, selected bool) string {
	if selected {
		return m.styles.Selected.Render("> "+line) + "\n"
	}
	return "  " + line + "\n"
}

// renderMarkdown renders a description through glamour, falling back to the
// raw text when rendering fails
func renderMarkdown(text string, width int) string {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(min(width-4, 100)),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return out
}

// truncate shortens s to n runes, never splitting a multibyte character
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
