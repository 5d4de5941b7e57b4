// Package metrics derives project-level figures from in-memory collections
// of tasks, expenses and requirements. Every function is total and
// side-effect free: zero denominators resolve to 0, never NaN or Inf.
package metrics

import (
	"math"

	"github.com/lmarin/obra/internal/models"
)

// ProjectProgress returns the percentage of completed tasks, rounded to the
// nearest integer. An empty task list is 0% complete.
func ProjectProgress(tasks []*models.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	return int(math.Round(float64(CompletedTasks(tasks)) / float64(len(tasks)) * 100))
}

// CompletedTasks counts tasks in the completed status
func CompletedTasks(tasks []*models.Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed() {
			n++
		}
	}
	return n
}

// SpentBudget sums the amounts of approved expenses. Pending and rejected
// expenses are excluded entirely.
func SpentBudget(expenses []*models.Expense) float64 {
	var total float64
	for _, e := range expenses {
		if e.Approved() {
			total += e.Amount
		}
	}
	return total
}

// BudgetUtilization returns spent as a percentage of budget, or 0 when the
// budget is zero or negative.
func BudgetUtilization(spent, budget float64) float64 {
	if budget <= 0 {
		return 0
	}
	return spent / budget * 100
}

// RemainingBudget returns budget minus spent. The result may be negative;
// callers wanting an "available" figure floor it themselves.
func RemainingBudget(budget, spent float64) float64 {
	return budget - spent
}

// ExpensesByCategory sums approved expense amounts per category. Categories
// with no approved spend are omitted from the result, not zero-valued.
func ExpensesByCategory(expenses []*models.Expense) map[models.ExpenseCategory]float64 {
	byCategory := make(map[models.ExpenseCategory]float64)
	for _, e := range expenses {
		if e.Approved() {
			byCategory[e.Category] += e.Amount
		}
	}
	return byCategory
}

// TotalEstimatedHours sums estimated hours across tasks
func TotalEstimatedHours(tasks []*models.Task) float64 {
	var total float64
	for _, t := range tasks {
		total += t.EstimatedHours
	}
	return total
}

// TotalActualHours sums committed actual hours across tasks
func TotalActualHours(tasks []*models.Task) float64 {
	var total float64
	for _, t := range tasks {
		total += t.ActualHours
	}
	return total
}

// Efficiency compares estimated to actual hours in percent, over 100 when
// work finished under estimate. 0 when no hours have been worked yet.
func Efficiency(tasks []*models.Task) float64 {
	actual := TotalActualHours(tasks)
	if actual <= 0 {
		return 0
	}
	return TotalEstimatedHours(tasks) / actual * 100
}

// TaskStatusDistribution counts tasks per workflow status. Every known
// status appears in the result so proportional bars render stable segments.
func TaskStatusDistribution(tasks []*models.Task) map[models.TaskStatus]int {
	counts := make(map[models.TaskStatus]int, len(models.TaskStatuses))
	for _, s := range models.TaskStatuses {
		counts[s] = 0
	}
	for _, t := range tasks {
		counts[t.Status]++
	}
	return counts
}

// RequirementStatusDistribution counts requirements per review status
func RequirementStatusDistribution(reqs []*models.Requirement) map[models.RequirementStatus]int {
	counts := make(map[models.RequirementStatus]int, len(models.RequirementStatuses))
	for _, s := range models.RequirementStatuses {
		counts[s] = 0
	}
	for _, r := range reqs {
		counts[r.Status]++
	}
	return counts
}

// RequirementApprovalRate returns the percentage of approved requirements,
// rounded to the nearest integer. 0 when there are none.
func RequirementApprovalRate(reqs []*models.Requirement) int {
	if len(reqs) == 0 {
		return 0
	}
	approved := 0
	for _, r := range reqs {
		if r.Status == models.RequirementStatusApproved {
			approved++
		}
	}
	return int(math.Round(float64(approved) / float64(len(reqs)) * 100))
}

// Summarize computes the full derived block for a project from its tasks
// and expenses. The summary is recomputed on every load, never stored.
func Summarize(project *models.Project, tasks []*models.Task, expenses []*models.Expense) models.ProjectSummary {
	spent := SpentBudget(expenses)
	return models.ProjectSummary{
		Progress:         ProjectProgress(tasks),
		Spent:            spent,
		RemainingBudget:  RemainingBudget(project.Budget, spent),
		Utilization:      BudgetUtilization(spent, project.Budget),
		TotalTasks:       len(tasks),
		CompletedTasks:   CompletedTasks(tasks),
		TotalHoursWorked: TotalActualHours(tasks),
	}
}
