package models

import "time"

// Project is the top-level organizational unit. Tasks, expenses and
// requirements all belong to exactly one project.
type Project struct {
	ID          int
	Name        string
	Description string
	Status      ProjectStatus
	StartDate   time.Time // zero value means not set
	EndDate     time.Time // zero value means not set
	Budget      float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProjectSummary carries the derived figures for a project. It is computed
// from the project's tasks and expenses on each load and never persisted.
type ProjectSummary struct {
	Progress         int // 0-100, completed tasks over total tasks
	Spent            float64
	RemainingBudget  float64
	Utilization      float64 // percent of budget consumed by approved expenses
	TotalTasks       int
	CompletedTasks   int
	TotalHoursWorked float64
}
