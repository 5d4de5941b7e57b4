package models

import "time"

// Task represents a single unit of work within a project
type Task struct {
	ID             int
	ProjectID      int
	Title          string
	Description    string
	Status         TaskStatus
	Priority       TaskPriority
	Assignee       string
	DueDate        time.Time // zero value means no due date
	EstimatedHours float64
	ActualHours    float64
	Tags           []*Tag
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Completed reports whether the task has reached its terminal status
func (t *Task) Completed() bool {
	return t.Status == TaskStatusCompleted
}
