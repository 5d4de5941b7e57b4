package models

import "time"

// Requirement captures a functional, technical, legal or business
// requirement tracked against a project
type Requirement struct {
	ID          int
	ProjectID   int
	Title       string
	Description string
	Type        RequirementType
	Status      RequirementStatus
	Priority    RequirementPriority
	DueDate     time.Time // zero value means no due date
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
