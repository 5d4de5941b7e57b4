package converters

import (
	"database/sql"

	"github.com/lmarin/obra/internal/models"
)

// RequirementRow mirrors a row of the requirements table
type RequirementRow struct {
	ID          int64
	ProjectID   int64
	Title       string
	Description sql.NullString
	Type        sql.NullString
	Status      sql.NullString
	Priority    sql.NullString
	Deadline    sql.NullString
	CreatedAt   sql.NullTime
	UpdatedAt   sql.NullTime
}

// RequirementToModel converts a requirements row to the domain model with
// unknown enum values coerced to defaults (functional, pending, medium)
func RequirementToModel(r RequirementRow) *models.Requirement {
	reqType := models.RequirementType(nullString(r.Type))
	if !reqType.Valid() {
		reqType = models.RequirementTypeFunctional
	}
	status := models.RequirementStatus(nullString(r.Status))
	if !status.Valid() {
		status = models.RequirementStatusPending
	}
	priority := models.RequirementPriority(nullString(r.Priority))
	if !priority.Valid() {
		priority = models.RequirementPriorityMedium
	}

	return &models.Requirement{
		ID:          int(r.ID),
		ProjectID:   int(r.ProjectID),
		Title:       r.Title,
		Description: nullString(r.Description),
		Type:        reqType,
		Status:      status,
		Priority:    priority,
		DueDate:     parseDate(r.Deadline),
		CreatedAt:   nullTime(r.CreatedAt),
		UpdatedAt:   nullTime(r.UpdatedAt),
	}
}
