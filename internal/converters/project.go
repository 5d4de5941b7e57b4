package converters

import (
	"database/sql"

	"github.com/lmarin/obra/internal/models"
)

// ProjectRow mirrors a row of the projects table
type ProjectRow struct {
	ID          int64
	Name        string
	Description sql.NullString
	Status      sql.NullString
	StartDate   sql.NullString
	EndDate     sql.NullString
	Budget      sql.NullFloat64
	CreatedAt   sql.NullTime
	UpdatedAt   sql.NullTime
}

// ProjectToModel converts a projects row to the domain model.
// An unknown status coerces to To-do; a NULL or negative budget to 0.
func ProjectToModel(r ProjectRow) *models.Project {
	status := models.ProjectStatus(nullString(r.Status))
	if !status.Valid() {
		status = models.ProjectStatusTodo
	}

	return &models.Project{
		ID:          int(r.ID),
		Name:        r.Name,
		Description: nullString(r.Description),
		Status:      status,
		StartDate:   parseDate(r.StartDate),
		EndDate:     parseDate(r.EndDate),
		Budget:      nonNegative(r.Budget),
		CreatedAt:   nullTime(r.CreatedAt),
		UpdatedAt:   nullTime(r.UpdatedAt),
	}
}
