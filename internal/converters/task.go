package converters

import (
	"database/sql"
	"strconv"
	"strings"

	"github.com/lmarin/obra/internal/models"
)

// tagSeparator delimits concatenated tag fields in list queries.
// CHAR(31) is a control character that never appears in tag names.
const tagSeparator = string(rune(31))

// TaskRow mirrors a row of the tasks table
type TaskRow struct {
	ID             int64
	ProjectID      int64
	Title          string
	Description    sql.NullString
	Status         sql.NullString
	Priority       sql.NullString
	Responsible    sql.NullString
	Deadline       sql.NullString
	EstimatedHours sql.NullFloat64
	ActualHours    sql.NullFloat64
	CreatedAt      sql.NullTime
	UpdatedAt      sql.NullTime
}

// TaskToModel converts a tasks row to the domain model. Unknown enum values
// coerce to their defaults (pending, medium); NULL or negative hour figures
// to 0.
func TaskToModel(r TaskRow) *models.Task {
	status := models.TaskStatus(nullString(r.Status))
	if !status.Valid() {
		status = models.TaskStatusPending
	}
	priority := models.TaskPriority(nullString(r.Priority))
	if !priority.Valid() {
		priority = models.TaskPriorityMedium
	}

	return &models.Task{
		ID:             int(r.ID),
		ProjectID:      int(r.ProjectID),
		Title:          r.Title,
		Description:    nullString(r.Description),
		Status:         status,
		Priority:       priority,
		Assignee:       nullString(r.Responsible),
		DueDate:        parseDate(r.Deadline),
		EstimatedHours: nonNegative(r.EstimatedHours),
		ActualHours:    nonNegative(r.ActualHours),
		Tags:           []*models.Tag{},
		CreatedAt:      nullTime(r.CreatedAt),
		UpdatedAt:      nullTime(r.UpdatedAt),
	}
}

// ParseTagsFromConcatenated parses GROUP_CONCAT tag data from list queries:
//
//	GROUP_CONCAT(g.id, CHAR(31))    as tag_ids,
//	GROUP_CONCAT(g.name, CHAR(31))  as tag_names,
//	GROUP_CONCAT(g.color, CHAR(31)) as tag_colors
//
// Returns an empty slice when any input is empty or the field counts
// disagree (a data integrity issue, not a crash).
func ParseTagsFromConcatenated(ids, names, colors string) []*models.Tag {
	if ids == "" || names == "" || colors == "" {
		return []*models.Tag{}
	}

	idParts := strings.Split(ids, tagSeparator)
	nameParts := strings.Split(names, tagSeparator)
	colorParts := strings.Split(colors, tagSeparator)

	if len(idParts) != len(nameParts) || len(idParts) != len(colorParts) {
		return []*models.Tag{}
	}

	tags := make([]*models.Tag, 0, len(idParts))
	for i := range idParts {
		id, err := strconv.Atoi(idParts[i])
		if err != nil {
			continue // skip malformed data
		}
		tags = append(tags, &models.Tag{
			ID:    id,
			Name:  nameParts[i],
			Color: colorParts[i],
		})
	}

	return tags
}
