package converters

import (
	"database/sql"

	"github.com/lmarin/obra/internal/models"
)

// TimeEntryRow mirrors a row of the time_entries table
type TimeEntryRow struct {
	ID          int64
	TaskID      int64
	StartTime   sql.NullString
	EndTime     sql.NullString
	HoursWorked sql.NullFloat64
	Description sql.NullString
	Date        sql.NullString
	CreatedAt   sql.NullTime
}

// TimeEntryToModel converts a time_entries row to the domain model.
// Manual entries have NULL start/end timestamps, which map to zero times.
func TimeEntryToModel(r TimeEntryRow) *models.TimeEntry {
	return &models.TimeEntry{
		ID:          int(r.ID),
		TaskID:      int(r.TaskID),
		StartTime:   parseTimestamp(r.StartTime),
		EndTime:     parseTimestamp(r.EndTime),
		Hours:       nonNegative(r.HoursWorked),
		Description: nullString(r.Description),
		Date:        parseDate(r.Date),
		CreatedAt:   nullTime(r.CreatedAt),
	}
}
