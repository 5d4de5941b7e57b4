package converters

import (
	"database/sql"

	"github.com/lmarin/obra/internal/models"
)

// ExpenseRow mirrors a row of the expenses table
type ExpenseRow struct {
	ID          int64
	ProjectID   int64
	Description sql.NullString
	Amount      sql.NullFloat64
	Category    sql.NullString
	Status      sql.NullString
	Date        sql.NullString
	CreatedAt   sql.NullTime
	UpdatedAt   sql.NullTime
}

// ExpenseToModel converts an expenses row to the domain model. An unknown
// category coerces to other; an unknown status to pending, so a damaged row
// can never count toward spent-budget figures by accident.
func ExpenseToModel(r ExpenseRow) *models.Expense {
	category := models.ExpenseCategory(nullString(r.Category))
	if !category.Valid() {
		category = models.ExpenseCategoryOther
	}
	status := models.ExpenseStatus(nullString(r.Status))
	if !status.Valid() {
		status = models.ExpenseStatusPending
	}

	return &models.Expense{
		ID:          int(r.ID),
		ProjectID:   int(r.ProjectID),
		Description: nullString(r.Description),
		Amount:      nonNegative(r.Amount),
		Category:    category,
		Status:      status,
		Date:        parseDate(r.Date),
		CreatedAt:   nullTime(r.CreatedAt),
		UpdatedAt:   nullTime(r.UpdatedAt),
	}
}
