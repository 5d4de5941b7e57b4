package models

import "time"

// Expense is a single cost item charged against a project's budget.
// Only expenses with StatusApproved count toward spent-budget figures.
type Expense struct {
	ID          int
	ProjectID   int
	Description string
	Amount      float64
	Category    ExpenseCategory
	Status      ExpenseStatus
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Approved reports whether the expense counts toward spent-budget aggregates
func (e *Expense) Approved() bool {
	return e.Status == ExpenseStatusApproved
}
