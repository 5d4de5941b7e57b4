package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lmarin/obra/internal/converters"
	"github.com/lmarin/obra/internal/models"
)

// ExpenseRepo handles expense persistence
type ExpenseRepo struct {
	db *sql.DB
}

func NewExpenseRepo(db *sql.DB) *ExpenseRepo {
	return &ExpenseRepo{db: db}
}

const expenseColumns = `id, project_id, description, amount, category, status, date, created_at, updated_at`

func scanExpense(row interface{ Scan(...any) error }) (*models.Expense, error) {
	var r converters.ExpenseRow
	err := row.Scan(
		&r.ID, &r.ProjectID, &r.Description, &r.Amount,
		&r.Category, &r.Status, &r.Date,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return converters.ExpenseToModel(r), nil
}

func (r *ExpenseRepo) Create(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (project_id, description, amount, category, status, date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ProjectID, e.Description, e.Amount,
		string(e.Category), string(e.Status), converters.FormatDate(e.Date),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get expense id: %w", err)
	}
	return r.GetByID(ctx, int(id))
}

func (r *ExpenseRepo) GetByID(ctx context.Context, id int) (*models.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id)

	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return e, nil
}

func (r *ExpenseRepo) ListByProject(ctx context.Context, projectID int) ([]*models.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE project_id = ? ORDER BY date DESC, id DESC`,
		projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []*models.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *ExpenseRepo) Update(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE expenses
		SET description = ?, amount = ?, category = ?, status = ?, date = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		e.Description, e.Amount, string(e.Category), string(e.Status),
		converters.FormatDate(e.Date), e.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	if err := rowsAffected(res, "expense", e.ID); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, e.ID)
}

func (r *ExpenseRepo) UpdateStatus(ctx context.Context, id int, status models.ExpenseStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE expenses SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update expense status: %w", err)
	}
	return rowsAffected(res, "expense", id)
}

func (r *ExpenseRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return rowsAffected(res, "expense", id)
}
