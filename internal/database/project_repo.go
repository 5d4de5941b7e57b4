package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lmarin/obra/internal/converters"
	"github.com/lmarin/obra/internal/models"
)

// ProjectRepo handles all project persistence
type ProjectRepo struct {
	db *sql.DB
}

func NewProjectRepo(db *sql.DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

const projectColumns = `id, name, description, status, start_date, end_date, budget, created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (*models.Project, error) {
	var r converters.ProjectRow
	err := row.Scan(
		&r.ID, &r.Name, &r.Description, &r.Status,
		&r.StartDate, &r.EndDate, &r.Budget,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return converters.ProjectToModel(r), nil
}

func (r *ProjectRepo) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO projects (name, description, status, start_date, end_date, budget)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.Name, p.Description, string(p.Status),
		converters.FormatDate(p.StartDate), converters.FormatDate(p.EndDate),
		p.Budget,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get project id: %w", err)
	}
	return r.GetByID(ctx, int(id))
}

func (r *ProjectRepo) GetByID(ctx context.Context, id int) (*models.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)

	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

func (r *ProjectRepo) List(ctx context.Context) ([]*models.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []*models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepo) Update(ctx context.Context, p *models.Project) (*models.Project, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE projects
		SET name = ?, description = ?, status = ?, start_date = ?, end_date = ?,
		    budget = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		p.Name, p.Description, string(p.Status),
		converters.FormatDate(p.StartDate), converters.FormatDate(p.EndDate),
		p.Budget, p.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	if err := rowsAffected(res, "project", p.ID); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, p.ID)
}

// Delete removes a project; tasks, expenses, requirements and time entries
// under it go with it via ON DELETE CASCADE
func (r *ProjectRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return rowsAffected(res, "project", id)
}
