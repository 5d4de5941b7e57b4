package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lmarin/obra/internal/converters"
	"github.com/lmarin/obra/internal/models"
)

// RequirementRepo handles requirement persistence
type RequirementRepo struct {
	db *sql.DB
}

func NewRequirementRepo(db *sql.DB) *RequirementRepo {
	return &RequirementRepo{db: db}
}

const requirementColumns = `id, project_id, title, description, type, status, priority, deadline, created_at, updated_at`

func scanRequirement(row interface{ Scan(...any) error }) (*models.Requirement, error) {
	var r converters.RequirementRow
	err := row.Scan(
		&r.ID, &r.ProjectID, &r.Title, &r.Description,
		&r.Type, &r.Status, &r.Priority, &r.Deadline,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return converters.RequirementToModel(r), nil
}

func (r *RequirementRepo) Create(ctx context.Context, req *models.Requirement) (*models.Requirement, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO requirements (project_id, title, description, type, status, priority, deadline)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		req.ProjectID, req.Title, req.Description,
		string(req.Type), string(req.Status), string(req.Priority),
		converters.FormatDate(req.DueDate),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create requirement: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get requirement id: %w", err)
	}
	return r.GetByID(ctx, int(id))
}

func (r *RequirementRepo) GetByID(ctx context.Context, id int) (*models.Requirement, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+requirementColumns+` FROM requirements WHERE id = ?`, id)

	req, err := scanRequirement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("requirement %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get requirement: %w", err)
	}
	return req, nil
}

func (r *RequirementRepo) ListByProject(ctx context.Context, projectID int) ([]*models.Requirement, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+requirementColumns+` FROM requirements WHERE project_id = ? ORDER BY created_at DESC, id DESC`,
		projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list requirements: %w", err)
	}
	defer rows.Close()

	requirements := []*models.Requirement{}
	for rows.Next() {
		req, err := scanRequirement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan requirement: %w", err)
		}
		requirements = append(requirements, req)
	}
	return requirements, rows.Err()
}

func (r *RequirementRepo) Update(ctx context.Context, req *models.Requirement) (*models.Requirement, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE requirements
		SET title = ?, description = ?, type = ?, status = ?, priority = ?,
		    deadline = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		req.Title, req.Description, string(req.Type), string(req.Status),
		string(req.Priority), converters.FormatDate(req.DueDate), req.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update requirement: %w", err)
	}
	if err := rowsAffected(res, "requirement", req.ID); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, req.ID)
}

func (r *RequirementRepo) UpdateStatus(ctx context.Context, id int, status models.RequirementStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE requirements SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update requirement status: %w", err)
	}
	return rowsAffected(res, "requirement", id)
}

func (r *RequirementRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM requirements WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete requirement: %w", err)
	}
	return rowsAffected(res, "requirement", id)
}
