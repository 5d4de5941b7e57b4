package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lmarin/obra/internal/models"
)

// TagRepo handles tag persistence and task-tag assignments
type TagRepo struct {
	db *sql.DB
}

func NewTagRepo(db *sql.DB) *TagRepo {
	return &TagRepo{db: db}
}

func (r *TagRepo) Create(ctx context.Context, name, color string) (*models.Tag, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tags (name, color) VALUES (?, ?)`, name, color)
	if err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get tag id: %w", err)
	}
	return &models.Tag{ID: int(id), Name: name, Color: color}, nil
}

func (r *TagRepo) GetByID(ctx context.Context, id int) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, color FROM tags WHERE id = ?`, id).
		Scan(&tag.ID, &tag.Name, &tag.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tag %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return &tag, nil
}

func (r *TagRepo) List(ctx context.Context) ([]*models.Tag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, color FROM tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	tags := []*models.Tag{}
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Color); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, &tag)
	}
	return tags, rows.Err()
}

func (r *TagRepo) Update(ctx context.Context, tag *models.Tag) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tags SET name = ?, color = ? WHERE id = ?`,
		tag.Name, tag.Color, tag.ID)
	if err != nil {
		return fmt.Errorf("failed to update tag: %w", err)
	}
	return rowsAffected(res, "tag", tag.ID)
}

func (r *TagRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return rowsAffected(res, "tag", id)
}

// AddToTask assigns a tag to a task; re-assigning is a no-op
func (r *TagRepo) AddToTask(ctx context.Context, taskID, tagID int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO task_tags (task_id, tag_id) VALUES (?, ?)`,
		taskID, tagID)
	if err != nil {
		return fmt.Errorf("failed to tag task: %w", err)
	}
	return nil
}

func (r *TagRepo) RemoveFromTask(ctx context.Context, taskID, tagID int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM task_tags WHERE task_id = ? AND tag_id = ?`,
		taskID, tagID)
	if err != nil {
		return fmt.Errorf("failed to untag task: %w", err)
	}
	return nil
}
