package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lmarin/obra/internal/converters"
	"github.com/lmarin/obra/internal/models"
)

// TaskRepo handles task and time entry persistence
type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

const taskColumns = `t.id, t.project_id, t.title, t.description, t.status, t.priority,
	t.responsible, t.deadline, t.estimated_hours, t.actual_hours, t.created_at, t.updated_at`

// taskListQuery pulls tasks with their tags concatenated in one round trip.
// CHAR(31) separates concatenated fields since it cannot occur in tag names.
const taskListQuery = `
	SELECT ` + taskColumns + `,
		COALESCE(GROUP_CONCAT(g.id, CHAR(31)), '')    as tag_ids,
		COALESCE(GROUP_CONCAT(g.name, CHAR(31)), '')  as tag_names,
		COALESCE(GROUP_CONCAT(g.color, CHAR(31)), '') as tag_colors
	FROM tasks t
	LEFT JOIN task_tags tt ON tt.task_id = t.id
	LEFT JOIN tags g ON g.id = tt.tag_id`

func scanTaskWithTags(rows *sql.Rows) (*models.Task, error) {
	var r converters.TaskRow
	var tagIDs, tagNames, tagColors string
	err := rows.Scan(
		&r.ID, &r.ProjectID, &r.Title, &r.Description, &r.Status, &r.Priority,
		&r.Responsible, &r.Deadline, &r.EstimatedHours, &r.ActualHours,
		&r.CreatedAt, &r.UpdatedAt,
		&tagIDs, &tagNames, &tagColors,
	)
	if err != nil {
		return nil, err
	}
	task := converters.TaskToModel(r)
	task.Tags = converters.ParseTagsFromConcatenated(tagIDs, tagNames, tagColors)
	return task, nil
}

func (r *TaskRepo) Create(ctx context.Context, t *models.Task) (*models.Task, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (project_id, title, description, status, priority,
			responsible, deadline, estimated_hours, actual_hours)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ProjectID, t.Title, t.Description, string(t.Status), string(t.Priority),
		t.Assignee, converters.FormatDate(t.DueDate),
		t.EstimatedHours, t.ActualHours,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get task id: %w", err)
	}
	return r.GetByID(ctx, int(id))
}

func (r *TaskRepo) GetByID(ctx context.Context, id int) (*models.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		taskListQuery+` WHERE t.id = ? GROUP BY t.id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to get task: %w", err)
		}
		return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	task, err := scanTaskWithTags(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan task: %w", err)
	}
	return task, nil
}

func (r *TaskRepo) ListByProject(ctx context.Context, projectID int) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		taskListQuery+` WHERE t.project_id = ? GROUP BY t.id ORDER BY t.created_at DESC, t.id DESC`,
		projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*models.Task{}
	for rows.Next() {
		t, err := scanTaskWithTags(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepo) Update(ctx context.Context, t *models.Task) (*models.Task, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, status = ?, priority = ?, responsible = ?,
		    deadline = ?, estimated_hours = ?, actual_hours = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		t.Title, t.Description, string(t.Status), string(t.Priority), t.Assignee,
		converters.FormatDate(t.DueDate), t.EstimatedHours, t.ActualHours, t.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if err := rowsAffected(res, "task", t.ID); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, t.ID)
}

func (r *TaskRepo) UpdateStatus(ctx context.Context, id int, status models.TaskStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}
	return rowsAffected(res, "task", id)
}

func (r *TaskRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return rowsAffected(res, "task", id)
}

// CommitTime records a time entry and folds its hours into the task's
// actual_hours in one transaction, so the ledger and the total can never
// disagree. Returns the task's new actual hours total.
func (r *TaskRepo) CommitTime(ctx context.Context, taskID int, entry models.TimeEntry) (float64, error) {
	var total float64
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE tasks
			SET actual_hours = actual_hours + ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?`,
			entry.Hours, taskID)
		if err != nil {
			return fmt.Errorf("failed to add task hours: %w", err)
		}
		if err := rowsAffected(res, "task", taskID); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO time_entries (task_id, start_time, end_time, hours_worked, description, date)
			VALUES (?, ?, ?, ?, ?, ?)`,
			taskID,
			converters.FormatTimestamp(entry.StartTime),
			converters.FormatTimestamp(entry.EndTime),
			entry.Hours, entry.Description,
			converters.FormatDate(entry.Date),
		)
		if err != nil {
			return fmt.Errorf("failed to record time entry: %w", err)
		}

		row := tx.QueryRowContext(ctx, `SELECT actual_hours FROM tasks WHERE id = ?`, taskID)
		if err := row.Scan(&total); err != nil {
			return fmt.Errorf("failed to read task hours: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *TaskRepo) GetTimeEntries(ctx context.Context, taskID int) ([]*models.TimeEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, task_id, start_time, end_time, hours_worked, description, date, created_at
		FROM time_entries WHERE task_id = ?
		ORDER BY created_at DESC, id DESC`,
		taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	defer rows.Close()

	entries := []*models.TimeEntry{}
	for rows.Next() {
		var e converters.TimeEntryRow
		err := rows.Scan(
			&e.ID, &e.TaskID, &e.StartTime, &e.EndTime,
			&e.HoursWorked, &e.Description, &e.Date, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, converters.TimeEntryToModel(e))
	}
	return entries, rows.Err()
}
