// ABOUTME: Task persistence methods for the SQLite store
// ABOUTME: All reads and writes are owner-scoped; wrong-owner and absent are the same ErrNotFound

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// CreateTask inserts a new task row.
func (s *SQLiteStore) CreateTask(ctx context.Context, task *Task) error {
	query := `
		INSERT INTO tasks (id, user_id, title, due_date, completed, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		formatDueDate(task.DueDate),
		task.Completed,
		task.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}

	s.logger.Info("created task", "id", task.ID, "user_id", task.UserID)
	return nil
}

// ListTasks returns all tasks owned by the given user, newest first.
func (s *SQLiteStore) ListTasks(ctx context.Context, userID string) ([]*Task, error) {
	query := `
		SELECT id, user_id, title, due_date, completed, created_at
		FROM tasks
		WHERE user_id = ?
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}

	return tasks, nil
}

// GetTask retrieves a task by id, scoped to its owner. Returns ErrNotFound
// when the task is absent or owned by a different user.
func (s *SQLiteStore) GetTask(ctx context.Context, id, userID string) (*Task, error) {
	query := `
		SELECT id, user_id, title, due_date, completed, created_at
		FROM tasks
		WHERE id = ? AND user_id = ?
	`

	row := s.db.QueryRowContext(ctx, query, id, userID)
	task, err := scanTask(row)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask applies a partial update to an owner-scoped task and returns
// the updated row. Returns ErrNotFound when nothing matched.
func (s *SQLiteStore) UpdateTask(ctx context.Context, id, userID string, update TaskUpdate) (*Task, error) {
	var sets []string
	var args []any

	if update.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *update.Title)
	}
	if update.ClearDue {
		sets = append(sets, "due_date = NULL")
	} else if update.DueDate != nil {
		sets = append(sets, "due_date = ?")
		args = append(args, update.DueDate.UTC().Format(time.RFC3339))
	}
	if update.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, *update.Completed)
	}

	if len(sets) == 0 {
		// Nothing to change; still verify ownership
		return s.GetTask(ctx, id, userID)
	}

	query := fmt.Sprintf(`UPDATE tasks SET %s WHERE id = ? AND user_id = ?`, strings.Join(sets, ", "))
	args = append(args, id, userID)

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return s.GetTask(ctx, id, userID)
}

// DeleteTask removes an owner-scoped task. Returns ErrNotFound when nothing matched.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id, userID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	s.logger.Info("deleted task", "id", id, "user_id", userID)
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for task scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*Task, error) {
	var task Task
	var dueDateStr sql.NullString
	var createdAtStr string

	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&dueDateStr,
		&task.Completed,
		&createdAtStr,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	if dueDateStr.Valid && dueDateStr.String != "" {
		due, err := time.Parse(time.RFC3339, dueDateStr.String)
		if err != nil {
			return nil, fmt.Errorf("parsing due_date: %w", err)
		}
		task.DueDate = &due
	}

	task.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &task, nil
}

func formatDueDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
