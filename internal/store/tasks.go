package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

func (s *SQLite) AddTask(title, description, duration string, status Status) (int64, error) {
	if strings.TrimSpace(title) == "" {
		return 0, ErrEmptyTitle
	}
	if !status.Valid() {
		status = StatusTodo
	}

	var maxPos sql.NullInt64
	if err := s.db.QueryRow(`SELECT MAX(position) FROM tasks`).Scan(&maxPos); err != nil {
		return 0, fmt.Errorf("read max position: %w", err)
	}

	now := s.now().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO tasks (title, description, status, estimated_duration, position, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		title, description, status, duration, maxPos.Int64+1, now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (s *SQLite) GetTask(id int64) (*Task, error) {
	row := s.db.QueryRow(
		`SELECT id, title, description, status, estimated_duration, position, created_at, updated_at
		 FROM tasks WHERE id = ?`, id,
	)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return t, nil
}

func (s *SQLite) ListTasks() ([]Task, error) {
	rows, err := s.db.Query(
		`SELECT id, title, description, status, estimated_duration, position, created_at, updated_at
		 FROM tasks ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (s *SQLite) UpdateTask(id int64, upd TaskUpdate) error {
	if upd.Status != nil && !upd.Status.Valid() {
		return ErrInvalidStatus
	}

	var sets []string
	var args []any
	if upd.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *upd.Description)
	}
	if upd.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *upd.Status)
	}
	if upd.EstimatedDuration != nil {
		sets = append(sets, "estimated_duration = ?")
		args = append(args, *upd.EstimatedDuration)
	}
	if upd.Position != nil {
		sets = append(sets, "position = ?")
		args = append(args, *upd.Position)
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, s.now().Format(time.RFC3339), id)

	res, err := s.db.Exec(
		`UPDATE tasks SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...,
	)
	if err != nil {
		return fmt.Errorf("update task %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTask is idempotent: deleting a missing id is a no-op.
func (s *SQLite) DeleteTask(id int64) error {
	_, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	return err
}

// ReorderTasks assigns positions 1..n following the order of ids.
// Unknown ids are skipped.
func (s *SQLite) ReorderTasks(ids []int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin reorder: %w", err)
	}
	defer tx.Rollback()

	for i, id := range ids {
		if _, err := tx.Exec(`UPDATE tasks SET position = ? WHERE id = ?`, i+1, id); err != nil {
			return fmt.Errorf("reorder task %d: %w", id, err)
		}
	}
	return tx.Commit()
}

// SetActiveTask marks the task In Progress and demotes any other
// In Progress task to Todo in the same transaction. Returns false without
// error when the id is unknown or the task is already Done.
func (s *SQLite) SetActiveTask(id int64) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin set active: %w", err)
	}
	defer tx.Rollback()

	var status Status
	err = tx.QueryRow(`SELECT status FROM tasks WHERE id = ?`, id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read task status: %w", err)
	}
	if status == StatusDone {
		return false, nil
	}

	now := s.now().Format(time.RFC3339)
	if _, err := tx.Exec(
		`UPDATE tasks SET status = ?, updated_at = ? WHERE status = ?`,
		StatusTodo, now, StatusInProgress,
	); err != nil {
		return false, fmt.Errorf("demote active tasks: %w", err)
	}
	if _, err := tx.Exec(
		`UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?`,
		StatusInProgress, now, id,
	); err != nil {
		return false, fmt.Errorf("promote task %d: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// ActiveTask returns the In Progress task, tie-breaking by lowest position
// should the single-active invariant ever be violated externally.
func (s *SQLite) ActiveTask() (*Task, error) {
	row := s.db.QueryRow(
		`SELECT id, title, description, status, estimated_duration, position, created_at, updated_at
		 FROM tasks WHERE status = ? ORDER BY position LIMIT 1`, StatusInProgress,
	)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get active task: %w", err)
	}
	return t, nil
}

func (s *SQLite) ClearTasks() error {
	_, err := s.db.Exec(`DELETE FROM tasks`)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*Task, error) {
	t := &Task{}
	var createdAt, updatedAt string
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.EstimatedDuration, &t.Position, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return t, nil
}
