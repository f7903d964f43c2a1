package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/taskr/internal/models"
)

// CreateTask вставляет новую запись задачи и возвращает её ID.
//
// Идентификатор назначается базой данных (SERIAL), коллизии при
// конкурентном создании исключаются на стороне хранилища.
func (s *Storage) CreateTask(ctx context.Context, task models.Task) (int, error) {
	const op = "storage.CreateTask"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO tasks (name, due_date, priority, posted_date, status, user_id)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		task.Name, task.DueDate, task.Priority, task.PostedDate,
		task.Status, task.OwnerID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetTask возвращает задачу по её идентификатору.
func (s *Storage) GetTask(ctx context.Context, id int) (*models.Task, error) {
	const op = "storage.GetTask"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT t.id, t.name, t.due_date, t.priority, t.posted_date,
			      t.status, t.user_id, u.name
			  FROM tasks t
			  JOIN users u ON u.id = t.user_id
			  WHERE t.id = $1`
	task := &models.Task{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&task.ID, &task.Name, &task.DueDate, &task.Priority,
		&task.PostedDate, &task.Status, &task.OwnerID, &task.OwnerName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrTaskNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return task, nil
}

// ListTasks возвращает все задачи, открытые и выполненные,
// упорядоченные по идентификатору по возрастанию.
func (s *Storage) ListTasks(ctx context.Context) ([]*models.Task, error) {
	const op = "storage.ListTasks"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT t.id, t.name, t.due_date, t.priority, t.posted_date,
			      t.status, t.user_id, u.name
			  FROM tasks t
			  JOIN users u ON u.id = t.user_id
			  ORDER BY t.id ASC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Task
	for rows.Next() {
		var task models.Task
		if err = rows.Scan(&task.ID, &task.Name, &task.DueDate, &task.Priority,
			&task.PostedDate, &task.Status, &task.OwnerID, &task.OwnerName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &task)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CompleteTask помечает задачу выполненной и возвращает число обновлённых строк.
func (s *Storage) CompleteTask(ctx context.Context, id int) (int, error) {
	const op = "storage.CompleteTask"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE tasks
			  SET status = $1
			  WHERE id = $2`
	res, err := s.DB.ExecContext(ctx, query, models.StatusComplete, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(count), nil
}

// DeleteTask удаляет задачу и возвращает число удалённых строк.
func (s *Storage) DeleteTask(ctx context.Context, id int) (int, error) {
	const op = "storage.DeleteTask"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM tasks WHERE id = $1`
	res, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(count), nil
}
