package repository

import (
	"agenda-api/core/database"
	"agenda-api/core/logger"
	"agenda-api/modules/task/entity"
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type TaskRepositoryInterface interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Task, error)
	GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*entity.Task, error)
	Create(ctx context.Context, task *entity.Task) (*entity.Task, error)
	Update(ctx context.Context, task *entity.Task) (*entity.Task, error)
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}

type TaskRepository struct {
	db database.Database
}

func NewTaskRepository(db database.Database) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, user_id, title, description, due_at, priority, status, reminders, created_at, updated_at`

func (r *TaskRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 ORDER BY created_at DESC`

	tasks := []entity.Task{}
	if err := r.db.SelectContext(ctx, &tasks, query, userID); err != nil {
		logger.Error("TaskRepository:ListByUser", "error", err)
		return nil, err
	}
	return tasks, nil
}

// GetByID returns nil, nil when the task does not exist or belongs to someone else.
func (r *TaskRepository) GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND user_id = $2`

	var task entity.Task
	if err := r.db.GetContext(ctx, &task, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("TaskRepository:GetByID", "error", err)
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	query := `
		INSERT INTO tasks (user_id, title, description, due_at, priority, status, reminders)
		VALUES (:user_id, :title, :description, :due_at, :priority, :status, :reminders)
		RETURNING ` + taskColumns

	rows, err := r.db.NamedQueryContext(ctx, query, task)
	if err != nil {
		logger.Error("TaskRepository:Create", "error", err)
		return nil, err
	}
	defer rows.Close()

	var created entity.Task
	if rows.Next() {
		if err := rows.StructScan(&created); err != nil {
			logger.Error("TaskRepository:Create:Scan", "error", err)
			return nil, err
		}
		return &created, nil
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return nil, sql.ErrNoRows
}

// Update writes every mutable column and returns nil, nil when no owned row matched.
func (r *TaskRepository) Update(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	query := `
		UPDATE tasks
		SET title = :title, description = :description, due_at = :due_at, priority = :priority,
			status = :status, reminders = :reminders, updated_at = NOW()
		WHERE id = :id AND user_id = :user_id
		RETURNING ` + taskColumns

	rows, err := r.db.NamedQueryContext(ctx, query, task)
	if err != nil {
		logger.Error("TaskRepository:Update", "error", err)
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	var updated entity.Task
	if err := rows.StructScan(&updated); err != nil {
		logger.Error("TaskRepository:Update:Scan", "error", err)
		return nil, err
	}
	return &updated, nil
}

func (r *TaskRepository) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`
	if err := r.db.ExecContext(ctx, query, id, userID); err != nil {
		logger.Error("TaskRepository:Delete", "error", err)
		return err
	}
	return nil
}
