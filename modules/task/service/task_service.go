package service

import (
	"agenda-api/core/cache"
	"agenda-api/core/constants"
	"agenda-api/core/errors"
	"agenda-api/core/logger"
	"agenda-api/core/session"
	"agenda-api/core/validator"
	"agenda-api/modules/task/dto"
	"agenda-api/modules/task/entity"
	"agenda-api/modules/task/mapper"
	"agenda-api/modules/task/repository"
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ReminderScheduler queues deadline reminders for a task.
type ReminderScheduler interface {
	Schedule(ctx context.Context, task entity.Task) error
}

type TaskService struct {
	repo      repository.TaskRepositoryInterface
	cache     cache.Cache
	listTTL   time.Duration
	reminders ReminderScheduler
}

func NewTaskService(repo repository.TaskRepositoryInterface, c cache.Cache, listTTL time.Duration, reminders ReminderScheduler) *TaskService {
	return &TaskService{
		repo:      repo,
		cache:     c,
		listTTL:   listTTL,
		reminders: reminders,
	}
}

func (s *TaskService) load(ctx context.Context, userID uuid.UUID) ([]entity.Task, *errors.AppError) {
	key := cache.Key(constants.CacheEntityTasks, userID, "all")
	tags := []string{cache.Tag(constants.CacheEntityTasks, userID)}

	tasks, err := cache.Remember(ctx, s.cache, key, s.listTTL, tags, func(ctx context.Context) ([]entity.Task, error) {
		return s.repo.ListByUser(ctx, userID)
	})
	if err != nil {
		return nil, errors.Remote("failed to list tasks", err)
	}
	return tasks, nil
}

func (s *TaskService) invalidate(ctx context.Context, userID uuid.UUID) {
	cache.Invalidate(ctx, s.cache, cache.Tag(constants.CacheEntityTasks, userID))
}

func (s *TaskService) schedule(ctx context.Context, task *entity.Task) {
	if s.reminders == nil || task.DueAt == nil || len(task.Reminders) == 0 {
		return
	}
	if err := s.reminders.Schedule(ctx, *task); err != nil {
		logger.Warn("TaskService:ScheduleReminders", "task_id", task.ID, "error", err)
	}
}

// List returns the caller's tasks newest first, optionally narrowed by status and priority.
func (s *TaskService) List(ctx context.Context, identity session.Identity, filter dto.TaskFilter) ([]dto.TaskResponse, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return nil, appErr
	}
	if appErr := validator.Struct(filter); appErr != nil {
		return nil, appErr
	}

	tasks, appErr := s.load(ctx, identity.UserID)
	if appErr != nil {
		return nil, appErr
	}

	if filter.Status != "" {
		tasks = FilterByStatus(tasks, entity.TaskStatus(filter.Status))
	}
	if filter.Priority != nil {
		tasks = FilterByPriority(tasks, entity.Priority(*filter.Priority))
	}

	return mapper.ToTaskResponses(tasks), nil
}

func (s *TaskService) Get(ctx context.Context, identity session.Identity, id uuid.UUID) (*dto.TaskResponse, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return nil, appErr
	}

	task, err := s.repo.GetByID(ctx, identity.UserID, id)
	if err != nil {
		return nil, errors.Remote("failed to get task", err)
	}
	if task == nil {
		return nil, errors.NotFound("task")
	}
	return mapper.ToTaskResponse(task), nil
}

func (s *TaskService) Create(ctx context.Context, identity session.Identity, req *dto.CreateTaskRequest) (*dto.TaskResponse, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return nil, appErr
	}
	if appErr := validator.Struct(req); appErr != nil {
		return nil, appErr
	}

	task := &entity.Task{
		UserID:      identity.UserID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		DueAt:       req.DueAt,
		Priority:    entity.PriorityMedium,
		Status:      entity.TaskStatusPending,
		Reminders:   pq.Int64Array(req.Reminders),
	}
	if req.Priority != nil {
		task.Priority = entity.Priority(*req.Priority)
	}
	if task.Reminders == nil {
		task.Reminders = pq.Int64Array{}
	}
	if task.Title == "" {
		return nil, errors.Validation("title is required")
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		return nil, errors.Remote("failed to create task", err)
	}

	s.invalidate(ctx, identity.UserID)
	s.schedule(ctx, created)

	return mapper.ToTaskResponse(created), nil
}

// Update applies the non-nil fields of req and leaves the rest unchanged.
func (s *TaskService) Update(ctx context.Context, identity session.Identity, id uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return nil, appErr
	}
	if appErr := validator.Struct(req); appErr != nil {
		return nil, appErr
	}

	task, err := s.repo.GetByID(ctx, identity.UserID, id)
	if err != nil {
		return nil, errors.Remote("failed to get task", err)
	}
	if task == nil {
		return nil, errors.NotFound("task")
	}

	rescheduled := false
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, errors.Validation("title is required")
		}
		task.Title = title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.DueAt != nil {
		task.DueAt = req.DueAt
		rescheduled = true
	}
	if req.Priority != nil {
		task.Priority = entity.Priority(*req.Priority)
	}
	if req.Status != nil {
		task.Status = entity.TaskStatus(*req.Status)
	}
	if req.Reminders != nil {
		task.Reminders = pq.Int64Array(*req.Reminders)
		if task.Reminders == nil {
			task.Reminders = pq.Int64Array{}
		}
		rescheduled = true
	}

	return s.save(ctx, identity, task, rescheduled)
}

// ToggleStatus flips a task between pending and completed.
func (s *TaskService) ToggleStatus(ctx context.Context, identity session.Identity, id uuid.UUID) (*dto.TaskResponse, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return nil, appErr
	}

	task, err := s.repo.GetByID(ctx, identity.UserID, id)
	if err != nil {
		return nil, errors.Remote("failed to get task", err)
	}
	if task == nil {
		return nil, errors.NotFound("task")
	}

	if task.Status == entity.TaskStatusCompleted {
		task.Status = entity.TaskStatusPending
	} else {
		task.Status = entity.TaskStatusCompleted
	}

	return s.save(ctx, identity, task, task.Status == entity.TaskStatusPending)
}

func (s *TaskService) save(ctx context.Context, identity session.Identity, task *entity.Task, reschedule bool) (*dto.TaskResponse, *errors.AppError) {
	updated, err := s.repo.Update(ctx, task)
	if err != nil {
		return nil, errors.Remote("failed to update task", err)
	}
	if updated == nil {
		return nil, errors.NotFound("task")
	}

	s.invalidate(ctx, identity.UserID)
	if reschedule && updated.Status == entity.TaskStatusPending {
		s.schedule(ctx, updated)
	}

	return mapper.ToTaskResponse(updated), nil
}

// Delete removes the task. Deleting an id that is already gone succeeds.
func (s *TaskService) Delete(ctx context.Context, identity session.Identity, id uuid.UUID) (uuid.UUID, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return uuid.Nil, appErr
	}

	if err := s.repo.Delete(ctx, identity.UserID, id); err != nil {
		return uuid.Nil, errors.Remote("failed to delete task", err)
	}

	s.invalidate(ctx, identity.UserID)
	return id, nil
}
