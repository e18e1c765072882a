package reminder

import (
	"agenda-api/core/logger"
	authEntity "agenda-api/modules/auth/entity"
	notificationDto "agenda-api/modules/notification/dto"
	notificationEntity "agenda-api/modules/notification/entity"
	taskEntity "agenda-api/modules/task/entity"
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type TaskLookup interface {
	GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*taskEntity.Task, error)
}

type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*authEntity.User, error)
}

type Notifier interface {
	Create(ctx context.Context, req *notificationDto.CreateNotificationRequest) error
}

type Handler struct {
	tasks         TaskLookup
	users         UserLookup
	notifications Notifier
}

func NewHandler(tasks TaskLookup, users UserLookup, notifications Notifier) *Handler {
	return &Handler{tasks: tasks, users: users, notifications: notifications}
}

// HandleTaskReminder delivers a reminder unless the task moved on since it was scheduled.
func (h *Handler) HandleTaskReminder(ctx context.Context, t *asynq.Task) error {
	p, err := ParseTaskReminder(t)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	task, err := h.tasks.GetByID(ctx, p.UserID, p.TaskID)
	if err != nil {
		return err
	}
	if !stillDue(task, p) {
		logger.Debug("Reminder:Skipped", "task_id", p.TaskID, "reason", "task or reminder changed")
		return nil
	}

	user, err := h.users.GetByID(ctx, p.UserID)
	if err != nil {
		return err
	}
	if user == nil || !user.NotificationSettings.TaskDeadlines {
		logger.Debug("Reminder:Skipped", "task_id", p.TaskID, "reason", "task deadlines off")
		return nil
	}

	return h.notifications.Create(ctx, &notificationDto.CreateNotificationRequest{
		UserID:  p.UserID,
		Title:   "Task due soon",
		Message: fmt.Sprintf("%q is due %s", task.Title, describeOffset(p.OffsetMinutes)),
		Type:    notificationEntity.TypeTaskReminder,
		Data: map[string]any{
			"task_id":        p.TaskID.String(),
			"due_at":         p.DueAt,
			"offset_minutes": p.OffsetMinutes,
		},
	})
}

func stillDue(task *taskEntity.Task, p TaskReminderPayload) bool {
	if task == nil || task.Status != taskEntity.TaskStatusPending || task.DueAt == nil {
		return false
	}
	return task.DueAt.Equal(p.DueAt) && slices.Contains(task.Reminders, p.OffsetMinutes)
}

func describeOffset(minutes int64) string {
	switch {
	case minutes == 0:
		return "now"
	case minutes%1440 == 0:
		return fmt.Sprintf("in %d day(s)", minutes/1440)
	case minutes%60 == 0:
		return fmt.Sprintf("in %d hour(s)", minutes/60)
	default:
		return fmt.Sprintf("in %d minute(s)", minutes)
	}
}
