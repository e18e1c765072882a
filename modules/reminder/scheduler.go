package reminder

import (
	"agenda-api/core/constants"
	"agenda-api/core/logger"
	taskEntity "agenda-api/modules/task/entity"
	"context"
	"errors"
	"sort"
	"time"

	"github.com/hibiken/asynq"
)

// Enqueuer is the part of *asynq.Client the scheduler needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type Scheduler struct {
	client Enqueuer
	now    func() time.Time
}

func NewScheduler(client Enqueuer) *Scheduler {
	return &Scheduler{client: client, now: time.Now}
}

// Plan lists the reminders still ahead of now for a task, earliest first.
func Plan(task taskEntity.Task, now time.Time) []TaskReminderPayload {
	if task.DueAt == nil || task.Status != taskEntity.TaskStatusPending {
		return nil
	}

	seen := make(map[int64]struct{}, len(task.Reminders))
	out := make([]TaskReminderPayload, 0, len(task.Reminders))
	for _, offset := range task.Reminders {
		if offset < 0 {
			continue
		}
		if _, dup := seen[offset]; dup {
			continue
		}
		seen[offset] = struct{}{}

		p := TaskReminderPayload{
			TaskID:        task.ID,
			UserID:        task.UserID,
			DueAt:         task.DueAt.UTC(),
			OffsetMinutes: offset,
		}
		if !p.FireAt().After(now) {
			continue
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].FireAt().Before(out[j].FireAt()) })
	return out
}

// Schedule enqueues one delayed job per upcoming reminder offset.
func (s *Scheduler) Schedule(ctx context.Context, task taskEntity.Task) error {
	var errs []error
	for _, p := range Plan(task, s.now()) {
		job, err := NewTaskReminderTask(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		_, err = s.client.EnqueueContext(ctx, job,
			asynq.TaskID(p.JobID()),
			asynq.ProcessAt(p.FireAt()),
			asynq.Queue(constants.QueueDefault),
			asynq.Retention(24*time.Hour),
		)
		if err != nil {
			if errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask) {
				continue
			}
			logger.Error("Reminder:Schedule", "task_id", task.ID, "offset", p.OffsetMinutes, "error", err)
			errs = append(errs, err)
			continue
		}

		logger.Debug("Reminder:Scheduled", "task_id", task.ID, "fire_at", p.FireAt())
	}
	return errors.Join(errs...)
}
