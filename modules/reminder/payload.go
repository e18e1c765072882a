// Package reminder schedules and delivers task deadline reminders through asynq.
package reminder

import (
	"agenda-api/core/constants"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type TaskReminderPayload struct {
	TaskID        uuid.UUID `json:"task_id"`
	UserID        uuid.UUID `json:"user_id"`
	DueAt         time.Time `json:"due_at"`
	OffsetMinutes int64     `json:"offset_minutes"`
}

// FireAt is the instant the reminder should be delivered.
func (p TaskReminderPayload) FireAt() time.Time {
	return p.DueAt.Add(-time.Duration(p.OffsetMinutes) * time.Minute)
}

// JobID is stable for a task, due time and offset, so re-enqueueing is a no-op.
func (p TaskReminderPayload) JobID() string {
	return fmt.Sprintf("%s:%s:%d:%d", constants.TaskTypeTaskReminder, p.TaskID, p.DueAt.Unix(), p.OffsetMinutes)
}

func NewTaskReminderTask(p TaskReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constants.TaskTypeTaskReminder, data), nil
}

func ParseTaskReminder(t *asynq.Task) (TaskReminderPayload, error) {
	var p TaskReminderPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid %s payload: %w", constants.TaskTypeTaskReminder, err)
	}
	return p, nil
}
