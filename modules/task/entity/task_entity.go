package entity

import (
	"agenda-api/core/entity"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

type Priority int

const (
	PriorityLow    Priority = 0
	PriorityMedium Priority = 1
	PriorityHigh   Priority = 2
)

type Task struct {
	UserID      uuid.UUID     `db:"user_id" json:"user_id"`
	Title       string        `db:"title" json:"title"`
	Description *string       `db:"description" json:"description,omitempty"`
	DueAt       *time.Time    `db:"due_at" json:"due_at,omitempty"`
	Priority    Priority      `db:"priority" json:"priority"`
	Status      TaskStatus    `db:"status" json:"status"`
	Reminders   pq.Int64Array `db:"reminders" json:"reminders"`
	entity.BaseEntity
}
