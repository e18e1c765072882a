package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required,max=255"`
	Description *string    `json:"description,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	Priority    *int       `json:"priority,omitempty" validate:"omitempty,min=0,max=2"`
	Reminders   []int64    `json:"reminders,omitempty" validate:"omitempty,dive,min=0"`
}

// UpdateTaskRequest is a partial patch; nil fields are left untouched.
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	Priority    *int       `json:"priority,omitempty" validate:"omitempty,min=0,max=2"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=pending completed"`
	Reminders   *[]int64   `json:"reminders,omitempty" validate:"omitempty,dive,min=0"`
}

type TaskFilter struct {
	Status   string `json:"status" validate:"omitempty,oneof=pending completed"`
	Priority *int   `json:"priority" validate:"omitempty,min=0,max=2"`
}

type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	Priority    int        `json:"priority"`
	Status      string     `json:"status"`
	Reminders   []int64    `json:"reminders"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type DeleteTaskResponse struct {
	ID uuid.UUID `json:"id"`
}
