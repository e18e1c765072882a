package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required,max=255"`
	Description *string   `json:"description,omitempty"`
	Location    *string   `json:"location,omitempty" validate:"omitempty,max=255"`
	StartAt     time.Time `json:"start_at" validate:"required"`
	EndAt       time.Time `json:"end_at" validate:"required,gtfield=StartAt"`
	EventType   string    `json:"event_type,omitempty" validate:"omitempty,max=50"`
	Attendees   []string  `json:"attendees,omitempty" validate:"omitempty,dive,email"`
}

// UpdateEventRequest is a partial patch; nil fields are left untouched.
type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty" validate:"omitempty,max=255"`
	StartAt     *time.Time `json:"start_at,omitempty"`
	EndAt       *time.Time `json:"end_at,omitempty"`
	EventType   *string    `json:"event_type,omitempty" validate:"omitempty,min=1,max=50"`
	Attendees   *[]string  `json:"attendees,omitempty" validate:"omitempty,dive,email"`
}

const (
	RangeToday = "today"
	RangeWeek  = "week"
)

type EventFilter struct {
	From  *time.Time `json:"from"`
	To    *time.Time `json:"to"`
	Type  string     `json:"type" validate:"omitempty,max=50"`
	Range string     `json:"range" validate:"omitempty,oneof=today week"`
}

type EventResponse struct {
	ID                     uuid.UUID  `json:"id"`
	Title                  string     `json:"title"`
	Description            *string    `json:"description,omitempty"`
	Location               *string    `json:"location,omitempty"`
	StartAt                time.Time  `json:"start_at"`
	EndAt                  time.Time  `json:"end_at"`
	EventType              string     `json:"event_type"`
	Attendees              []string   `json:"attendees"`
	SourceMeetingRequestID *uuid.UUID `json:"source_meeting_request_id,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

type DeleteEventResponse struct {
	ID uuid.UUID `json:"id"`
}

type PublishResponse struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}
