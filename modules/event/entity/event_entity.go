package entity

import (
	"agenda-api/core/entity"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	EventTypeDefault = "event"
	EventTypeMeeting = "meeting"
)

type Event struct {
	UserID                 uuid.UUID      `db:"user_id" json:"user_id"`
	Title                  string         `db:"title" json:"title"`
	Description            *string        `db:"description" json:"description,omitempty"`
	Location               *string        `db:"location" json:"location,omitempty"`
	StartAt                time.Time      `db:"start_at" json:"start_at"`
	EndAt                  time.Time      `db:"end_at" json:"end_at"`
	EventType              string         `db:"event_type" json:"event_type"`
	Attendees              pq.StringArray `db:"attendees" json:"attendees"`
	SourceMeetingRequestID *uuid.UUID     `db:"source_meeting_request_id" json:"source_meeting_request_id,omitempty"`
	entity.BaseEntity
}
