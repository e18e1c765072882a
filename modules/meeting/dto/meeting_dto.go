package dto

import (
	eventDto "agenda-api/modules/event/dto"
	"time"

	"github.com/google/uuid"
)

// ===================== Request DTOs =====================

type TimeWindowDTO struct {
	Start time.Time `json:"start" validate:"required"`
	End   time.Time `json:"end" validate:"required"`
}

// ProposeRequest opens a new meeting request
type ProposeRequest struct {
	Title           string          `json:"title" validate:"required,max=255"`
	Description     *string         `json:"description,omitempty"`
	DurationMinutes int             `json:"duration_minutes" validate:"required,min=1,max=1440"`
	Options         []TimeWindowDTO `json:"options" validate:"required,min=1,max=20,dive"`
	Attendees       []string        `json:"attendees" validate:"omitempty,max=100,dive,email"`
}

// UpdateMeetingRequest patches a pending request; nil fields are left untouched.
type UpdateMeetingRequest struct {
	Title           *string          `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description     *string          `json:"description,omitempty"`
	DurationMinutes *int             `json:"duration_minutes,omitempty" validate:"omitempty,min=1,max=1440"`
	Options         *[]TimeWindowDTO `json:"options,omitempty" validate:"omitempty,min=1,max=20,dive"`
	Attendees       *[]string        `json:"attendees,omitempty" validate:"omitempty,max=100,dive,email"`
}

type AcceptRequest struct {
	Option TimeWindowDTO `json:"option" validate:"required"`
}

// RescheduleRequest opens a follow-up request for a resolved one
type RescheduleRequest struct {
	DurationMinutes *int            `json:"duration_minutes,omitempty" validate:"omitempty,min=1,max=1440"`
	Options         []TimeWindowDTO `json:"options" validate:"required,min=1,max=20,dive"`
}

// SuggestOptionsRequest asks for free windows in the organizer's calendar
type SuggestOptionsRequest struct {
	DurationMinutes int       `json:"duration_minutes" validate:"required,min=15,max=480"`
	From            time.Time `json:"from" validate:"required"`
	To              time.Time `json:"to" validate:"required,gtfield=From"`
	ExcludeWeekends bool      `json:"exclude_weekends"`
	PreferMorning   bool      `json:"prefer_morning"`
	PreferAfternoon bool      `json:"prefer_afternoon"`
	Limit           int       `json:"limit" validate:"omitempty,min=1,max=20"`
}

type MeetingFilter struct {
	Status string `json:"status" validate:"omitempty,oneof=pending accepted declined"`
}

// ===================== Response DTOs =====================

type MeetingRequestResponse struct {
	ID              uuid.UUID       `json:"id"`
	OrganizerID     uuid.UUID       `json:"organizer_id"`
	Title           string          `json:"title"`
	Description     *string         `json:"description,omitempty"`
	DurationMinutes int             `json:"duration_minutes"`
	Status          string          `json:"status"`
	Options         []TimeWindowDTO `json:"options"`
	Attendees       []string        `json:"attendees"`
	SelectedOption  *TimeWindowDTO  `json:"selected_option,omitempty"`
	SelectedAt      *time.Time      `json:"selected_at,omitempty"`
	RescheduledFrom *uuid.UUID      `json:"rescheduled_from,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type AcceptResponse struct {
	Request MeetingRequestResponse  `json:"request"`
	Event   *eventDto.EventResponse `json:"event"`
}

type MeetingStats struct {
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
	Declined int `json:"declined"`
	Total    int `json:"total"`
}

type SuggestedOption struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Score int       `json:"score"`
}

type DeleteMeetingResponse struct {
	ID uuid.UUID `json:"id"`
}
