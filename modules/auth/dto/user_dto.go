package dto

import (
	"agenda-api/modules/auth/entity"
	"time"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID                   uuid.UUID                   `json:"id"`
	Name                 string                      `json:"name"`
	Email                string                      `json:"email"`
	Timezone             string                      `json:"timezone"`
	NotificationSettings entity.NotificationSettings `json:"notification_settings"`
	CalendarPreferences  entity.CalendarPreferences  `json:"calendar_preferences"`
	CreatedAt            time.Time                   `json:"created_at"`
}

// UpdateSettingsRequest patches the profile; nil fields are left untouched.
type UpdateSettingsRequest struct {
	Name                 *string                      `json:"name" validate:"omitempty,min=1,max=120"`
	Timezone             *string                      `json:"timezone" validate:"omitempty,timezone"`
	NotificationSettings *entity.NotificationSettings `json:"notification_settings"`
	CalendarPreferences  *CalendarPreferencesRequest  `json:"calendar_preferences"`
}

type CalendarPreferencesRequest struct {
	DefaultView  string              `json:"default_view" validate:"oneof=day week month agenda"`
	WorkingHours WorkingHoursRequest `json:"working_hours"`
	WeekStart    string              `json:"week_start" validate:"oneof=monday sunday"`
}

type WorkingHoursRequest struct {
	Start string `json:"start" validate:"datetime=15:04"`
	End   string `json:"end" validate:"datetime=15:04"`
}

type SessionResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}
