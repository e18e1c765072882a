package entity

import (
	"agenda-api/core/entity"
	"database/sql/driver"
	"encoding/json"
	"errors"
)

type User struct {
	ProviderSubject      string               `db:"provider_subject" json:"-"`
	Name                 string               `db:"name" json:"name"`
	Email                string               `db:"email" json:"email"`
	Timezone             string               `db:"timezone" json:"timezone"`
	NotificationSettings NotificationSettings `db:"notification_settings" json:"notification_settings"`
	CalendarPreferences  CalendarPreferences  `db:"calendar_preferences" json:"calendar_preferences"`
	entity.BaseEntity
}

type NotificationSettings struct {
	EmailReminders    bool `json:"email_reminders"`
	PushNotifications bool `json:"push_notifications"`
	MeetingRequests   bool `json:"meeting_requests"`
	TaskDeadlines     bool `json:"task_deadlines"`
}

type WorkingHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type CalendarPreferences struct {
	DefaultView  string       `json:"default_view"`
	WorkingHours WorkingHours `json:"working_hours"`
	WeekStart    string       `json:"week_start"`
}

func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		EmailReminders:    true,
		PushNotifications: false,
		MeetingRequests:   true,
		TaskDeadlines:     true,
	}
}

func DefaultCalendarPreferences() CalendarPreferences {
	return CalendarPreferences{
		DefaultView:  "week",
		WorkingHours: WorkingHours{Start: "09:00", End: "17:00"},
		WeekStart:    "monday",
	}
}

func (n NotificationSettings) Value() (driver.Value, error) {
	return json.Marshal(n)
}

func (n *NotificationSettings) Scan(value any) error {
	return scanJSON(value, n)
}

func (c CalendarPreferences) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *CalendarPreferences) Scan(value any) error {
	return scanJSON(value, c)
}

func scanJSON(value any, dest any) error {
	if value == nil {
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, dest)
}
