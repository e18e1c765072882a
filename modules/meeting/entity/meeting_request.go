package entity

import (
	"agenda-api/core/entity"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDeclined:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusDeclined
}

// TimeWindow is one candidate start/end pair.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Equal compares by instant, ignoring location.
func (w TimeWindow) Equal(o TimeWindow) bool {
	return w.Start.Equal(o.Start) && w.End.Equal(o.End)
}

func (w TimeWindow) Overlaps(o TimeWindow) bool {
	return w.Start.Before(o.End) && w.End.After(o.Start)
}

func (w TimeWindow) UTC() TimeWindow {
	return TimeWindow{Start: w.Start.UTC(), End: w.End.UTC()}
}

func (w TimeWindow) Value() (driver.Value, error) {
	return json.Marshal(w)
}

func (w *TimeWindow) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, w)
}

type TimeWindows []TimeWindow

func (ws TimeWindows) Value() (driver.Value, error) {
	if ws == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(ws)
}

func (ws *TimeWindows) Scan(value any) error {
	if value == nil {
		*ws = TimeWindows{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, ws)
}

// Find returns the candidate equal to w.
func (ws TimeWindows) Find(w TimeWindow) (TimeWindow, bool) {
	for _, candidate := range ws {
		if candidate.Equal(w) {
			return candidate, true
		}
	}
	return TimeWindow{}, false
}

type MeetingRequest struct {
	OrganizerID     uuid.UUID      `db:"organizer_id" json:"organizer_id"`
	Title           string         `db:"title" json:"title"`
	Description     *string        `db:"description" json:"description,omitempty"`
	DurationMinutes int            `db:"duration_minutes" json:"duration_minutes"`
	Status          Status         `db:"status" json:"status"`
	Options         TimeWindows    `db:"options" json:"options"`
	Attendees       pq.StringArray `db:"attendees" json:"attendees"`
	SelectedOption  *TimeWindow    `db:"selected_option" json:"selected_option,omitempty"`
	SelectedAt      *time.Time     `db:"selected_at" json:"selected_at,omitempty"`
	RescheduledFrom *uuid.UUID     `db:"rescheduled_from" json:"rescheduled_from,omitempty"`
	entity.BaseEntity
}

// Involves reports whether email is on the attendee list.
func (m *MeetingRequest) Involves(email string) bool {
	if email == "" {
		return false
	}
	for _, a := range m.Attendees {
		if strings.EqualFold(a, email) {
			return true
		}
	}
	return false
}
