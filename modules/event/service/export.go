package service

import (
	"agenda-api/core/errors"
	"agenda-api/core/session"
	"agenda-api/core/utils"
	"agenda-api/modules/event/dto"
	"agenda-api/modules/event/entity"
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/emersion/go-ical"
	"github.com/gosimple/slug"
)

const (
	calendarProductID  = "-//agenda-api//EN"
	calendarMediaType  = "text/calendar; charset=utf-8"
	defaultCalendarTag = "agenda"
)

type ExportFile struct {
	Filename string
	Content  []byte
}

// ExportFilename derives a download name from the owner's display name.
func ExportFilename(name string) string {
	base := slug.Make(name)
	if base == "" {
		base = defaultCalendarTag
	}
	return base + ".ics"
}

// EncodeCalendar renders events as an iCalendar document.
func EncodeCalendar(events []entity.Event, calendarName string, stamp time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, calendarProductID)
	if calendarName != "" {
		cal.Props.SetText("X-WR-CALNAME", calendarName)
	}

	for i := range events {
		cal.Children = append(cal.Children, toVEvent(&events[i], stamp))
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}

func toVEvent(event *entity.Event, stamp time.Time) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, event.ID.String())
	ve.Props.SetText(ical.PropSummary, event.Title)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, event.StartAt.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeEnd, event.EndAt.UTC())
	ve.Props.SetText(ical.PropCategories, event.EventType)

	if event.Description != nil && *event.Description != "" {
		ve.Props.SetText(ical.PropDescription, *event.Description)
	}
	if event.Location != nil && *event.Location != "" {
		ve.Props.SetText(ical.PropLocation, *event.Location)
	}
	for _, attendee := range event.Attendees {
		p := ical.NewProp(ical.PropAttendee)
		p.SetText(fmt.Sprintf("mailto:%s", attendee))
		ve.Props.Add(p)
	}
	return ve
}

// Export renders the caller's events as a downloadable iCalendar file.
func (s *EventService) Export(ctx context.Context, identity session.Identity) (*ExportFile, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return nil, appErr
	}

	events, appErr := s.load(ctx, identity.UserID)
	if appErr != nil {
		return nil, appErr
	}

	content, err := EncodeCalendar(events, identity.Name, s.now())
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to export calendar", err)
	}

	return &ExportFile{Filename: ExportFilename(identity.Name), Content: content}, nil
}

// Publish uploads the export to object storage and returns a time-limited link.
func (s *EventService) Publish(ctx context.Context, identity session.Identity) (*dto.PublishResponse, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return nil, appErr
	}
	if s.store == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "calendar publishing is not configured", nil)
	}

	file, appErr := s.Export(ctx, identity)
	if appErr != nil {
		return nil, appErr
	}

	key := path.Join("exports", identity.UserID.String(), utils.GenerateID()+"-"+file.Filename)
	if err := s.store.Put(ctx, key, calendarMediaType, file.Content); err != nil {
		return nil, errors.Remote("failed to upload calendar", err)
	}

	url, err := s.store.PresignGet(ctx, key, s.presignTTL)
	if err != nil {
		return nil, errors.Remote("failed to sign calendar link", err)
	}

	return &dto.PublishResponse{
		URL:       url,
		Key:       key,
		ExpiresAt: s.now().Add(s.presignTTL),
	}, nil
}

func CalendarMediaType() string {
	return calendarMediaType
}
