package service

import (
	"agenda-api/core/errors"
	"agenda-api/core/session"
	"agenda-api/modules/event/dto"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type EventServiceSuite struct {
	suite.Suite
	repo  *fakeEventRepo
	store *fakeStore
	svc   *EventService
	me    session.Identity
	ctx   context.Context
	now   time.Time
}

func (s *EventServiceSuite) SetupTest() {
	c, _ := newTestCache(s.T())
	s.repo = newFakeEventRepo()
	s.store = &fakeStore{}
	s.svc = NewEventService(s.repo, c, s.store, Options{ListTTL: time.Minute, PresignTTL: 10 * time.Minute, DefaultTimezone: "UTC"})
	s.now = time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
	s.svc.now = func() time.Time { return s.now }
	s.me = session.Identity{UserID: uuid.New(), Name: "Ana López", Timezone: "UTC"}
	s.ctx = context.Background()
}

func TestEventServiceSuite(t *testing.T) {
	suite.Run(t, new(EventServiceSuite))
}

func (s *EventServiceSuite) create(title string, start time.Time, d time.Duration) *dto.EventResponse {
	event, appErr := s.svc.Create(s.ctx, s.me, &dto.CreateEventRequest{Title: title, StartAt: start, EndAt: start.Add(d)})
	s.Require().Nil(appErr)
	return event
}

func (s *EventServiceSuite) TestCreate_DefaultsAndOrdersByStart() {
	s.create("later", s.now.Add(2*time.Hour), time.Hour)
	s.create("sooner", s.now.Add(time.Hour), time.Hour)

	events, appErr := s.svc.List(s.ctx, s.me, dto.EventFilter{})
	s.Require().Nil(appErr)
	s.Require().Len(events, 2)
	s.Equal("sooner", events[0].Title)
	s.Equal("event", events[0].EventType)
	s.Equal([]string{}, events[0].Attendees)
}

func (s *EventServiceSuite) TestCreate_RejectsEndBeforeStart() {
	_, appErr := s.svc.Create(s.ctx, s.me, &dto.CreateEventRequest{Title: "bad", StartAt: s.now, EndAt: s.now})
	s.Require().NotNil(appErr)
	s.Equal(errors.KindValidationFailure, appErr.Kind())
	s.Equal(0, s.repo.writes)
}

func (s *EventServiceSuite) TestUpdate_PatchRevalidatesBounds() {
	event := s.create("standup", s.now, 15*time.Minute)

	early := s.now.Add(-time.Hour)
	_, appErr := s.svc.Update(s.ctx, s.me, event.ID, &dto.UpdateEventRequest{EndAt: &early})
	s.Require().NotNil(appErr)
	s.Equal(errors.KindValidationFailure, appErr.Kind())

	loc := "Room 4"
	updated, appErr := s.svc.Update(s.ctx, s.me, event.ID, &dto.UpdateEventRequest{Location: &loc})
	s.Require().Nil(appErr)
	s.Equal("Room 4", *updated.Location)
	s.Equal(event.Title, updated.Title)
	s.True(event.StartAt.Equal(updated.StartAt))
}

func (s *EventServiceSuite) TestUpdate_OtherUsersEventIsNotFound() {
	event := s.create("private", s.now, time.Hour)
	title := "hijacked"

	_, appErr := s.svc.Update(s.ctx, session.Identity{UserID: uuid.New()}, event.ID, &dto.UpdateEventRequest{Title: &title})
	s.Require().NotNil(appErr)
	s.Equal(errors.KindNotFound, appErr.Kind())
}

func (s *EventServiceSuite) TestList_RangeValidation() {
	from, to := s.now, s.now.Add(-time.Hour)
	_, appErr := s.svc.List(s.ctx, s.me, dto.EventFilter{From: &from, To: &to})
	s.Require().NotNil(appErr)
	s.Equal(errors.KindValidationFailure, appErr.Kind())

	_, appErr = s.svc.List(s.ctx, s.me, dto.EventFilter{Range: "month"})
	s.Require().NotNil(appErr)
	s.Equal(errors.KindValidationFailure, appErr.Kind())
}

func (s *EventServiceSuite) TestTodayAndWeek() {
	s.create("today", s.now.Add(time.Hour), time.Hour)
	s.create("friday", s.now.Add(48*time.Hour), time.Hour)
	s.create("next week", s.now.Add(7*24*time.Hour), time.Hour)

	today, appErr := s.svc.Today(s.ctx, s.me)
	s.Require().Nil(appErr)
	s.Len(today, 1)

	week, appErr := s.svc.ThisWeek(s.ctx, s.me)
	s.Require().Nil(appErr)
	s.Len(week, 2)
}

func (s *EventServiceSuite) TestDelete_IsIdempotentAndInvalidates() {
	event := s.create("x", s.now, time.Hour)
	_, _ = s.svc.List(s.ctx, s.me, dto.EventFilter{})

	for range 2 {
		id, appErr := s.svc.Delete(s.ctx, s.me, event.ID)
		s.Require().Nil(appErr)
		s.Equal(event.ID, id)
	}

	events, _ := s.svc.List(s.ctx, s.me, dto.EventFilter{})
	s.Empty(events)
}

func (s *EventServiceSuite) TestUnauthenticated() {
	_, appErr := s.svc.List(s.ctx, session.Identity{}, dto.EventFilter{})
	s.Equal(errors.KindUnauthenticated, appErr.Kind())
	_, appErr = s.svc.Export(s.ctx, session.Identity{})
	s.Equal(errors.KindUnauthenticated, appErr.Kind())
	s.Equal(0, s.repo.lists)
}

func (s *EventServiceSuite) TestExport() {
	s.create("Design review", s.now.Add(time.Hour), time.Hour)

	file, appErr := s.svc.Export(s.ctx, s.me)
	s.Require().Nil(appErr)
	s.Equal("ana-lopez.ics", file.Filename)

	body := string(file.Content)
	s.Contains(body, "BEGIN:VCALENDAR")
	s.Contains(body, "SUMMARY:Design review")
	s.Contains(body, "DTSTART:20250312T130000Z")
	s.Equal(1, strings.Count(body, "BEGIN:VEVENT"))
}

func (s *EventServiceSuite) TestPublish() {
	s.create("Design review", s.now.Add(time.Hour), time.Hour)

	published, appErr := s.svc.Publish(s.ctx, s.me)
	s.Require().Nil(appErr)
	s.True(strings.HasPrefix(published.Key, "exports/"+s.me.UserID.String()+"/"))
	s.True(strings.HasSuffix(published.Key, "-ana-lopez.ics"))
	s.Contains(published.URL, published.Key)
	s.Equal(s.now.Add(10*time.Minute), published.ExpiresAt)
	s.Contains(string(s.store.objects[published.Key]), "Design review")
}

func (s *EventServiceSuite) TestPublish_Failures() {
	s.store.fail = true
	_, appErr := s.svc.Publish(s.ctx, s.me)
	s.Require().NotNil(appErr)
	s.Equal(errors.KindRemoteFailure, appErr.Kind())

	s.svc.store = nil
	_, appErr = s.svc.Publish(s.ctx, s.me)
	s.Require().NotNil(appErr)
	s.Equal(errors.ErrInternalServer, appErr.Code)
}
