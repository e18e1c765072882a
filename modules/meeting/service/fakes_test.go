package service

import (
	"agenda-api/core/cache"
	authEntity "agenda-api/modules/auth/entity"
	eventEntity "agenda-api/modules/event/entity"
	"agenda-api/modules/meeting/entity"
	"agenda-api/modules/meeting/repository"
	notificationDto "agenda-api/modules/notification/dto"
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
)

var errStoreDown = errors.New("connection refused")

// fakeMeetingRepo keeps requests and their events in memory. failEventInsert makes
// Accept fail after the status update, which must leave the request untouched.
type fakeMeetingRepo struct {
	mu              sync.Mutex
	requests        map[uuid.UUID]entity.MeetingRequest
	events          map[uuid.UUID]eventEntity.Event
	clock           time.Time
	lists           int
	writes          int
	failAll         bool
	failEventInsert bool
}

func newFakeMeetingRepo() *fakeMeetingRepo {
	return &fakeMeetingRepo{
		requests: make(map[uuid.UUID]entity.MeetingRequest),
		events:   make(map[uuid.UUID]eventEntity.Event),
		clock:    time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func (f *fakeMeetingRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeMeetingRepo) Create(_ context.Context, req *entity.MeetingRequest) (*entity.MeetingRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errStoreDown
	}
	f.writes++
	created := *req
	created.ID = uuid.New()
	created.CreatedAt = f.tick()
	created.UpdatedAt = created.CreatedAt
	f.requests[created.ID] = created
	return &created, nil
}

func (f *fakeMeetingRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.MeetingRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errStoreDown
	}
	r, ok := f.requests[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeMeetingRepo) sorted(keep func(entity.MeetingRequest) bool) []entity.MeetingRequest {
	out := []entity.MeetingRequest{}
	for _, r := range f.requests {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeMeetingRepo) ListByOrganizer(_ context.Context, organizerID uuid.UUID) ([]entity.MeetingRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errStoreDown
	}
	f.lists++
	return f.sorted(func(r entity.MeetingRequest) bool { return r.OrganizerID == organizerID }), nil
}

func (f *fakeMeetingRepo) ListInvited(_ context.Context, email string) ([]entity.MeetingRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	return f.sorted(func(r entity.MeetingRequest) bool { return r.Involves(email) }), nil
}

func (f *fakeMeetingRepo) Update(_ context.Context, req *entity.MeetingRequest) (*entity.MeetingRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.requests[req.ID]
	if !ok || existing.OrganizerID != req.OrganizerID || existing.Status != entity.StatusPending {
		return nil, nil
	}
	f.writes++
	updated := *req
	updated.UpdatedAt = f.tick()
	f.requests[req.ID] = updated
	return &updated, nil
}

func (f *fakeMeetingRepo) Delete(_ context.Context, organizerID uuid.UUID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if r, ok := f.requests[id]; ok && r.OrganizerID == organizerID {
		delete(f.requests, id)
	}
	return nil
}

func (f *fakeMeetingRepo) insertEventLocked(event *eventEntity.Event) *eventEntity.Event {
	created := *event
	created.ID = uuid.New()
	created.CreatedAt = f.tick()
	created.UpdatedAt = created.CreatedAt
	f.events[created.ID] = created
	return &created
}

func (f *fakeMeetingRepo) Accept(_ context.Context, id uuid.UUID, option entity.TimeWindow, at time.Time, event *eventEntity.Event) (*entity.MeetingRequest, *eventEntity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok || r.Status != entity.StatusPending {
		return nil, nil, repository.ErrNotPending
	}
	if f.failEventInsert {
		return nil, nil, errStoreDown
	}
	f.writes++
	r.Status = entity.StatusAccepted
	r.SelectedOption = &option
	r.SelectedAt = &at
	r.UpdatedAt = f.tick()
	f.requests[id] = r
	return &r, f.insertEventLocked(event), nil
}

func (f *fakeMeetingRepo) Decline(_ context.Context, id uuid.UUID, at time.Time) (*entity.MeetingRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok || r.Status != entity.StatusPending {
		return nil, repository.ErrNotPending
	}
	f.writes++
	r.Status = entity.StatusDeclined
	r.SelectedAt = &at
	r.UpdatedAt = f.tick()
	f.requests[id] = r
	return &r, nil
}

func (f *fakeMeetingRepo) FindEvent(_ context.Context, requestID uuid.UUID) (*eventEntity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ev := range f.events {
		if ev.SourceMeetingRequestID != nil && *ev.SourceMeetingRequestID == requestID {
			return &ev, nil
		}
	}
	return nil, nil
}

func (f *fakeMeetingRepo) InsertEvent(_ context.Context, event *eventEntity.Event) (*eventEntity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	return f.insertEventLocked(event), nil
}

func (f *fakeMeetingRepo) eventsFor(requestID uuid.UUID) []eventEntity.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []eventEntity.Event{}
	for _, ev := range f.events {
		if ev.SourceMeetingRequestID != nil && *ev.SourceMeetingRequestID == requestID {
			out = append(out, ev)
		}
	}
	return out
}

type fakeDirectory struct {
	users []authEntity.User
}

func (d *fakeDirectory) GetByID(_ context.Context, id uuid.UUID) (*authEntity.User, error) {
	for _, u := range d.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, nil
}

func (d *fakeDirectory) FindByEmails(_ context.Context, emails []string) ([]authEntity.User, error) {
	out := []authEntity.User{}
	for _, u := range d.users {
		for _, e := range emails {
			if strings.EqualFold(u.Email, e) {
				out = append(out, u)
				break
			}
		}
	}
	return out, nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notificationDto.CreateNotificationRequest
}

func (n *fakeNotifier) Create(_ context.Context, req *notificationDto.CreateNotificationRequest) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, *req)
	return nil
}

type fakeCalendar struct {
	events []eventEntity.Event
}

func (c *fakeCalendar) ListByUser(_ context.Context, userID uuid.UUID) ([]eventEntity.Event, error) {
	out := []eventEntity.Event{}
	for _, ev := range c.events {
		if ev.UserID == userID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func newTestCache(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	cfg := cache.DefaultCacheConfig()
	cfg.Addr = mr.Addr()
	c := cache.NewRedisCache(cfg)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}
