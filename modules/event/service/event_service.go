package service

import (
	"agenda-api/core/cache"
	"agenda-api/core/constants"
	"agenda-api/core/errors"
	"agenda-api/core/session"
	"agenda-api/core/storage"
	"agenda-api/core/validator"
	"agenda-api/modules/event/dto"
	"agenda-api/modules/event/entity"
	"agenda-api/modules/event/mapper"
	"agenda-api/modules/event/repository"
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type EventService struct {
	repo            repository.EventRepositoryInterface
	cache           cache.Cache
	store           storage.ObjectStore
	listTTL         time.Duration
	presignTTL      time.Duration
	defaultTimezone string
	now             func() time.Time
}

type Options struct {
	ListTTL         time.Duration
	PresignTTL      time.Duration
	DefaultTimezone string
}

// NewEventService builds the service. store may be nil when object storage is not configured.
func NewEventService(repo repository.EventRepositoryInterface, c cache.Cache, store storage.ObjectStore, opts Options) *EventService {
	if opts.PresignTTL <= 0 {
		opts.PresignTTL = 15 * time.Minute
	}
	return &EventService{
		repo:            repo,
		cache:           c,
		store:           store,
		listTTL:         opts.ListTTL,
		presignTTL:      opts.PresignTTL,
		defaultTimezone: opts.DefaultTimezone,
		now:             time.Now,
	}
}

func (s *EventService) load(ctx context.Context, userID uuid.UUID) ([]entity.Event, *errors.AppError) {
	key := cache.Key(constants.CacheEntityEvents, userID, "all")
	tags := []string{cache.Tag(constants.CacheEntityEvents, userID)}

	events, err := cache.Remember(ctx, s.cache, key, s.listTTL, tags, func(ctx context.Context) ([]entity.Event, error) {
		return s.repo.ListByUser(ctx, userID)
	})
	if err != nil {
		return nil, errors.Remote("failed to list events", err)
	}
	return events, nil
}

func (s *EventService) invalidate(ctx context.Context, userID uuid.UUID) {
	cache.Invalidate(ctx, s.cache, cache.Tag(constants.CacheEntityEvents, userID))
}

// List returns the caller's events by start time, narrowed by the filter.
func (s *EventService) List(ctx context.Context, identity session.Identity, filter dto.EventFilter) ([]dto.EventResponse, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return nil, appErr
	}
	if appErr := validator.Struct(filter); appErr != nil {
		return nil, appErr
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, errors.Validation("from must be before to")
	}

	events, appErr := s.load(ctx, identity.UserID)
	if appErr != nil {
		return nil, appErr
	}

	if filter.From != nil || filter.To != nil {
		events = FilterByRange(events, filter.From, filter.To)
	}
	if filter.Type != "" {
		events = FilterByType(events, filter.Type)
	}

	loc := identity.Location(s.defaultTimezone)
	switch filter.Range {
	case dto.RangeToday:
		events = FilterToday(events, s.now(), loc)
	case dto.RangeWeek:
		events = FilterThisWeek(events, s.now(), loc)
	}

	return mapper.ToEventResponses(events), nil
}

func (s *EventService) Today(ctx context.Context, identity session.Identity) ([]dto.EventResponse, *errors.AppError) {
	return s.List(ctx, identity, dto.EventFilter{Range: dto.RangeToday})
}

func (s *EventService) ThisWeek(ctx context.Context, identity session.Identity) ([]dto.EventResponse, *errors.AppError) {
	return s.List(ctx, identity, dto.EventFilter{Range: dto.RangeWeek})
}

func (s *EventService) Get(ctx context.Context, identity session.Identity, id uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return nil, appErr
	}

	event, err := s.repo.GetByID(ctx, identity.UserID, id)
	if err != nil {
		return nil, errors.Remote("failed to get event", err)
	}
	if event == nil {
		return nil, errors.NotFound("event")
	}
	return mapper.ToEventResponse(event), nil
}

func (s *EventService) Create(ctx context.Context, identity session.Identity, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return nil, appErr
	}
	if appErr := validator.Struct(req); appErr != nil {
		return nil, appErr
	}

	event := &entity.Event{
		UserID:      identity.UserID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Location:    req.Location,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		EventType:   req.EventType,
		Attendees:   pq.StringArray(req.Attendees),
	}
	if event.EventType == "" {
		event.EventType = entity.EventTypeDefault
	}
	if event.Attendees == nil {
		event.Attendees = pq.StringArray{}
	}
	if appErr := validateEvent(event); appErr != nil {
		return nil, appErr
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return nil, errors.Remote("failed to create event", err)
	}

	s.invalidate(ctx, identity.UserID)
	return mapper.ToEventResponse(created), nil
}

// Update applies the non-nil fields of req and leaves the rest unchanged.
func (s *EventService) Update(ctx context.Context, identity session.Identity, id uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return nil, appErr
	}
	if appErr := validator.Struct(req); appErr != nil {
		return nil, appErr
	}

	event, err := s.repo.GetByID(ctx, identity.UserID, id)
	if err != nil {
		return nil, errors.Remote("failed to get event", err)
	}
	if event == nil {
		return nil, errors.NotFound("event")
	}

	if req.Title != nil {
		event.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		event.Description = req.Description
	}
	if req.Location != nil {
		event.Location = req.Location
	}
	if req.StartAt != nil {
		event.StartAt = *req.StartAt
	}
	if req.EndAt != nil {
		event.EndAt = *req.EndAt
	}
	if req.EventType != nil {
		event.EventType = *req.EventType
	}
	if req.Attendees != nil {
		event.Attendees = pq.StringArray(*req.Attendees)
		if event.Attendees == nil {
			event.Attendees = pq.StringArray{}
		}
	}
	if appErr := validateEvent(event); appErr != nil {
		return nil, appErr
	}

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return nil, errors.Remote("failed to update event", err)
	}
	if updated == nil {
		return nil, errors.NotFound("event")
	}

	s.invalidate(ctx, identity.UserID)
	return mapper.ToEventResponse(updated), nil
}

// Delete removes the event. Deleting an id that is already gone succeeds.
func (s *EventService) Delete(ctx context.Context, identity session.Identity, id uuid.UUID) (uuid.UUID, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return uuid.Nil, appErr
	}

	if err := s.repo.Delete(ctx, identity.UserID, id); err != nil {
		return uuid.Nil, errors.Remote("failed to delete event", err)
	}

	s.invalidate(ctx, identity.UserID)
	return id, nil
}

func validateEvent(event *entity.Event) *errors.AppError {
	if event.Title == "" {
		return errors.Validation("title is required")
	}
	if !event.EndAt.After(event.StartAt) {
		return errors.Validation("end_at must be after start_at")
	}
	return nil
}
