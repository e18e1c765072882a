package service

import (
	"agenda-api/core/constants"
	"agenda-api/core/errors"
	"agenda-api/core/logger"
	"agenda-api/core/session"
	"agenda-api/core/validator"
	eventDto "agenda-api/modules/event/dto"
	eventEntity "agenda-api/modules/event/entity"
	eventMapper "agenda-api/modules/event/mapper"
	"agenda-api/modules/meeting/dto"
	"agenda-api/modules/meeting/entity"
	"agenda-api/modules/meeting/mapper"
	"agenda-api/modules/meeting/repository"
	"context"
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// eventFor builds the organizer's calendar entry for a resolved option.
func eventFor(req *entity.MeetingRequest, option entity.TimeWindow) *eventEntity.Event {
	id := req.ID
	attendees := make(pq.StringArray, len(req.Attendees))
	copy(attendees, req.Attendees)

	return &eventEntity.Event{
		UserID:                 req.OrganizerID,
		Title:                  req.Title,
		Description:            req.Description,
		StartAt:                option.Start.UTC(),
		EndAt:                  option.End.UTC(),
		EventType:              eventEntity.EventTypeMeeting,
		Attendees:              attendees,
		SourceMeetingRequestID: &id,
	}
}

func alreadyResolved(req *entity.MeetingRequest) *errors.AppError {
	return errors.Validation("meeting request is already " + string(req.Status))
}

// Accept resolves a pending request to one of its options and books the event for the organizer.
func (s *MeetingService) Accept(ctx context.Context, identity session.Identity, id uuid.UUID, req *dto.AcceptRequest) (*dto.AcceptResponse, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return nil, appErr
	}
	if appErr := validator.Struct(req); appErr != nil {
		return nil, appErr
	}

	existing, appErr := s.visible(ctx, identity, id)
	if appErr != nil {
		return nil, appErr
	}
	if existing.Status.Terminal() {
		return nil, alreadyResolved(existing)
	}

	option, ok := existing.Options.Find(mapper.ToTimeWindow(req.Option))
	if !ok {
		return nil, errors.Validation("option is not one of the proposed times")
	}

	accepted, event, err := s.repo.Accept(ctx, existing.ID, option, s.now().UTC(), eventFor(existing, option))
	if err != nil {
		if stderrors.Is(err, repository.ErrNotPending) {
			return nil, errors.Validation("meeting request is no longer pending")
		}
		return nil, errors.Remote("failed to accept meeting request", err)
	}

	s.invalidate(ctx, accepted, s.registeredAttendees(ctx, accepted))
	s.invalidateEvents(ctx, accepted.OrganizerID)

	return &dto.AcceptResponse{
		Request: *mapper.ToMeetingRequestResponse(accepted),
		Event:   eventMapper.ToEventResponse(event),
	}, nil
}

func (s *MeetingService) Decline(ctx context.Context, identity session.Identity, id uuid.UUID) (*dto.MeetingRequestResponse, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return nil, appErr
	}

	existing, appErr := s.visible(ctx, identity, id)
	if appErr != nil {
		return nil, appErr
	}
	if existing.Status.Terminal() {
		return nil, alreadyResolved(existing)
	}

	declined, err := s.repo.Decline(ctx, existing.ID, s.now().UTC())
	if err != nil {
		if stderrors.Is(err, repository.ErrNotPending) {
			return nil, errors.Validation("meeting request is no longer pending")
		}
		return nil, errors.Remote("failed to decline meeting request", err)
	}

	s.invalidate(ctx, declined, s.registeredAttendees(ctx, declined))
	return mapper.ToMeetingRequestResponse(declined), nil
}

// Materialize returns the event of an accepted request, creating it when it is missing.
func (s *MeetingService) Materialize(ctx context.Context, identity session.Identity, id uuid.UUID) (*eventDto.EventResponse, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return nil, appErr
	}

	existing, appErr := s.visible(ctx, identity, id)
	if appErr != nil {
		return nil, appErr
	}
	if existing.Status != entity.StatusAccepted || existing.SelectedOption == nil {
		return nil, errors.Validation("meeting request is not accepted")
	}

	event, err := s.repo.FindEvent(ctx, existing.ID)
	if err != nil {
		return nil, errors.Remote("failed to look up meeting event", err)
	}
	if event != nil {
		return eventMapper.ToEventResponse(event), nil
	}

	event, err = s.repo.InsertEvent(ctx, eventFor(existing, *existing.SelectedOption))
	if err != nil {
		return nil, errors.Remote("failed to create meeting event", err)
	}
	logger.Info("MeetingService:Materialize", "request_id", existing.ID, "event_id", event.ID)

	s.invalidateEvents(ctx, existing.OrganizerID)
	return eventMapper.ToEventResponse(event), nil
}

// Reschedule opens a new pending request for a resolved one. The source keeps its status.
func (s *MeetingService) Reschedule(ctx context.Context, identity session.Identity, id uuid.UUID, req *dto.RescheduleRequest) (*dto.MeetingRequestResponse, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return nil, appErr
	}
	if appErr := validator.Struct(req); appErr != nil {
		return nil, appErr
	}

	source, appErr := s.owned(ctx, identity, id)
	if appErr != nil {
		return nil, appErr
	}
	if !source.Status.Terminal() {
		return nil, errors.Validation("only accepted or declined requests can be rescheduled")
	}

	duration := source.DurationMinutes
	if req.DurationMinutes != nil {
		duration = *req.DurationMinutes
	}
	options := mapper.ToTimeWindows(req.Options)
	if appErr := validateOptions(options, duration); appErr != nil {
		return nil, appErr
	}

	sourceID := source.ID
	created, err := s.repo.Create(ctx, &entity.MeetingRequest{
		OrganizerID:     source.OrganizerID,
		Title:           source.Title,
		Description:     source.Description,
		DurationMinutes: duration,
		Status:          entity.StatusPending,
		Options:         options,
		Attendees:       source.Attendees,
		RescheduledFrom: &sourceID,
	})
	if err != nil {
		return nil, errors.Remote("failed to reschedule meeting request", err)
	}

	users := s.registeredAttendees(ctx, created)
	s.invalidate(ctx, created, users)
	s.notifyInvited(ctx, identity, created, users)

	return mapper.ToMeetingRequestResponse(created), nil
}

// SuggestOptions proposes free windows from the caller's calendar inside their working hours.
func (s *MeetingService) SuggestOptions(ctx context.Context, identity session.Identity, req *dto.SuggestOptionsRequest) ([]dto.SuggestedOption, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return nil, appErr
	}
	if appErr := validator.Struct(req); appErr != nil {
		return nil, appErr
	}
	if req.To.Sub(req.From) > constants.MaxSuggestionWindow {
		return nil, errors.Validation("search range must not exceed 31 days")
	}

	start, end := "", ""
	if s.directory != nil {
		user, err := s.directory.GetByID(ctx, identity.UserID)
		if err != nil {
			return nil, errors.Remote("failed to load calendar preferences", err)
		}
		if user != nil {
			start, end = user.CalendarPreferences.WorkingHours.Start, user.CalendarPreferences.WorkingHours.End
		}
	}

	var busy []entity.TimeWindow
	if s.calendar != nil {
		events, err := s.calendar.ListByUser(ctx, identity.UserID)
		if err != nil {
			return nil, errors.Remote("failed to load calendar", err)
		}
		for _, ev := range events {
			busy = append(busy, entity.TimeWindow{Start: ev.StartAt, End: ev.EndAt})
		}
	}

	finder := NewSlotFinder(start, end, identity.Location(s.defaultTimezone))
	slots := finder.FindAvailableSlots(req.DurationMinutes, req.From, req.To, busy, SlotPreferences{
		ExcludeWeekends: req.ExcludeWeekends,
		PreferMorning:   req.PreferMorning,
		PreferAfternoon: req.PreferAfternoon,
		Limit:           req.Limit,
	}, s.now())

	out := make([]dto.SuggestedOption, 0, len(slots))
	for _, slot := range slots {
		out = append(out, dto.SuggestedOption{Start: slot.Start, End: slot.End, Score: slot.Score})
	}
	return out, nil
}
