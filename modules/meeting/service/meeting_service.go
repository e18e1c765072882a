package service

import (
	"agenda-api/core/cache"
	"agenda-api/core/constants"
	"agenda-api/core/errors"
	"agenda-api/core/logger"
	"agenda-api/core/session"
	"agenda-api/core/validator"
	authEntity "agenda-api/modules/auth/entity"
	eventEntity "agenda-api/modules/event/entity"
	"agenda-api/modules/meeting/dto"
	"agenda-api/modules/meeting/entity"
	"agenda-api/modules/meeting/mapper"
	"agenda-api/modules/meeting/repository"
	notificationDto "agenda-api/modules/notification/dto"
	notificationEntity "agenda-api/modules/notification/entity"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// UserDirectory resolves registered users for attendee emails.
type UserDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*authEntity.User, error)
	FindByEmails(ctx context.Context, emails []string) ([]authEntity.User, error)
}

type Notifier interface {
	Create(ctx context.Context, req *notificationDto.CreateNotificationRequest) error
}

// BusyCalendar lists the events that block a user's time.
type BusyCalendar interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]eventEntity.Event, error)
}

type MeetingService struct {
	repo            repository.MeetingRepositoryInterface
	cache           cache.Cache
	directory       UserDirectory
	notifier        Notifier
	calendar        BusyCalendar
	listTTL         time.Duration
	defaultTimezone string
	now             func() time.Time
}

type Options struct {
	ListTTL         time.Duration
	DefaultTimezone string
}

// NewMeetingService builds the service. directory, notifier and calendar are optional.
func NewMeetingService(repo repository.MeetingRepositoryInterface, c cache.Cache, directory UserDirectory, notifier Notifier, calendar BusyCalendar, opts Options) *MeetingService {
	return &MeetingService{
		repo:            repo,
		cache:           c,
		directory:       directory,
		notifier:        notifier,
		calendar:        calendar,
		listTTL:         opts.ListTTL,
		defaultTimezone: opts.DefaultTimezone,
		now:             time.Now,
	}
}

func (s *MeetingService) loadOrganized(ctx context.Context, userID uuid.UUID) ([]entity.MeetingRequest, *errors.AppError) {
	key := cache.Key(constants.CacheEntityMeetings, userID, "all")
	tags := []string{cache.Tag(constants.CacheEntityMeetings, userID)}

	reqs, err := cache.Remember(ctx, s.cache, key, s.listTTL, tags, func(ctx context.Context) ([]entity.MeetingRequest, error) {
		return s.repo.ListByOrganizer(ctx, userID)
	})
	if err != nil {
		return nil, errors.Remote("failed to list meeting requests", err)
	}
	return reqs, nil
}

func (s *MeetingService) loadInvited(ctx context.Context, identity session.Identity) ([]entity.MeetingRequest, *errors.AppError) {
	email := strings.ToLower(identity.Email)
	key := cache.Key(constants.CacheEntityMeetings, identity.UserID, "invited:"+email)
	tags := []string{cache.Tag(constants.CacheEntityMeetings, identity.UserID)}

	reqs, err := cache.Remember(ctx, s.cache, key, s.listTTL, tags, func(ctx context.Context) ([]entity.MeetingRequest, error) {
		return s.repo.ListInvited(ctx, email)
	})
	if err != nil {
		return nil, errors.Remote("failed to list meeting invitations", err)
	}
	return reqs, nil
}

// registeredAttendees returns the users behind the attendee emails. Lookup failures are logged.
func (s *MeetingService) registeredAttendees(ctx context.Context, req *entity.MeetingRequest) []authEntity.User {
	if s.directory == nil || len(req.Attendees) == 0 {
		return nil
	}
	users, err := s.directory.FindByEmails(ctx, req.Attendees)
	if err != nil {
		logger.Warn("MeetingService:FindAttendees", "request_id", req.ID, "error", err)
		return nil
	}
	return users
}

// invalidate drops the meeting lists of the organizer and every registered attendee.
func (s *MeetingService) invalidate(ctx context.Context, req *entity.MeetingRequest, users []authEntity.User) {
	tags := []string{cache.Tag(constants.CacheEntityMeetings, req.OrganizerID)}
	for _, u := range users {
		if u.ID != req.OrganizerID {
			tags = append(tags, cache.Tag(constants.CacheEntityMeetings, u.ID))
		}
	}
	cache.Invalidate(ctx, s.cache, tags...)
}

func (s *MeetingService) invalidateEvents(ctx context.Context, ownerID uuid.UUID) {
	cache.Invalidate(ctx, s.cache, cache.Tag(constants.CacheEntityEvents, ownerID))
}

// notifyInvited tells registered attendees about a new request. Failures never fail the proposal.
func (s *MeetingService) notifyInvited(ctx context.Context, identity session.Identity, req *entity.MeetingRequest, users []authEntity.User) {
	if s.notifier == nil {
		return
	}

	organizer := identity.Name
	if organizer == "" {
		organizer = identity.Email
	}

	for _, u := range users {
		if u.ID == req.OrganizerID || !u.NotificationSettings.MeetingRequests {
			continue
		}
		title := "New meeting request"
		if req.RescheduledFrom != nil {
			title = "Meeting rescheduled"
		}
		err := s.notifier.Create(ctx, &notificationDto.CreateNotificationRequest{
			UserID:  u.ID,
			Title:   title,
			Message: fmt.Sprintf("%s invited you to %q", organizer, req.Title),
			Type:    notificationEntity.TypeMeetingRequest,
			Data: map[string]any{
				"meeting_request_id": req.ID.String(),
				"organizer_id":       req.OrganizerID.String(),
			},
		})
		if err != nil {
			logger.Warn("MeetingService:Notify", "request_id", req.ID, "user_id", u.ID, "error", err)
		}
	}
}

// validateOptions checks the candidate windows against the requested duration.
func validateOptions(options entity.TimeWindows, durationMinutes int) *errors.AppError {
	if durationMinutes < 1 || durationMinutes > constants.MaxMeetingMinutes {
		return errors.Validation(fmt.Sprintf("duration_minutes must be between 1 and %d", constants.MaxMeetingMinutes))
	}
	if len(options) == 0 {
		return errors.Validation("at least one option is required")
	}

	want := time.Duration(durationMinutes) * time.Minute
	for i, opt := range options {
		if !opt.End.After(opt.Start) {
			return errors.Validation("option end must be after start")
		}
		if opt.Duration() != want {
			return errors.Validation(fmt.Sprintf("each option must last exactly %d minutes", durationMinutes))
		}
		if _, dup := options[:i].Find(opt); dup {
			return errors.Validation("options must be distinct")
		}
	}
	return nil
}

// normalizeAttendees lowercases, trims and de-duplicates emails, dropping the organizer's own.
func normalizeAttendees(emails []string, organizerEmail string) pq.StringArray {
	seen := map[string]bool{strings.ToLower(strings.TrimSpace(organizerEmail)): true}
	out := pq.StringArray{}
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

func (s *MeetingService) Propose(ctx context.Context, identity session.Identity, req *dto.ProposeRequest) (*dto.MeetingRequestResponse, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return nil, appErr
	}
	if appErr := validator.Struct(req); appErr != nil {
		return nil, appErr
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, errors.Validation("title is required")
	}
	options := mapper.ToTimeWindows(req.Options)
	if appErr := validateOptions(options, req.DurationMinutes); appErr != nil {
		return nil, appErr
	}

	created, err := s.repo.Create(ctx, &entity.MeetingRequest{
		OrganizerID:     identity.UserID,
		Title:           title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Status:          entity.StatusPending,
		Options:         options,
		Attendees:       normalizeAttendees(req.Attendees, identity.Email),
	})
	if err != nil {
		return nil, errors.Remote("failed to create meeting request", err)
	}

	users := s.registeredAttendees(ctx, created)
	s.invalidate(ctx, created, users)
	s.notifyInvited(ctx, identity, created, users)

	return mapper.ToMeetingRequestResponse(created), nil
}

// visible loads a request the caller organizes or is invited to. Anyone else sees NotFound.
func (s *MeetingService) visible(ctx context.Context, identity session.Identity, id uuid.UUID) (*entity.MeetingRequest, *errors.AppError) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Remote("failed to get meeting request", err)
	}
	if req == nil || (req.OrganizerID != identity.UserID && !req.Involves(identity.Email)) {
		return nil, errors.NotFound("meeting request")
	}
	return req, nil
}

// owned loads a request the caller organizes. Attendees get Forbidden.
func (s *MeetingService) owned(ctx context.Context, identity session.Identity, id uuid.UUID) (*entity.MeetingRequest, *errors.AppError) {
	req, appErr := s.visible(ctx, identity, id)
	if appErr != nil {
		return nil, appErr
	}
	if req.OrganizerID != identity.UserID {
		return nil, errors.NewAppError(errors.ErrForbidden, "only the organizer can change this meeting request", nil)
	}
	return req, nil
}

func (s *MeetingService) Get(ctx context.Context, identity session.Identity, id uuid.UUID) (*dto.MeetingRequestResponse, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return nil, appErr
	}

	req, appErr := s.visible(ctx, identity, id)
	if appErr != nil {
		return nil, appErr
	}
	return mapper.ToMeetingRequestResponse(req), nil
}

// List returns the requests the caller organized, newest first, optionally by status.
func (s *MeetingService) List(ctx context.Context, identity session.Identity, filter dto.MeetingFilter) ([]dto.MeetingRequestResponse, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return nil, appErr
	}
	if appErr := validator.Struct(filter); appErr != nil {
		return nil, appErr
	}

	reqs, appErr := s.loadOrganized(ctx, identity.UserID)
	if appErr != nil {
		return nil, appErr
	}
	if filter.Status != "" {
		reqs = FilterByStatus(reqs, entity.Status(filter.Status))
	}
	return mapper.ToMeetingRequestResponses(reqs), nil
}

// Invited returns the requests that list the caller's email as an attendee.
func (s *MeetingService) Invited(ctx context.Context, identity session.Identity, filter dto.MeetingFilter) ([]dto.MeetingRequestResponse, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return nil, appErr
	}
	if appErr := validator.Struct(filter); appErr != nil {
		return nil, appErr
	}
	if identity.Email == "" {
		return []dto.MeetingRequestResponse{}, nil
	}

	reqs, appErr := s.loadInvited(ctx, identity)
	if appErr != nil {
		return nil, appErr
	}
	if filter.Status != "" {
		reqs = FilterByStatus(reqs, entity.Status(filter.Status))
	}
	return mapper.ToMeetingRequestResponses(reqs), nil
}

func (s *MeetingService) Stats(ctx context.Context, identity session.Identity) (*dto.MeetingStats, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return nil, appErr
	}

	reqs, appErr := s.loadOrganized(ctx, identity.UserID)
	if appErr != nil {
		return nil, appErr
	}
	stats := Stats(reqs)
	return &stats, nil
}

// Update patches a pending request the caller organizes.
func (s *MeetingService) Update(ctx context.Context, identity session.Identity, id uuid.UUID, req *dto.UpdateMeetingRequest) (*dto.MeetingRequestResponse, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return nil, appErr
	}
	if appErr := validator.Struct(req); appErr != nil {
		return nil, appErr
	}

	existing, appErr := s.owned(ctx, identity, id)
	if appErr != nil {
		return nil, appErr
	}
	if existing.Status != entity.StatusPending {
		return nil, errors.Validation("meeting request is already " + string(existing.Status))
	}

	before := s.registeredAttendees(ctx, existing)

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, errors.Validation("title is required")
		}
		existing.Title = title
	}
	if req.Description != nil {
		existing.Description = req.Description
	}
	if req.DurationMinutes != nil {
		existing.DurationMinutes = *req.DurationMinutes
	}
	if req.Options != nil {
		existing.Options = mapper.ToTimeWindows(*req.Options)
	}
	if req.Attendees != nil {
		existing.Attendees = normalizeAttendees(*req.Attendees, identity.Email)
	}
	if appErr := validateOptions(existing.Options, existing.DurationMinutes); appErr != nil {
		return nil, appErr
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, errors.Remote("failed to update meeting request", err)
	}
	if updated == nil {
		return nil, errors.Validation("meeting request is no longer pending")
	}

	s.invalidate(ctx, updated, append(before, s.registeredAttendees(ctx, updated)...))
	return mapper.ToMeetingRequestResponse(updated), nil
}

// Delete removes a request the caller organizes. A missing id succeeds.
func (s *MeetingService) Delete(ctx context.Context, identity session.Identity, id uuid.UUID) (uuid.UUID, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return uuid.Nil, appErr
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return uuid.Nil, errors.Remote("failed to get meeting request", err)
	}
	if existing == nil {
		cache.Invalidate(ctx, s.cache, cache.Tag(constants.CacheEntityMeetings, identity.UserID))
		return id, nil
	}
	if existing.OrganizerID != identity.UserID {
		if existing.Involves(identity.Email) {
			return uuid.Nil, errors.NewAppError(errors.ErrForbidden, "only the organizer can delete this meeting request", nil)
		}
		return id, nil
	}

	if err := s.repo.Delete(ctx, identity.UserID, id); err != nil {
		return uuid.Nil, errors.Remote("failed to delete meeting request", err)
	}

	s.invalidate(ctx, existing, s.registeredAttendees(ctx, existing))
	if existing.Status == entity.StatusAccepted {
		// the booked event loses its back-reference
		s.invalidateEvents(ctx, existing.OrganizerID)
	}
	return id, nil
}
