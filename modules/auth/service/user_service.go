package service

import (
	"agenda-api/core/constants"
	"agenda-api/core/errors"
	"agenda-api/core/logger"
	"agenda-api/core/session"
	"agenda-api/core/validator"
	"agenda-api/modules/auth/dto"
	"agenda-api/modules/auth/entity"
	"agenda-api/modules/auth/mapper"
	"agenda-api/modules/auth/repository"
	"context"
	"strings"

	"github.com/google/uuid"
)

type UserService struct {
	repo            repository.UserRepositoryInterface
	defaultTimezone string
}

func NewUserService(repo repository.UserRepositoryInterface, defaultTimezone string) *UserService {
	return &UserService{repo: repo, defaultTimezone: defaultTimezone}
}

// NewUser describes a user to create on first authentication.
type NewUser struct {
	ID              uuid.UUID
	ProviderSubject string
	Name            string
	Email           string
}

// LookupOrCreate returns the user with the given id, creating it with default settings if absent.
func (s *UserService) LookupOrCreate(ctx context.Context, nu NewUser) (*entity.User, error) {
	user, err := s.repo.GetByID(ctx, nu.ID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	name := strings.TrimSpace(nu.Name)
	if name == "" {
		name = constants.DefaultUserName
	}

	subject := nu.ProviderSubject
	if subject == "" {
		subject = "uid:" + nu.ID.String()
	}

	created, err := s.repo.CreateIfMissing(ctx, &entity.User{
		ProviderSubject:      subject,
		Name:                 name,
		Email:                nu.Email,
		Timezone:             s.defaultTimezone,
		NotificationSettings: entity.DefaultNotificationSettings(),
		CalendarPreferences:  entity.DefaultCalendarPreferences(),
		BaseEntity:           baseWithID(nu.ID),
	})
	if err != nil {
		return nil, err
	}

	logger.Info("UserService:LookupOrCreate:Created", "user_id", created.ID)
	return created, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return s.repo.GetByID(ctx, id)
}

// FindByEmails returns registered users matching any of the emails.
func (s *UserService) FindByEmails(ctx context.Context, emails []string) ([]entity.User, error) {
	return s.repo.GetByEmails(ctx, emails)
}

func (s *UserService) GetProfile(ctx context.Context, identity session.Identity) (*dto.UserResponse, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return nil, appErr
	}

	user, err := s.repo.GetByID(ctx, identity.UserID)
	if err != nil {
		return nil, errors.Remote("failed to get user", err)
	}
	if user == nil {
		return nil, errors.NotFound("user")
	}
	return mapper.ToUserResponse(user), nil
}

func (s *UserService) UpdateSettings(ctx context.Context, identity session.Identity, req *dto.UpdateSettingsRequest) (*dto.UserResponse, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return nil, appErr
	}
	if appErr := validator.Struct(req); appErr != nil {
		return nil, appErr
	}

	user, err := s.repo.GetByID(ctx, identity.UserID)
	if err != nil {
		return nil, errors.Remote("failed to get user", err)
	}
	if user == nil {
		return nil, errors.NotFound("user")
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Timezone != nil {
		user.Timezone = *req.Timezone
	}
	if req.NotificationSettings != nil {
		user.NotificationSettings = *req.NotificationSettings
	}
	if req.CalendarPreferences != nil {
		user.CalendarPreferences = mapper.ToCalendarPreferences(req.CalendarPreferences)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, errors.Remote("failed to update settings", err)
	}
	return mapper.ToUserResponse(user), nil
}
