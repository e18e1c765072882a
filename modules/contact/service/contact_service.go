package service

import (
	"agenda-api/core/cache"
	"agenda-api/core/constants"
	"agenda-api/core/errors"
	"agenda-api/core/session"
	"agenda-api/core/validator"
	"agenda-api/modules/contact/dto"
	"agenda-api/modules/contact/entity"
	"agenda-api/modules/contact/mapper"
	"agenda-api/modules/contact/repository"
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ContactService struct {
	repo    repository.ContactRepositoryInterface
	cache   cache.Cache
	listTTL time.Duration
}

func NewContactService(repo repository.ContactRepositoryInterface, c cache.Cache, listTTL time.Duration) *ContactService {
	return &ContactService{repo: repo, cache: c, listTTL: listTTL}
}

func (s *ContactService) load(ctx context.Context, identity session.Identity) ([]entity.Contact, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return nil, appErr
	}

	key := cache.Key(constants.CacheEntityContacts, identity.UserID, "all")
	tags := []string{cache.Tag(constants.CacheEntityContacts, identity.UserID)}

	contacts, err := cache.Remember(ctx, s.cache, key, s.listTTL, tags, func(ctx context.Context) ([]entity.Contact, error) {
		return s.repo.ListByUser(ctx, identity.UserID)
	})
	if err != nil {
		return nil, errors.Remote("failed to list contacts", err)
	}
	return contacts, nil
}

func (s *ContactService) invalidate(ctx context.Context, userID uuid.UUID) {
	cache.Invalidate(ctx, s.cache, cache.Tag(constants.CacheEntityContacts, userID))
}

// List returns the caller's contacts by name.
func (s *ContactService) List(ctx context.Context, identity session.Identity) ([]dto.ContactResponse, *errors.AppError) {
	contacts, appErr := s.load(ctx, identity)
	if appErr != nil {
		return nil, appErr
	}
	return mapper.ToContactResponses(contacts), nil
}

func (s *ContactService) Search(ctx context.Context, identity session.Identity, term string) ([]dto.ContactResponse, *errors.AppError) {
	contacts, appErr := s.load(ctx, identity)
	if appErr != nil {
		return nil, appErr
	}
	return mapper.ToContactResponses(Search(contacts, term)), nil
}

func (s *ContactService) ByCompany(ctx context.Context, identity session.Identity, company string) ([]dto.ContactResponse, *errors.AppError) {
	contacts, appErr := s.load(ctx, identity)
	if appErr != nil {
		return nil, appErr
	}
	return mapper.ToContactResponses(ByCompany(contacts, company)), nil
}

func (s *ContactService) Stats(ctx context.Context, identity session.Identity) (*dto.ContactStats, *errors.AppError) {
	contacts, appErr := s.load(ctx, identity)
	if appErr != nil {
		return nil, appErr
	}
	stats := Stats(contacts)
	return &stats, nil
}

func (s *ContactService) Autocomplete(ctx context.Context, identity session.Identity, term string) ([]dto.Suggestion, *errors.AppError) {
	contacts, appErr := s.load(ctx, identity)
	if appErr != nil {
		return nil, appErr
	}
	return Autocomplete(contacts, term), nil
}

func (s *ContactService) Get(ctx context.Context, identity session.Identity, id uuid.UUID) (*dto.ContactResponse, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return nil, appErr
	}

	contact, err := s.repo.GetByID(ctx, identity.UserID, id)
	if err != nil {
		return nil, errors.Remote("failed to get contact", err)
	}
	if contact == nil {
		return nil, errors.NotFound("contact")
	}
	return mapper.ToContactResponse(contact), nil
}

func (s *ContactService) Create(ctx context.Context, identity session.Identity, req *dto.CreateContactRequest) (*dto.ContactResponse, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return nil, appErr
	}
	if appErr := validator.Struct(req); appErr != nil {
		return nil, appErr
	}

	contact := &entity.Contact{
		UserID:  identity.UserID,
		Name:    strings.TrimSpace(req.Name),
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
	}
	if contact.Name == "" {
		return nil, errors.Validation("name is required")
	}

	created, err := s.repo.Create(ctx, contact)
	if err != nil {
		return nil, errors.Remote("failed to create contact", err)
	}

	s.invalidate(ctx, identity.UserID)
	return mapper.ToContactResponse(created), nil
}

// Update applies the non-nil fields of req and leaves the rest unchanged.
func (s *ContactService) Update(ctx context.Context, identity session.Identity, id uuid.UUID, req *dto.UpdateContactRequest) (*dto.ContactResponse, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return nil, appErr
	}
	if appErr := validator.Struct(req); appErr != nil {
		return nil, appErr
	}

	contact, err := s.repo.GetByID(ctx, identity.UserID, id)
	if err != nil {
		return nil, errors.Remote("failed to get contact", err)
	}
	if contact == nil {
		return nil, errors.NotFound("contact")
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, errors.Validation("name is required")
		}
		contact.Name = name
	}
	if req.Email != nil {
		contact.Email = req.Email
	}
	if req.Phone != nil {
		contact.Phone = req.Phone
	}
	if req.Company != nil {
		contact.Company = req.Company
	}

	updated, err := s.repo.Update(ctx, contact)
	if err != nil {
		return nil, errors.Remote("failed to update contact", err)
	}
	if updated == nil {
		return nil, errors.NotFound("contact")
	}

	s.invalidate(ctx, identity.UserID)
	return mapper.ToContactResponse(updated), nil
}

// Delete removes the contact. Deleting an id that is already gone succeeds.
func (s *ContactService) Delete(ctx context.Context, identity session.Identity, id uuid.UUID) (uuid.UUID, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return uuid.Nil, appErr
	}

	if err := s.repo.Delete(ctx, identity.UserID, id); err != nil {
		return uuid.Nil, errors.Remote("failed to delete contact", err)
	}

	s.invalidate(ctx, identity.UserID)
	return id, nil
}
