package service

import (
	coreEntity "agenda-api/core/entity"
	"agenda-api/core/errors"
	"agenda-api/core/params"
	"agenda-api/core/session"
	"agenda-api/core/validator"
	"agenda-api/modules/notification/dto"
	"agenda-api/modules/notification/entity"
	"agenda-api/modules/notification/repository"
	"context"
	"time"
)

type NotificationService struct {
	repo repository.NotificationRepositoryInterface
}

func NewNotificationService(repo repository.NotificationRepositoryInterface) *NotificationService {
	return &NotificationService{repo: repo}
}

// Create stores a notification for a user. It is called by other modules, not over HTTP.
func (s *NotificationService) Create(ctx context.Context, req *dto.CreateNotificationRequest) error {
	now := time.Now()
	notif := &entity.Notification{
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
		Data:    entity.JSONB(req.Data),
		IsRead:  false,
		BaseEntity: coreEntity.BaseEntity{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	return s.repo.Create(ctx, notif)
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, identity session.Identity, queryParams params.QueryParams) (*coreEntity.Pagination[dto.NotificationResponse], *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return nil, appErr
	}

	page, err := s.repo.GetByUserID(ctx, identity.UserID, queryParams)
	if err != nil {
		return nil, errors.Remote("failed to get notifications", err)
	}

	items := make([]dto.NotificationResponse, 0, len(page.Items))
	for _, n := range page.Items {
		items = append(items, dto.NotificationResponse{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Type:      n.Type,
			Data:      n.Data,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}

	return &coreEntity.Pagination[dto.NotificationResponse]{
		Items:      items,
		TotalItems: page.TotalItems,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, identity session.Identity, req *dto.MarkAsReadRequest) *errors.AppError {
	if appErr := session.Require(identity); appErr != nil {
		return appErr
	}
	if appErr := validator.Struct(req); appErr != nil {
		return appErr
	}
	if err := s.repo.MarkAsRead(ctx, identity.UserID, req.IDs); err != nil {
		return errors.Remote("failed to mark as read", err)
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, identity session.Identity) *errors.AppError {
	if appErr := session.Require(identity); appErr != nil {
		return appErr
	}
	if err := s.repo.MarkAllAsRead(ctx, identity.UserID); err != nil {
		return errors.Remote("failed to mark all as read", err)
	}
	return nil
}

func (s *NotificationService) CountUnread(ctx context.Context, identity session.Identity) (int, *errors.AppError) {
	if appErr := session.Require(identity); appErr != nil {
		return 0, appErr
	}
	count, err := s.repo.CountUnread(ctx, identity.UserID)
	if err != nil {
		return 0, errors.Remote("failed to count unread", err)
	}
	return count, nil
}
