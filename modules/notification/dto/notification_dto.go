package dto

import (
	"agenda-api/modules/notification/entity"
	"time"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	ID        uuid.UUID               `json:"id"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	Type      entity.NotificationType `json:"type"`
	Data      map[string]any          `json:"data"`
	IsRead    bool                    `json:"is_read"`
	CreatedAt time.Time               `json:"created_at"`
}

type MarkAsReadRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1"`
}

type CreateNotificationRequest struct {
	UserID  uuid.UUID
	Title   string
	Message string
	Type    entity.NotificationType
	Data    map[string]any
}
