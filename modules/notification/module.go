package notification

import (
	"agenda-api/core/database"
	"agenda-api/core/middleware"
	"agenda-api/modules/notification/controller"
	"agenda-api/modules/notification/repository"
	"agenda-api/modules/notification/router"
	"agenda-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Group, db database.Database, mw *middleware.Middleware) *service.NotificationService {
	svc := NewService(db)
	ctrl := controller.NewNotificationController(svc)

	router.NewNotificationRouter(ctrl).Register(e, mw)

	return svc
}

// NewService builds the service alone, for the worker process.
func NewService(db database.Database) *service.NotificationService {
	return service.NewNotificationService(repository.NewNotificationRepository(db))
}
