package meeting

import (
	"agenda-api/core/cache"
	"agenda-api/core/config"
	"agenda-api/core/database"
	"agenda-api/core/middleware"
	eventRepository "agenda-api/modules/event/repository"
	"agenda-api/modules/meeting/controller"
	"agenda-api/modules/meeting/repository"
	"agenda-api/modules/meeting/router"
	"agenda-api/modules/meeting/service"

	"github.com/labstack/echo/v4"
)

// Init wires the meeting module. users and notifier come from the auth and notification modules.
func Init(e *echo.Echo, db database.Database, c cache.Cache, cfg *config.Config, mw *middleware.Middleware, users service.UserDirectory, notifier service.Notifier) *service.MeetingService {
	repo := repository.NewMeetingRepository(db)
	svc := service.NewMeetingService(repo, c, users, notifier, eventRepository.NewEventRepository(db), service.Options{
		ListTTL:         cfg.Cache.ListTTL,
		DefaultTimezone: cfg.App.DefaultTimezone,
	})
	ctrl := controller.NewMeetingController(svc)

	router.NewMeetingRouter(ctrl).Setup(e, mw)

	return svc
}
