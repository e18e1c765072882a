package event

import (
	"agenda-api/core/cache"
	"agenda-api/core/config"
	"agenda-api/core/database"
	"agenda-api/core/logger"
	"agenda-api/core/middleware"
	"agenda-api/core/storage"
	"agenda-api/modules/event/controller"
	"agenda-api/modules/event/repository"
	"agenda-api/modules/event/router"
	"agenda-api/modules/event/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.Database, c cache.Cache, cfg *config.Config, mw *middleware.Middleware) *service.EventService {
	var store storage.ObjectStore
	if s3Store, err := storage.NewS3Store(cfg.Storage); err == nil {
		store = s3Store
	} else {
		logger.Warn("Event:Storage:Skipped", "reason", err.Error())
	}

	repo := repository.NewEventRepository(db)
	svc := service.NewEventService(repo, c, store, service.Options{
		ListTTL:         cfg.Cache.ListTTL,
		PresignTTL:      cfg.Storage.PresignTTL,
		DefaultTimezone: cfg.App.DefaultTimezone,
	})
	ctrl := controller.NewEventController(svc)

	router.NewEventRouter(ctrl).Setup(e, mw)

	return svc
}
