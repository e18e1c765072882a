package contact

import (
	"agenda-api/core/cache"
	"agenda-api/core/config"
	"agenda-api/core/database"
	"agenda-api/core/middleware"
	"agenda-api/modules/contact/controller"
	"agenda-api/modules/contact/repository"
	"agenda-api/modules/contact/router"
	"agenda-api/modules/contact/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.Database, c cache.Cache, cfg *config.Config, mw *middleware.Middleware) *service.ContactService {
	repo := repository.NewContactRepository(db)
	svc := service.NewContactService(repo, c, cfg.Cache.ListTTL)
	ctrl := controller.NewContactController(svc)

	router.NewContactRouter(ctrl).Setup(e, mw)

	return svc
}
