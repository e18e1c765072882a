package task

import (
	"agenda-api/core/cache"
	"agenda-api/core/config"
	"agenda-api/core/database"
	"agenda-api/core/middleware"
	"agenda-api/modules/task/controller"
	"agenda-api/modules/task/repository"
	"agenda-api/modules/task/router"
	"agenda-api/modules/task/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.Database, c cache.Cache, cfg *config.Config, mw *middleware.Middleware, reminders service.ReminderScheduler) *service.TaskService {
	repo := repository.NewTaskRepository(db)
	svc := service.NewTaskService(repo, c, cfg.Cache.ListTTL, reminders)
	ctrl := controller.NewTaskController(svc)

	router.NewTaskRouter(ctrl).Setup(e, mw)

	return svc
}
