package router

import (
	"agenda-api/core/middleware"
	"agenda-api/modules/task/controller"

	"github.com/labstack/echo/v4"
)

type TaskRouter struct {
	TaskController *controller.TaskController
}

func NewTaskRouter(taskController *controller.TaskController) *TaskRouter {
	return &TaskRouter{TaskController: taskController}
}

func (r *TaskRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	tasks := e.Group("/api/v1/private/tasks", mw.AuthMiddleware())
	tasks.GET("", r.TaskController.List)
	tasks.POST("", r.TaskController.Create)
	tasks.GET("/:id", r.TaskController.Get)
	tasks.PATCH("/:id", r.TaskController.Update)
	tasks.POST("/:id/toggle", r.TaskController.Toggle)
	tasks.DELETE("/:id", r.TaskController.Delete)
}
