package router

import (
	"agenda-api/core/middleware"
	"agenda-api/modules/event/controller"

	"github.com/labstack/echo/v4"
)

type EventRouter struct {
	EventController *controller.EventController
}

func NewEventRouter(eventController *controller.EventController) *EventRouter {
	return &EventRouter{EventController: eventController}
}

func (r *EventRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	events := e.Group("/api/v1/private/events", mw.AuthMiddleware())
	events.GET("", r.EventController.List)
	events.POST("", r.EventController.Create)
	events.GET("/today", r.EventController.Today)
	events.GET("/week", r.EventController.Week)
	events.GET("/export.ics", r.EventController.Export)
	events.POST("/export/publish", r.EventController.Publish)
	events.GET("/:id", r.EventController.Get)
	events.PATCH("/:id", r.EventController.Update)
	events.DELETE("/:id", r.EventController.Delete)
}
