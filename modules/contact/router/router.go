package router

import (
	"agenda-api/core/middleware"
	"agenda-api/modules/contact/controller"

	"github.com/labstack/echo/v4"
)

type ContactRouter struct {
	ContactController *controller.ContactController
}

func NewContactRouter(contactController *controller.ContactController) *ContactRouter {
	return &ContactRouter{ContactController: contactController}
}

func (r *ContactRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	contacts := e.Group("/api/v1/private/contacts", mw.AuthMiddleware())
	contacts.GET("", r.ContactController.List)
	contacts.POST("", r.ContactController.Create)
	contacts.GET("/stats", r.ContactController.Stats)
	contacts.GET("/autocomplete", r.ContactController.Autocomplete)
	contacts.GET("/:id", r.ContactController.Get)
	contacts.PATCH("/:id", r.ContactController.Update)
	contacts.DELETE("/:id", r.ContactController.Delete)
}
