package router

import (
	"agenda-api/core/middleware"
	"agenda-api/modules/meeting/controller"

	"github.com/labstack/echo/v4"
)

type MeetingRouter struct {
	MeetingController *controller.MeetingController
}

func NewMeetingRouter(meetingController *controller.MeetingController) *MeetingRouter {
	return &MeetingRouter{MeetingController: meetingController}
}

func (r *MeetingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	meetings := e.Group("/api/v1/private/meetings", mw.AuthMiddleware())

	meetings.GET("", r.MeetingController.List)
	meetings.POST("", r.MeetingController.Propose)
	meetings.GET("/invited", r.MeetingController.Invited)
	meetings.GET("/stats", r.MeetingController.Stats)
	meetings.POST("/suggest", r.MeetingController.Suggest)

	meetings.GET("/:id", r.MeetingController.Get)
	meetings.PATCH("/:id", r.MeetingController.Update)
	meetings.DELETE("/:id", r.MeetingController.Delete)

	// Lifecycle
	meetings.POST("/:id/accept", r.MeetingController.Accept)
	meetings.POST("/:id/decline", r.MeetingController.Decline)
	meetings.POST("/:id/materialize", r.MeetingController.Materialize)
	meetings.POST("/:id/reschedule", r.MeetingController.Reschedule)
}
