package controller

import (
	"agenda-api/core/controller"
	"agenda-api/core/errors"
	"agenda-api/core/params"
	"agenda-api/core/session"
	"agenda-api/modules/event/dto"
	"agenda-api/modules/event/service"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type EventController struct {
	controller.BaseController
	service *service.EventService
}

func NewEventController(service *service.EventService) *EventController {
	return &EventController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

func parseTimeParam(c echo.Context, name string) (*time.Time, *errors.AppError) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid "+name+", expected RFC3339", err)
	}
	return &t, nil
}

// List returns the caller's events
// @Summary List events
// @Tags Event
// @Security BearerAuth
// @Produce json
// @Param from query string false "RFC3339 lower bound on start"
// @Param to query string false "RFC3339 upper bound on end"
// @Param type query string false "Event type"
// @Param range query string false "today or week"
// @Success 200 {array} dto.EventResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/events [get]
func (ctrl *EventController) List(c echo.Context) error {
	from, appErr := parseTimeParam(c, "from")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	to, appErr := parseTimeParam(c, "to")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	filter := dto.EventFilter{From: from, To: to, Type: c.QueryParam("type"), Range: c.QueryParam("range")}
	events, appErr := ctrl.service.List(c.Request().Context(), session.FromContext(c), filter)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, events, "Success")
}

// Today returns events starting today in the caller's timezone
// @Summary Today's events
// @Tags Event
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.EventResponse
// @Router /private/events/today [get]
func (ctrl *EventController) Today(c echo.Context) error {
	events, appErr := ctrl.service.Today(c.Request().Context(), session.FromContext(c))
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, events, "Success")
}

// Week returns events starting this week in the caller's timezone
// @Summary This week's events
// @Tags Event
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.EventResponse
// @Router /private/events/week [get]
func (ctrl *EventController) Week(c echo.Context) error {
	events, appErr := ctrl.service.ThisWeek(c.Request().Context(), session.FromContext(c))
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, events, "Success")
}

// @Summary Get event
// @Tags Event
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.EventResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /private/events/{id} [get]
func (ctrl *EventController) Get(c echo.Context) error {
	id, appErr := params.ParseID(c, "id")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	event, appErr := ctrl.service.Get(c.Request().Context(), session.FromContext(c), id)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, event, "Success")
}

// @Summary Create event
// @Tags Event
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Event"
// @Success 201 {object} dto.EventResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/events [post]
func (ctrl *EventController) Create(c echo.Context) error {
	req := new(dto.CreateEventRequest)
	if err := c.Bind(req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	event, appErr := ctrl.service.Create(c.Request().Context(), session.FromContext(c), req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.CreatedResponse(c, event, "Event created")
}

// @Summary Update event
// @Tags Event
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.UpdateEventRequest true "Fields to change"
// @Success 200 {object} dto.EventResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /private/events/{id} [patch]
func (ctrl *EventController) Update(c echo.Context) error {
	id, appErr := params.ParseID(c, "id")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	req := new(dto.UpdateEventRequest)
	if err := c.Bind(req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	event, appErr := ctrl.service.Update(c.Request().Context(), session.FromContext(c), id, req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, event, "Event updated")
}

// @Summary Delete event
// @Tags Event
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.DeleteEventResponse
// @Router /private/events/{id} [delete]
func (ctrl *EventController) Delete(c echo.Context) error {
	id, appErr := params.ParseID(c, "id")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	deleted, appErr := ctrl.service.Delete(c.Request().Context(), session.FromContext(c), id)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, dto.DeleteEventResponse{ID: deleted}, "Event deleted")
}

// Export downloads the caller's calendar as iCalendar
// @Summary Export calendar
// @Tags Event
// @Security BearerAuth
// @Produce text/calendar
// @Success 200 {string} string
// @Router /private/events/export.ics [get]
func (ctrl *EventController) Export(c echo.Context) error {
	file, appErr := ctrl.service.Export(c.Request().Context(), session.FromContext(c))
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))
	return c.Blob(http.StatusOK, service.CalendarMediaType(), file.Content)
}

// Publish uploads the calendar and returns a signed link
// @Summary Publish calendar
// @Tags Event
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.PublishResponse
// @Failure 500 {object} controller.ErrorResponse
// @Router /private/events/export/publish [post]
func (ctrl *EventController) Publish(c echo.Context) error {
	published, appErr := ctrl.service.Publish(c.Request().Context(), session.FromContext(c))
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, published, "Calendar published")
}
