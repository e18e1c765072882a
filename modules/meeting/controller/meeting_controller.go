package controller

import (
	"agenda-api/core/controller"
	"agenda-api/core/errors"
	"agenda-api/core/params"
	"agenda-api/core/session"
	"agenda-api/modules/meeting/dto"
	"agenda-api/modules/meeting/service"

	"github.com/labstack/echo/v4"
)

// MeetingController serves the meeting request workflow
type MeetingController struct {
	controller.BaseController
	service *service.MeetingService
}

func NewMeetingController(service *service.MeetingService) *MeetingController {
	return &MeetingController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

// List returns the requests the caller organized
// @Summary List meeting requests
// @Tags Meeting
// @Security BearerAuth
// @Produce json
// @Param status query string false "pending, accepted or declined"
// @Success 200 {array} dto.MeetingRequestResponse
// @Router /private/meetings [get]
func (ctrl *MeetingController) List(c echo.Context) error {
	filter := dto.MeetingFilter{Status: c.QueryParam("status")}

	reqs, appErr := ctrl.service.List(c.Request().Context(), session.FromContext(c), filter)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, reqs, "Success")
}

// Invited returns the requests that list the caller as an attendee
// @Summary List meeting invitations
// @Tags Meeting
// @Security BearerAuth
// @Produce json
// @Param status query string false "pending, accepted or declined"
// @Success 200 {array} dto.MeetingRequestResponse
// @Router /private/meetings/invited [get]
func (ctrl *MeetingController) Invited(c echo.Context) error {
	filter := dto.MeetingFilter{Status: c.QueryParam("status")}

	reqs, appErr := ctrl.service.Invited(c.Request().Context(), session.FromContext(c), filter)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, reqs, "Success")
}

// @Summary Meeting request statistics
// @Tags Meeting
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.MeetingStats
// @Router /private/meetings/stats [get]
func (ctrl *MeetingController) Stats(c echo.Context) error {
	stats, appErr := ctrl.service.Stats(c.Request().Context(), session.FromContext(c))
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, stats, "Success")
}

// Suggest finds free windows in the caller's calendar
// @Summary Suggest meeting times
// @Tags Meeting
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SuggestOptionsRequest true "Search range"
// @Success 200 {array} dto.SuggestedOption
// @Router /private/meetings/suggest [post]
func (ctrl *MeetingController) Suggest(c echo.Context) error {
	req := new(dto.SuggestOptionsRequest)
	if err := c.Bind(req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	options, appErr := ctrl.service.SuggestOptions(c.Request().Context(), session.FromContext(c), req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, options, "Success")
}

// @Summary Propose a meeting
// @Tags Meeting
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ProposeRequest true "Meeting request"
// @Success 201 {object} dto.MeetingRequestResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/meetings [post]
func (ctrl *MeetingController) Propose(c echo.Context) error {
	req := new(dto.ProposeRequest)
	if err := c.Bind(req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	created, appErr := ctrl.service.Propose(c.Request().Context(), session.FromContext(c), req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.CreatedResponse(c, created, "Meeting request created")
}

// @Summary Get meeting request
// @Tags Meeting
// @Security BearerAuth
// @Produce json
// @Param id path string true "Meeting request ID"
// @Success 200 {object} dto.MeetingRequestResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /private/meetings/{id} [get]
func (ctrl *MeetingController) Get(c echo.Context) error {
	id, appErr := params.ParseID(c, "id")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	req, appErr := ctrl.service.Get(c.Request().Context(), session.FromContext(c), id)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, req, "Success")
}

// @Summary Update pending meeting request
// @Tags Meeting
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Meeting request ID"
// @Param request body dto.UpdateMeetingRequest true "Fields to change"
// @Success 200 {object} dto.MeetingRequestResponse
// @Router /private/meetings/{id} [patch]
func (ctrl *MeetingController) Update(c echo.Context) error {
	id, appErr := params.ParseID(c, "id")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	req := new(dto.UpdateMeetingRequest)
	if err := c.Bind(req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	updated, appErr := ctrl.service.Update(c.Request().Context(), session.FromContext(c), id, req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, updated, "Meeting request updated")
}

// @Summary Accept meeting request
// @Tags Meeting
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Meeting request ID"
// @Param request body dto.AcceptRequest true "Chosen option"
// @Success 200 {object} dto.AcceptResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/meetings/{id}/accept [post]
func (ctrl *MeetingController) Accept(c echo.Context) error {
	id, appErr := params.ParseID(c, "id")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	req := new(dto.AcceptRequest)
	if err := c.Bind(req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := ctrl.service.Accept(c.Request().Context(), session.FromContext(c), id, req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, result, "Meeting request accepted")
}

// @Summary Decline meeting request
// @Tags Meeting
// @Security BearerAuth
// @Produce json
// @Param id path string true "Meeting request ID"
// @Success 200 {object} dto.MeetingRequestResponse
// @Router /private/meetings/{id}/decline [post]
func (ctrl *MeetingController) Decline(c echo.Context) error {
	id, appErr := params.ParseID(c, "id")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	result, appErr := ctrl.service.Decline(c.Request().Context(), session.FromContext(c), id)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, result, "Meeting request declined")
}

// Materialize creates the missing event for an accepted request
// @Summary Materialize meeting event
// @Tags Meeting
// @Security BearerAuth
// @Produce json
// @Param id path string true "Meeting request ID"
// @Success 200 {object} eventDto.EventResponse
// @Router /private/meetings/{id}/materialize [post]
func (ctrl *MeetingController) Materialize(c echo.Context) error {
	id, appErr := params.ParseID(c, "id")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	event, appErr := ctrl.service.Materialize(c.Request().Context(), session.FromContext(c), id)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, event, "Success")
}

// @Summary Reschedule meeting request
// @Tags Meeting
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Meeting request ID"
// @Param request body dto.RescheduleRequest true "New options"
// @Success 201 {object} dto.MeetingRequestResponse
// @Router /private/meetings/{id}/reschedule [post]
func (ctrl *MeetingController) Reschedule(c echo.Context) error {
	id, appErr := params.ParseID(c, "id")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	req := new(dto.RescheduleRequest)
	if err := c.Bind(req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	created, appErr := ctrl.service.Reschedule(c.Request().Context(), session.FromContext(c), id, req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.CreatedResponse(c, created, "Meeting request rescheduled")
}

// @Summary Delete meeting request
// @Tags Meeting
// @Security BearerAuth
// @Produce json
// @Param id path string true "Meeting request ID"
// @Success 200 {object} dto.DeleteMeetingResponse
// @Router /private/meetings/{id} [delete]
func (ctrl *MeetingController) Delete(c echo.Context) error {
	id, appErr := params.ParseID(c, "id")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	deleted, appErr := ctrl.service.Delete(c.Request().Context(), session.FromContext(c), id)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, dto.DeleteMeetingResponse{ID: deleted}, "Meeting request deleted")
}
