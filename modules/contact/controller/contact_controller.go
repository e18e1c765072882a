package controller

import (
	"agenda-api/core/controller"
	"agenda-api/core/errors"
	"agenda-api/core/params"
	"agenda-api/core/session"
	"agenda-api/modules/contact/dto"
	"agenda-api/modules/contact/service"

	"github.com/labstack/echo/v4"
)

type ContactController struct {
	controller.BaseController
	service *service.ContactService
}

func NewContactController(service *service.ContactService) *ContactController {
	return &ContactController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

// List returns contacts, or search results when q is given
// @Summary List contacts
// @Tags Contact
// @Security BearerAuth
// @Produce json
// @Param q query string false "Search term"
// @Param company query string false "Company name"
// @Success 200 {array} dto.ContactResponse
// @Router /private/contacts [get]
func (ctrl *ContactController) List(c echo.Context) error {
	ctx := c.Request().Context()
	identity := session.FromContext(c)

	var (
		contacts []dto.ContactResponse
		appErr   *errors.AppError
	)
	switch {
	case c.QueryParams().Has("q"):
		contacts, appErr = ctrl.service.Search(ctx, identity, c.QueryParam("q"))
	case c.QueryParams().Has("company"):
		contacts, appErr = ctrl.service.ByCompany(ctx, identity, c.QueryParam("company"))
	default:
		contacts, appErr = ctrl.service.List(ctx, identity)
	}
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, contacts, "Success")
}

// @Summary Contact statistics
// @Tags Contact
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.ContactStats
// @Router /private/contacts/stats [get]
func (ctrl *ContactController) Stats(c echo.Context) error {
	stats, appErr := ctrl.service.Stats(c.Request().Context(), session.FromContext(c))
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, stats, "Success")
}

// @Summary Autocomplete attendees
// @Tags Contact
// @Security BearerAuth
// @Produce json
// @Param q query string true "Partial name or email"
// @Success 200 {array} dto.Suggestion
// @Router /private/contacts/autocomplete [get]
func (ctrl *ContactController) Autocomplete(c echo.Context) error {
	suggestions, appErr := ctrl.service.Autocomplete(c.Request().Context(), session.FromContext(c), c.QueryParam("q"))
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, suggestions, "Success")
}

// @Summary Get contact
// @Tags Contact
// @Security BearerAuth
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} dto.ContactResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /private/contacts/{id} [get]
func (ctrl *ContactController) Get(c echo.Context) error {
	id, appErr := params.ParseID(c, "id")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	contact, appErr := ctrl.service.Get(c.Request().Context(), session.FromContext(c), id)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, contact, "Success")
}

// @Summary Create contact
// @Tags Contact
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateContactRequest true "Contact"
// @Success 201 {object} dto.ContactResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/contacts [post]
func (ctrl *ContactController) Create(c echo.Context) error {
	req := new(dto.CreateContactRequest)
	if err := c.Bind(req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	contact, appErr := ctrl.service.Create(c.Request().Context(), session.FromContext(c), req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.CreatedResponse(c, contact, "Contact created")
}

// @Summary Update contact
// @Tags Contact
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param request body dto.UpdateContactRequest true "Fields to change"
// @Success 200 {object} dto.ContactResponse
// @Router /private/contacts/{id} [patch]
func (ctrl *ContactController) Update(c echo.Context) error {
	id, appErr := params.ParseID(c, "id")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	req := new(dto.UpdateContactRequest)
	if err := c.Bind(req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	contact, appErr := ctrl.service.Update(c.Request().Context(), session.FromContext(c), id, req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, contact, "Contact updated")
}

// @Summary Delete contact
// @Tags Contact
// @Security BearerAuth
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} dto.DeleteContactResponse
// @Router /private/contacts/{id} [delete]
func (ctrl *ContactController) Delete(c echo.Context) error {
	id, appErr := params.ParseID(c, "id")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	deleted, appErr := ctrl.service.Delete(c.Request().Context(), session.FromContext(c), id)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, dto.DeleteContactResponse{ID: deleted}, "Contact deleted")
}
