package controller

import (
	"agenda-api/core/controller"
	"agenda-api/core/errors"
	"agenda-api/core/params"
	"agenda-api/core/session"
	"agenda-api/modules/task/dto"
	"agenda-api/modules/task/service"

	"github.com/labstack/echo/v4"
)

type TaskController struct {
	controller.BaseController
	service *service.TaskService
}

func NewTaskController(service *service.TaskService) *TaskController {
	return &TaskController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

// List returns the caller's tasks
// @Summary List tasks
// @Tags Task
// @Security BearerAuth
// @Produce json
// @Param status query string false "pending or completed"
// @Param priority query int false "0 low, 1 medium, 2 high"
// @Success 200 {array} dto.TaskResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /private/tasks [get]
func (ctrl *TaskController) List(c echo.Context) error {
	priority, appErr := params.OptionalInt(c, "priority")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	filter := dto.TaskFilter{Status: c.QueryParam("status"), Priority: priority}
	tasks, appErr := ctrl.service.List(c.Request().Context(), session.FromContext(c), filter)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, tasks, "Success")
}

// Get returns one task
// @Summary Get task
// @Tags Task
// @Security BearerAuth
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /private/tasks/{id} [get]
func (ctrl *TaskController) Get(c echo.Context) error {
	id, appErr := params.ParseID(c, "id")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	task, appErr := ctrl.service.Get(c.Request().Context(), session.FromContext(c), id)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, task, "Success")
}

// Create adds a task
// @Summary Create task
// @Tags Task
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Task"
// @Success 201 {object} dto.TaskResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/tasks [post]
func (ctrl *TaskController) Create(c echo.Context) error {
	req := new(dto.CreateTaskRequest)
	if err := c.Bind(req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	task, appErr := ctrl.service.Create(c.Request().Context(), session.FromContext(c), req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.CreatedResponse(c, task, "Task created")
}

// Update patches a task
// @Summary Update task
// @Tags Task
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.UpdateTaskRequest true "Fields to change"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /private/tasks/{id} [patch]
func (ctrl *TaskController) Update(c echo.Context) error {
	id, appErr := params.ParseID(c, "id")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	req := new(dto.UpdateTaskRequest)
	if err := c.Bind(req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	task, appErr := ctrl.service.Update(c.Request().Context(), session.FromContext(c), id, req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, task, "Task updated")
}

// Toggle flips a task between pending and completed
// @Summary Toggle task status
// @Tags Task
// @Security BearerAuth
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Router /private/tasks/{id}/toggle [post]
func (ctrl *TaskController) Toggle(c echo.Context) error {
	id, appErr := params.ParseID(c, "id")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	task, appErr := ctrl.service.ToggleStatus(c.Request().Context(), session.FromContext(c), id)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, task, "Task updated")
}

// Delete removes a task
// @Summary Delete task
// @Tags Task
// @Security BearerAuth
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.DeleteTaskResponse
// @Router /private/tasks/{id} [delete]
func (ctrl *TaskController) Delete(c echo.Context) error {
	id, appErr := params.ParseID(c, "id")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	deleted, appErr := ctrl.service.Delete(c.Request().Context(), session.FromContext(c), id)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, dto.DeleteTaskResponse{ID: deleted}, "Task deleted")
}
