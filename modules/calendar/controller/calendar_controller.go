package controller

import (
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"

	"prikkr/core/controller"
	"prikkr/core/errors"
	"prikkr/modules/calendar/dto"
	"prikkr/modules/calendar/tasks"
)

// CalendarController handles resync HTTP requests
type CalendarController struct {
	controller.BaseController
	Tasks *asynq.Client
}

// NewCalendarController creates a new controller
func NewCalendarController(tasksClient *asynq.Client) *CalendarController {
	return &CalendarController{
		BaseController: controller.NewBaseController(),
		Tasks:          tasksClient,
	}
}

// Resync handles POST /events/:id/resync. The fetch runs on the worker; the
// page polls results afterwards.
func (c *CalendarController) Resync(ctx echo.Context) error {
	task, err := tasks.NewBusyResyncTask(ctx.Param("id"), ctx.QueryParam("force") == "true")
	if err != nil {
		return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrInternalServer, "Failed to build resync task", err))
	}

	if _, err := c.Tasks.EnqueueContext(ctx.Request().Context(), task); err != nil {
		return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrInternalServer, "Failed to enqueue resync", err))
	}

	return c.SuccessResponse(ctx, &dto.ResyncResponse{Queued: true}, "Resync queued")
}
