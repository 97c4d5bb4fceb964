package controller

import (
	"prikkr/core/controller"
	"prikkr/core/errors"
	"prikkr/modules/event/dto"
	"prikkr/modules/event/service"

	"github.com/labstack/echo/v4"
)

// EventController handles event HTTP requests
type EventController struct {
	controller.BaseController
	EventService service.EventServiceInterface
}

// NewEventController creates a new controller
func NewEventController(svc service.EventServiceInterface) *EventController {
	return &EventController{
		BaseController: controller.NewBaseController(),
		EventService:   svc,
	}
}

// CreateEvent handles POST /events
func (c *EventController) CreateEvent(ctx echo.Context) error {
	var req dto.CreateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.EventService.CreateEvent(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Event created successfully")
}

// GetEvent handles GET /events/:id
func (c *EventController) GetEvent(ctx echo.Context) error {
	result, appErr := c.EventService.GetEvent(ctx.Request().Context(), ctx.Param("id"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Event retrieved successfully")
}

// FinalizeEvent handles POST /events/:id/finalize
func (c *EventController) FinalizeEvent(ctx echo.Context) error {
	var req dto.FinalizeEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.EventService.FinalizeEvent(ctx.Request().Context(), ctx.Param("id"), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Final date saved")
}

// DeleteEvent handles DELETE /events/:id
func (c *EventController) DeleteEvent(ctx echo.Context) error {
	creatorEmail := ctx.QueryParam("creatorEmail")
	if appErr := c.EventService.DeleteEvent(ctx.Request().Context(), ctx.Param("id"), creatorEmail); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Event deleted")
}

// Cleanup handles POST /cron/cleanup
func (c *EventController) Cleanup(ctx echo.Context) error {
	result, appErr := c.EventService.CleanupExpired(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Cleanup completed")
}
