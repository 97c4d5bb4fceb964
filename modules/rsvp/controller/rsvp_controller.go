package controller

import (
	"prikkr/core/controller"
	"prikkr/core/errors"
	"prikkr/modules/rsvp/dto"
	"prikkr/modules/rsvp/service"

	"github.com/labstack/echo/v4"
)

// RsvpController handles response HTTP requests
type RsvpController struct {
	controller.BaseController
	RsvpService service.RsvpServiceInterface
}

// NewRsvpController creates a new controller
func NewRsvpController(svc service.RsvpServiceInterface) *RsvpController {
	return &RsvpController{
		BaseController: controller.NewBaseController(),
		RsvpService:    svc,
	}
}

// SaveResponse handles PUT /events/:id/responses
func (c *RsvpController) SaveResponse(ctx echo.Context) error {
	var req dto.SaveResponseRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.RsvpService.SaveResponse(ctx.Request().Context(), ctx.Param("id"), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Response saved")
}

// ListResponses handles GET /events/:id/responses
func (c *RsvpController) ListResponses(ctx echo.Context) error {
	result, appErr := c.RsvpService.ListResponses(ctx.Request().Context(), ctx.Param("id"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Responses retrieved")
}

// GetResults handles GET /events/:id/results
func (c *RsvpController) GetResults(ctx echo.Context) error {
	result, appErr := c.RsvpService.GetResults(ctx.Request().Context(), ctx.Param("id"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Results computed")
}
