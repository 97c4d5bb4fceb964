package controller

import (
	"strings"

	"prikkr/core/constants"
	"prikkr/core/controller"
	"prikkr/core/errors"
	"prikkr/core/utils"
	"prikkr/modules/participant/dto"
	"prikkr/modules/participant/service"

	"github.com/labstack/echo/v4"
)

// ParticipantController handles calendar connection HTTP requests
type ParticipantController struct {
	controller.BaseController
	ParticipantService service.ParticipantServiceInterface
}

// NewParticipantController creates a new controller
func NewParticipantController(svc service.ParticipantServiceInterface) *ParticipantController {
	return &ParticipantController{
		BaseController:     controller.NewBaseController(),
		ParticipantService: svc,
	}
}

// sessionEmail extracts the signed-in email, or empty when signed out
func sessionEmail(ctx echo.Context) string {
	claims, _ := ctx.Get(constants.ContextSessionClaims).(*utils.SessionClaims)
	if claims == nil {
		return ""
	}
	return strings.ToLower(claims.Email)
}

// ListParticipants handles GET /events/:id/participants
func (c *ParticipantController) ListParticipants(ctx echo.Context) error {
	result, appErr := c.ParticipantService.ListParticipants(ctx.Request().Context(), ctx.Param("id"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Participants retrieved")
}

// SetSync handles PATCH /events/:id/participants/me/sync. Participants can
// only toggle their own connection.
func (c *ParticipantController) SetSync(ctx echo.Context) error {
	email := sessionEmail(ctx)
	if email == "" {
		return c.Unauthorized(errors.ErrUnauthorized, "Session required")
	}

	var req dto.SetSyncRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.ParticipantService.SetSyncEnabled(ctx.Request().Context(), ctx.Param("id"), email, req.Enabled)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Sync setting updated")
}

// Disconnect handles DELETE /events/:id/participants/me
func (c *ParticipantController) Disconnect(ctx echo.Context) error {
	email := sessionEmail(ctx)
	if email == "" {
		return c.Unauthorized(errors.ErrUnauthorized, "Session required")
	}

	if appErr := c.ParticipantService.RemoveParticipant(ctx.Request().Context(), ctx.Param("id"), email); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Calendar disconnected")
}
