package router

import (
	"prikkr/core/middleware"
	"prikkr/modules/participant/controller"

	"github.com/labstack/echo/v4"
)

// ParticipantRouter handles calendar connection routes
type ParticipantRouter struct {
	ParticipantController *controller.ParticipantController
}

// NewParticipantRouter creates a new router
func NewParticipantRouter(participantController *controller.ParticipantController) *ParticipantRouter {
	return &ParticipantRouter{ParticipantController: participantController}
}

// Setup registers participant routes
func (r *ParticipantRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	participants := v1.Group("/events/:id/participants")
	participants.GET("", r.ParticipantController.ListParticipants)
	participants.PATCH("/me/sync", r.ParticipantController.SetSync, mw.RequireSession())
	participants.DELETE("/me", r.ParticipantController.Disconnect, mw.RequireSession())
}
