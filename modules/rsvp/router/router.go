package router

import (
	"prikkr/core/middleware"
	"prikkr/modules/rsvp/controller"

	"github.com/labstack/echo/v4"
)

// RsvpRouter handles response routes
type RsvpRouter struct {
	RsvpController *controller.RsvpController
}

// NewRsvpRouter creates a new router
func NewRsvpRouter(rsvpController *controller.RsvpController) *RsvpRouter {
	return &RsvpRouter{RsvpController: rsvpController}
}

// Setup registers response routes
func (r *RsvpRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	events := v1.Group("/events/:id")
	events.PUT("/responses", r.RsvpController.SaveResponse)
	events.GET("/responses", r.RsvpController.ListResponses)
	events.GET("/results", r.RsvpController.GetResults)
}
