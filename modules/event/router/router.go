package router

import (
	"prikkr/core/middleware"
	"prikkr/modules/event/controller"

	"github.com/labstack/echo/v4"
)

// EventRouter handles event routes
type EventRouter struct {
	EventController *controller.EventController
}

// NewEventRouter creates a new router
func NewEventRouter(eventController *controller.EventController) *EventRouter {
	return &EventRouter{EventController: eventController}
}

// Setup registers event routes
func (r *EventRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	events := v1.Group("/events")
	events.POST("", r.EventController.CreateEvent)
	events.GET("/:id", r.EventController.GetEvent)
	events.POST("/:id/finalize", r.EventController.FinalizeEvent)
	events.DELETE("/:id", r.EventController.DeleteEvent)

	cron := v1.Group("/cron", mw.CronGuard())
	cron.POST("/cleanup", r.EventController.Cleanup)
}
