package router

import (
	"prikkr/core/middleware"
	"prikkr/modules/calendar/controller"

	"github.com/labstack/echo/v4"
)

// CalendarRouter handles resync routes
type CalendarRouter struct {
	CalendarController *controller.CalendarController
}

// NewCalendarRouter creates a new router
func NewCalendarRouter(calendarController *controller.CalendarController) *CalendarRouter {
	return &CalendarRouter{CalendarController: calendarController}
}

// Setup registers calendar routes
func (r *CalendarRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	v1.POST("/events/:id/resync", r.CalendarController.Resync)
}
