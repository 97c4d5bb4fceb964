package rsvp

import (
	"time"

	"prikkr/core/cache"
	"prikkr/core/middleware"
	eventrepository "prikkr/modules/event/repository"
	"prikkr/modules/rsvp/controller"
	"prikkr/modules/rsvp/repository"
	"prikkr/modules/rsvp/router"
	"prikkr/modules/rsvp/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the rsvp module and registers routes. The returned
// service is shared with the event module (final-date recipients) and the
// calendar module (sync writes).
func Init(e *echo.Echo, c cache.Cache, mw *middleware.Middleware, loc *time.Location, mailer service.MailDispatcher) service.RsvpServiceInterface {
	repo := repository.NewRsvpRepository(c)
	metaRepo := eventrepository.NewEventRepository(c)
	svc := service.NewRsvpService(repo, metaRepo, mailer, loc)
	ctrl := controller.NewRsvpController(svc)
	rtr := router.NewRsvpRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
