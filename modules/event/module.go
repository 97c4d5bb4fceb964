package event

import (
	"time"

	"prikkr/core/cache"
	"prikkr/core/config"
	"prikkr/core/middleware"
	"prikkr/modules/event/controller"
	"prikkr/modules/event/repository"
	"prikkr/modules/event/router"
	"prikkr/modules/event/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the event module and registers routes. The returned
// service is shared with the task worker for the scheduled cleanup.
func Init(e *echo.Echo, c cache.Cache, cfg *config.Config, mw *middleware.Middleware, loc *time.Location, mailer service.MailDispatcher, responders service.ResponderSource) service.EventServiceInterface {
	repo := repository.NewEventRepository(c)
	svc := service.NewEventService(repo, mailer, responders, loc, cfg.Server.BaseURL)
	ctrl := controller.NewEventController(svc)
	rtr := router.NewEventRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
