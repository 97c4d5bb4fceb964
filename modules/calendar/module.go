package calendar

import (
	"time"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"

	"prikkr/core/cache"
	"prikkr/core/config"
	"prikkr/core/middleware"
	"prikkr/modules/calendar/controller"
	"prikkr/modules/calendar/router"
	"prikkr/modules/calendar/service"
	"prikkr/modules/calendar/tasks"
	eventrepository "prikkr/modules/event/repository"
	participantentity "prikkr/modules/participant/entity"
	participantservice "prikkr/modules/participant/service"
	rsvpservice "prikkr/modules/rsvp/service"
)

// Init initializes the calendar module: the resync route plus the task
// handler the worker registers.
func Init(e *echo.Echo, c cache.Cache, cfg *config.Config, mw *middleware.Middleware, loc *time.Location, participants participantservice.ParticipantServiceInterface, rsvp rsvpservice.RsvpServiceInterface, tasksClient *asynq.Client) *tasks.Handler {
	fetchers := map[string]service.BusyFetcher{
		participantentity.ProviderGoogle:    service.NewGoogleBusyFetcher(cfg.Google),
		participantentity.ProviderMicrosoft: service.NewOutlookBusyFetcher(cfg.AzureAD),
	}

	metaRepo := eventrepository.NewEventRepository(c)
	svc := service.NewSyncService(metaRepo, participants, rsvp, fetchers, loc)
	ctrl := controller.NewCalendarController(tasksClient)
	rtr := router.NewCalendarRouter(ctrl)

	rtr.Setup(e, mw)
	return tasks.NewHandler(svc)
}
