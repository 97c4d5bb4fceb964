package participant

import (
	"prikkr/core/cache"
	"prikkr/core/middleware"
	"prikkr/core/utils"
	"prikkr/modules/participant/controller"
	"prikkr/modules/participant/repository"
	"prikkr/modules/participant/router"
	"prikkr/modules/participant/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the participant module and registers routes. The
// returned service is shared with the auth module (connecting calendars)
// and the calendar module (resync).
func Init(e *echo.Echo, c cache.Cache, mw *middleware.Middleware, sealer *utils.TokenSealer) service.ParticipantServiceInterface {
	repo := repository.NewParticipantRepository(c)
	svc := service.NewParticipantService(repo, sealer)
	ctrl := controller.NewParticipantController(svc)
	rtr := router.NewParticipantRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
