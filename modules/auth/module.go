package auth

import (
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"

	"prikkr/core/cache"
	"prikkr/core/config"
	"prikkr/core/middleware"
	"prikkr/modules/auth/controller"
	"prikkr/modules/auth/repository"
	"prikkr/modules/auth/router"
	"prikkr/modules/auth/service"
	participantservice "prikkr/modules/participant/service"
)

// Init initializes the auth module and registers routes
func Init(e *echo.Echo, c cache.Cache, cfg *config.Config, mw *middleware.Middleware, participants participantservice.ParticipantServiceInterface, tasksClient *asynq.Client) {
	repo := repository.NewAuthRepository(c)
	svc := service.NewAuthService(repo, participants, cfg)
	ctrl := controller.NewAuthController(svc, tasksClient, cfg.Server.BaseURL)
	rtr := router.NewAuthRouter(ctrl)

	rtr.Setup(e, mw)
}
