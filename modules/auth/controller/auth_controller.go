package controller

import (
	"net/http"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"

	"prikkr/core/constants"
	"prikkr/core/controller"
	"prikkr/core/errors"
	"prikkr/core/logger"
	"prikkr/core/middleware"
	"prikkr/core/utils"
	"prikkr/modules/auth/dto"
	"prikkr/modules/auth/service"
	"prikkr/modules/calendar/tasks"
)

// AuthController handles the OAuth endpoints
type AuthController struct {
	controller.BaseController
	AuthService  service.AuthServiceInterface
	Tasks        *asynq.Client
	baseURL      string
	secureCookie bool
}

// NewAuthController creates a new controller
func NewAuthController(svc service.AuthServiceInterface, tasksClient *asynq.Client, baseURL string) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		AuthService:    svc,
		Tasks:          tasksClient,
		baseURL:        strings.TrimRight(baseURL, "/"),
		secureCookie:   strings.HasPrefix(baseURL, "https://"),
	}
}

// Login handles GET /auth/:provider/login?event={id}
func (c *AuthController) Login(ctx echo.Context) error {
	authURL, appErr := c.AuthService.BeginLogin(ctx.Request().Context(), ctx.Param("provider"), ctx.QueryParam("event"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return ctx.Redirect(http.StatusFound, authURL)
}

// Callback handles GET /auth/:provider/callback. On success the browser
// gets a session cookie and lands back on the event page; the first
// calendar fetch is already queued.
func (c *AuthController) Callback(ctx echo.Context) error {
	if errParam := ctx.QueryParam("error"); errParam != "" {
		logger.Warn("AuthController:Callback:denied", "provider", ctx.Param("provider"), "error", errParam)
		return ctx.Redirect(http.StatusFound, c.baseURL+"/?auth=denied")
	}

	result, appErr := c.AuthService.HandleCallback(ctx.Request().Context(),
		ctx.Param("provider"), ctx.QueryParam("code"), ctx.QueryParam("state"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	ctx.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    result.SessionToken,
		Path:     "/",
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		HttpOnly: true,
		Secure:   c.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	if task, err := tasks.NewBusyResyncTask(result.EventID, true); err == nil {
		if _, err := c.Tasks.EnqueueContext(ctx.Request().Context(), task); err != nil {
			logger.Warn("AuthController:Callback:enqueue", "eventId", result.EventID, "error", err)
		}
	}

	return ctx.Redirect(http.StatusFound, c.baseURL+"/"+result.EventID)
}

// Me handles GET /auth/me
func (c *AuthController) Me(ctx echo.Context) error {
	claims, _ := ctx.Get(constants.ContextSessionClaims).(*utils.SessionClaims)
	if claims == nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Session required")
	}
	return c.SuccessResponse(ctx, &dto.SessionResponse{
		Email:    claims.Email,
		Name:     claims.Name,
		Provider: claims.Provider,
	}, "Session active")
}

// Logout handles POST /auth/logout
func (c *AuthController) Logout(ctx echo.Context) error {
	ctx.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return c.SuccessResponse(ctx, nil, "Signed out")
}
