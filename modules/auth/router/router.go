package router

import (
	"prikkr/core/middleware"
	"prikkr/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

// AuthRouter handles OAuth routes
type AuthRouter struct {
	AuthController *controller.AuthController
}

// NewAuthRouter creates a new router
func NewAuthRouter(authController *controller.AuthController) *AuthRouter {
	return &AuthRouter{AuthController: authController}
}

// Setup registers auth routes
func (r *AuthRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.GET("/:provider/login", r.AuthController.Login)
	auth.GET("/:provider/callback", r.AuthController.Callback)
	auth.GET("/me", r.AuthController.Me, mw.RequireSession())
	auth.POST("/logout", r.AuthController.Logout)
}
