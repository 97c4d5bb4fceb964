package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"prikkr/core/config"
	"prikkr/core/constants"
	"prikkr/core/logger"
	"prikkr/core/utils"
)

// SessionCookie carries the session JWT for browser clients; API clients
// send it as a bearer token instead.
const SessionCookie = "prikkr_session"

// Middleware bundles the route guards
type Middleware struct {
	cfg *config.Config
}

// New creates the middleware set
func New(cfg *config.Config) *Middleware {
	return &Middleware{cfg: cfg}
}

// RequireSession rejects requests without a valid session token
func (m *Middleware) RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := m.sessionClaims(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "session required")
			}
			c.Set(constants.ContextSessionClaims, claims)
			return next(c)
		}
	}
}

// OptionalSession attaches session claims when present but never rejects.
// Event pages work signed out; calendar sync needs the session.
func (m *Middleware) OptionalSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims := m.sessionClaims(c); claims != nil {
				c.Set(constants.ContextSessionClaims, claims)
			}
			return next(c)
		}
	}
}

// CronGuard protects maintenance endpoints with the shared cron secret
func (m *Middleware) CronGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			secret := m.cfg.Auth.CronSecret
			given := c.Request().Header.Get("X-Cron-Secret")
			if secret == "" || subtle.ConstantTimeCompare([]byte(given), []byte(secret)) != 1 {
				logger.Warn("Middleware:CronGuard:rejected", "path", c.Path())
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid cron secret")
			}
			return next(c)
		}
	}
}

func (m *Middleware) sessionClaims(c echo.Context) *utils.SessionClaims {
	token := ""
	if auth := c.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(auth, "Bearer ") {
		token = strings.TrimPrefix(auth, "Bearer ")
	} else if cookie, err := c.Cookie(SessionCookie); err == nil {
		token = cookie.Value
	}
	if token == "" {
		return nil
	}

	claims, err := utils.ParseSessionToken(m.cfg.Auth.JWTSecret, token)
	if err != nil {
		logger.Debug("Middleware:sessionClaims:invalid", "error", err)
		return nil
	}
	return claims
}
