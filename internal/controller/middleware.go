package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	ctx "github.com/presensi-sales/backend/internal/context"
	"github.com/presensi-sales/backend/internal/service"
	"github.com/sirupsen/logrus"
)

const sessionRequiredMessage = "Silakan login terlebih dahulu"

// RequireSession rejects requests to admin routes that carry no valid login cookie.
func RequireSession(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(service.CookieToken)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, sessionRequiredMessage)
			}

			session, err := authService.ValidateSession(c.Request().Context(), cookie.Value)
			if err != nil {
				logrus.Debugf("Rejected session for %s: %v", c.Request().URL.Path, err)
				return echo.NewHTTPError(http.StatusUnauthorized, sessionRequiredMessage)
			}

			c.SetRequest(c.Request().WithContext(ctx.WithSession(c.Request().Context(), session)))
			return next(c)
		}
	}
}
