package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Owner falls back to the owner-id header when Auth did not resolve an owner.
// It never rejects; handlers decide whether an owner is required.
func Owner() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if owner, _ := c.Get(OwnerKey).(string); owner == "" {
				if h := strings.TrimSpace(c.Request().Header.Get(OwnerHeader)); h != "" {
					c.Set(OwnerKey, h)
				}
			}
			return next(c)
		}
	}
}

// RequireOwner rejects requests that carry no owner identity.
func RequireOwner() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if owner, _ := c.Get(OwnerKey).(string); owner == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing owner identity"})
			}
			return next(c)
		}
	}
}
