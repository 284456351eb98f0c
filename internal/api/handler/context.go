package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/xplog/xp-tracker/internal/api/middleware"
)

// ctxOwner returns the owner resolved by the Owner middleware, failing fast
// with 401 before any service call when there is none.
func ctxOwner(c echo.Context) (string, error) {
	owner, _ := c.Get(middleware.OwnerKey).(string)
	if owner == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing owner identity")
	}
	return owner, nil
}

// requiredQuery reads a mandatory query parameter.
func requiredQuery(c echo.Context, name string) (string, error) {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, name+" query parameter is required")
	}
	return v, nil
}

// splitList parses a comma separated query value, dropping blanks.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
