package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// OwnerKey is the echo context key holding the resolved owner id.
const OwnerKey = "owner_id"

// OwnerHeader carries the owner id when no bearer token is sent.
const OwnerHeader = "owner-id"

// Auth validates an optional bearer token and stores its owner_id claim in the
// context. Requests without an Authorization header pass through; a malformed
// or invalid token is rejected.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}
			if jwtSecret == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token authentication is disabled")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			owner, _ := claims["owner_id"].(string)
			if owner == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing owner identity")
			}
			c.Set(OwnerKey, owner)

			return next(c)
		}
	}
}
