package handler

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/xplog/xp-tracker/internal/core/domain"
	"github.com/xplog/xp-tracker/internal/core/ports"
)

// AuthHandler signs users in by email and, when a secret is configured,
// issues a bearer token whose owner_id claim is the email.
type AuthHandler struct {
	users     ports.UserService
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthHandler(users ports.UserService, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL, now: time.Now}
}

// SignIn handles POST /auth/signin.
//
// @Summary      Sign in with an email, creating the user on first use
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      userRequest  true  "Identity"
// @Success      200   {object}  signinResponse
// @Failure      400   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /auth/signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req userRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	u, err := h.users.SignIn(c.Request().Context(), req.Email, req.Name)
	if err != nil {
		return err
	}

	resp := signinResponse{User: toUserResponse(u)}
	if h.jwtSecret != "" {
		token, expiresAt, err := h.issueToken(u)
		if err != nil {
			return err
		}
		resp.Token = token
		resp.ExpiresAt = domain.FormatTimestamp(expiresAt)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) issueToken(u domain.User) (string, time.Time, error) {
	now := h.now()
	expiresAt := now.Add(h.tokenTTL)
	claims := jwt.MapClaims{
		"sub":      u.ID,
		"owner_id": u.Email,
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
