package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xplog/xp-tracker/internal/api/metrics"
	"github.com/xplog/xp-tracker/internal/core/ports"
)

// UserHandler handles HTTP requests for user records.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Get handles GET /users?email=.
//
// @Summary      Find a user by email
// @Tags         users
// @Produce      json
// @Param        email  query     string  true  "Email address"
// @Success      200    {object}  userResponse
// @Failure      400    {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) Get(c echo.Context) error {
	email, err := requiredQuery(c, "email")
	if err != nil {
		return err
	}
	u := h.service.GetUserByEmail(c.Request().Context(), email)
	if u == nil {
		return c.JSON(http.StatusOK, nil)
	}
	return c.JSON(http.StatusOK, toUserResponse(*u))
}

// Create handles POST /users.
//
// @Summary      Register a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      userRequest  true  "User"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req userRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	u, err := h.service.CreateUser(c.Request().Context(), req.Email, req.Name)
	if err != nil {
		return err
	}
	metrics.UsersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toUserResponse(u))
}
