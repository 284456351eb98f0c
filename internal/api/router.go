package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/xplog/xp-tracker/docs"
	"github.com/xplog/xp-tracker/internal/api/handler"
	"github.com/xplog/xp-tracker/internal/api/middleware"
	"github.com/xplog/xp-tracker/internal/core/ports"
	"github.com/xplog/xp-tracker/internal/infrastructure/http/handlers"
)

// Deps carries everything NewRouter needs.
type Deps struct {
	XP         ports.XPService
	Categories ports.CategoryService
	Users      ports.UserService

	JWTSecret string
	TokenTTL  time.Duration
	Logger    zerolog.Logger

	// Checks are the readiness probes of the configured backend.
	Checks map[string]handlers.Check

	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}
	if d.TokenTTL == 0 {
		d.TokenTTL = 24 * time.Hour
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:                 "xp_tracker",
		Registerer:                registerer,
		DoNotUseRequestPathFor404: true,
	}))
	e.Use(middleware.Auth(d.JWTSecret))
	e.Use(middleware.Owner())

	requireOwner := middleware.RequireOwner()

	// --- Categories ---
	categories := handler.NewCategoryHandler(d.Categories)
	e.GET("/categories", categories.List)
	e.POST("/categories", categories.Create, requireOwner)
	e.PUT("/categories", categories.Update)
	e.DELETE("/categories", categories.Delete)

	// --- XP ---
	xp := handler.NewXPHandler(d.XP)
	e.GET("/xp", xp.List)
	e.POST("/xp", xp.Create, requireOwner)
	e.PUT("/xp", xp.Update)
	e.DELETE("/xp", xp.Delete)

	// --- Users and sign-in ---
	users := handler.NewUserHandler(d.Users)
	e.GET("/users", users.Get)
	e.POST("/users", users.Create)
	e.POST("/auth/signin", handler.NewAuthHandler(d.Users, d.JWTSecret, d.TokenTTL).SignIn)

	// --- Operations ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewReadinessHandler(d.Checks).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
