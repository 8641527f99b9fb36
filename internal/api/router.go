package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/pagehub/pages-api/internal/api/handler"
	"github.com/pagehub/pages-api/internal/api/middleware"
	"github.com/pagehub/pages-api/internal/auth/authz"
	"github.com/pagehub/pages-api/internal/auth/token"
	"github.com/pagehub/pages-api/internal/core/domain"
)

// RouterConfig carries everything the HTTP surface needs, already built.
type RouterConfig struct {
	Log    zerolog.Logger
	Tokens *token.Service
	Gate   *authz.Gate
	Auth   *handler.AuthHandler
	Pages  *handler.PageHandler
	Health *handler.HealthHandler
}

// NewRouter wires middleware and routes onto a fresh echo instance.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = ErrorHandler(cfg.Log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(cfg.Log))
	e.Use(echoprometheus.NewMiddleware("pages_api"))

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/health/live", cfg.Health.Live)
	e.GET("/health/ready", cfg.Health.Ready)

	users := e.Group("/api/user")
	users.POST("/register", cfg.Auth.Register)
	users.POST("/login", cfg.Auth.Login)

	adminOnly := middleware.Require(cfg.Gate, authz.RequireRoles(domain.RoleAdmin))

	pages := e.Group("/api/pages")
	pages.POST("/new", cfg.Pages.Create, middleware.Auth(cfg.Tokens), adminOnly)
	pages.PUT("/:id", cfg.Pages.Update, middleware.Auth(cfg.Tokens), adminOnly)
	pages.DELETE("/:id", cfg.Pages.Delete, middleware.Auth(cfg.Tokens), adminOnly)

	// the single page view is deliberately public; the collection listing
	// carries no explicit requirement and falls to the gate's default policy
	pages.GET("/:id", cfg.Pages.Get, middleware.OptionalAuth(cfg.Tokens),
		middleware.Require(cfg.Gate, authz.AllowAnonymous()))
	pages.GET("", cfg.Pages.List, middleware.OptionalAuth(cfg.Tokens),
		middleware.Require(cfg.Gate, authz.Requirement{}))

	return e
}

// requestLogger emits one structured line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info().
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
