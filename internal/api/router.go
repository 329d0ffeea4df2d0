package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/zanith/zanith-api/docs"
	"github.com/zanith/zanith-api/internal/api/handler"
	"github.com/zanith/zanith-api/internal/api/middleware"
	"github.com/zanith/zanith-api/internal/core/ports"
)

const metricsSubsystem = "zanith"

// Deps carries everything the router needs to register routes.
type Deps struct {
	Auth   ports.AuthService
	Songs  ports.SongService
	Upload ports.UploadService
	Checks []handler.DependencyCheck

	// Registry receives the HTTP metrics. Nil means the default registry,
	// which also holds the service counters.
	Registry *prometheus.Registry

	Log            zerolog.Logger
	CORSOrigins    []string
	CookieSecure   bool
	RequestTimeout time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAccept, echo.HeaderOrigin},
		AllowCredentials: true,
	}))
	if deps.RequestTimeout > 0 {
		e.Use(echomiddleware.ContextTimeout(deps.RequestTimeout))
	}
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricsSubsystem,
		Registerer: registerer,
	}))

	// --- Handlers ---
	healthHandler := handler.NewHealthHandler(deps.Checks...)
	authHandler := handler.NewAuthHandler(deps.Auth, handler.CookiePolicy{Secure: deps.CookieSecure})
	songHandler := handler.NewSongHandler(deps.Songs)
	uploadHandler := handler.NewUploadHandler(deps.Upload)

	// --- Operational routes (no session required) ---
	e.GET("/", healthHandler.Index)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Account routes ---
	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)

	// --- Session-protected routes ---
	// Attached per route: a root group with middleware would also answer
	// unknown paths with 403 instead of 404.
	session := middleware.Session(deps.Auth)
	e.GET("/root", authHandler.Root, session)
	e.POST("/logout", authHandler.Logout, middleware.OptionalSession(deps.Auth))

	e.GET("/home", songHandler.Home, session)
	e.GET("/profile/:artistName", songHandler.Profile, session)
	e.GET("/search/:result", songHandler.Search, session)
	e.GET("/song/:songName", songHandler.Get, session)
	e.POST("/listen", songHandler.Listen, session)
	e.POST("/like", songHandler.Like, session)
	e.POST("/comment", songHandler.Comment, session)
	e.POST("/deleteComment", songHandler.DeleteComment, session)

	e.GET("/signature", uploadHandler.Signature, session)
	e.POST("/upload", uploadHandler.Upload, session)

	return e
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
