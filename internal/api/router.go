package api

import (
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/gigcircle/gigcircle/docs"
	"github.com/gigcircle/gigcircle/internal/api/handler"
	"github.com/gigcircle/gigcircle/internal/api/middleware"
	"github.com/gigcircle/gigcircle/internal/core/ports"
	"github.com/gigcircle/gigcircle/internal/infrastructure/http/handlers"
)

// Deps is everything the router wires into handlers.
type Deps struct {
	Auth     ports.AuthService
	Sessions ports.SessionService
	Profiles ports.ProfileService
	Catalog  ports.CatalogService
	Media    ports.MediaStorage

	// Readiness lists the dependencies /health/ready pings.
	Readiness map[string]handlers.Pinger

	Cookie handler.CookieConfig
	// MaxUploadMB bounds request bodies on the upload routes.
	MaxUploadMB int64
	// UploadDir is served under /uploads. Empty when media lives in S3.
	UploadDir string

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = handler.NewValidator()

	renderer, err := handler.NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer

	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}
	promMW, err := echoprometheus.MiddlewareConfig{
		Subsystem:  "gigcircle",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}.ToMiddleware()
	if err != nil {
		return nil, fmt.Errorf("prometheus middleware: %w", err)
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(promMW)
	e.Use(middleware.Session(d.Sessions, d.Cookie, d.Log))

	// --- Handlers ---
	pages := handler.NewPageHandler()
	auth := handler.NewAuthHandler(d.Auth, d.Sessions, d.Media, d.Cookie, d.Log)
	profile := handler.NewProfileHandler(d.Profiles)
	catalog := handler.NewCatalogHandler(d.Catalog, d.Media, d.Log)

	uploadLimit := echomiddleware.BodyLimit(fmt.Sprintf("%dM", max(d.MaxUploadMB, 1)))

	// --- Pages ---
	e.GET("/", pages.Index)
	e.GET("/about", pages.About)

	// --- Auth routes ---
	e.GET("/login", auth.ShowLogin)
	e.POST("/login", auth.Login)
	e.GET("/register", auth.ShowRegister)
	e.POST("/register", auth.Register, uploadLimit)
	e.GET("/logout", auth.Logout)

	// --- Profile (login required) ---
	e.GET("/profile", profile.Profile, middleware.RequireAuth("/login"))

	// --- Catalog ---
	e.GET("/artists", catalog.Artists)
	e.GET("/bands", catalog.Bands)
	e.GET("/events", catalog.Events)
	e.POST("/add-event", catalog.AddEvent, uploadLimit)

	if d.UploadDir != "" {
		e.Static("/uploads", d.UploadDir)
	}

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info().
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
