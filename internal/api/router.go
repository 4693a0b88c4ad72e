package api

import (
	"sync"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/gestorfincas/gestor-fincas-api/internal/api/handler"
	"github.com/gestorfincas/gestor-fincas-api/internal/api/middleware"
	"github.com/gestorfincas/gestor-fincas-api/internal/core/service"
	"github.com/gestorfincas/gestor-fincas-api/internal/infrastructure/config"
	"github.com/gestorfincas/gestor-fincas-api/internal/infrastructure/db/sqlite"
)

var (
	promOnce       sync.Once
	promMiddleware echo.MiddlewareFunc
	promHandler    echo.HandlerFunc
)

// prometheus returns the shared request-metrics middleware and /metrics
// handler. Built once: echoprometheus registers its collectors with the
// default registry, which rejects duplicate registration.
func prometheus() (echo.MiddlewareFunc, echo.HandlerFunc) {
	promOnce.Do(func() {
		promMiddleware = echoprometheus.NewMiddleware("gestorfincas")
		promHandler = echoprometheus.NewHandler()
	})
	return promMiddleware, promHandler
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(store *sqlite.Store, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())

	requestMetrics, metricsHandler := prometheus()
	e.Use(requestMetrics)

	// --- Dependencies ---
	userRepo := sqlite.NewUserRepository(store)
	diagRepo := sqlite.NewDiagnosticsRepository(store)
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	loginService := service.NewLoginService(userRepo, service.NewPlaintextVerifier(), tokens)

	authHandler := handler.NewAuthHandler(loginService)
	profileHandler := handler.NewProfileHandler()
	healthHandler := handler.NewHealthHandler()
	dbTestHandler := handler.NewDBTestHandler(diagRepo)
	authMiddleware := middleware.NewAuthMiddleware(tokens)

	// The identity is derived once per request, on every route; guards then
	// branch on its presence.
	e.Use(authMiddleware.Derive())

	// --- Public routes ---
	e.GET("/", healthHandler.Root)
	e.GET("/api/health", healthHandler.Liveness)
	e.GET("/api/test-db", dbTestHandler.TestDB)
	e.POST("/api/auth/login", authHandler.Login)
	e.GET("/metrics", metricsHandler)

	// --- Protected routes ---
	e.GET("/api/profile", profileHandler.Profile, authMiddleware.RequireAuth())

	return e
}
