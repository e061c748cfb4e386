package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"hireboard-api/internal/api/handlers"
	"hireboard-api/internal/api/middleware"
	"hireboard-api/internal/auth"
	"hireboard-api/internal/config"
	"hireboard-api/internal/converter"
	"hireboard-api/internal/store"
)

// Dependencies carries everything the route handlers need.
type Dependencies struct {
	Config     *config.Config
	Sessions   auth.SessionProvider
	AuthClient *auth.SupabaseClient
	Records    store.RecordStore
	Extractor  converter.TextExtractor
	Documents  handlers.DocumentStore
	UploadRL   *middleware.UploadRateLimiter

	// ReadinessChecks cover optional dependencies (session cache, document
	// storage) in the readiness probe.
	ReadinessChecks map[string]handlers.ReadinessCheck
}

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig(deps.Config.Server.AllowedOrigins))
	e.Use(middleware.RequestValidation(deps.Config.Uploads.MaxSize))
	e.Use(middleware.TimeoutConfig(deps.Config.Server.ReadTimeout, deps.Config.Uploads.ParseTimeout))

	requireAuth := middleware.RequireAuth(deps.Sessions)

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(deps.Records, deps.ReadinessChecks))
		health.GET("/live", handlers.LivenessHandler)
	}

	// Status route
	e.GET("/status", handlers.StatusHandler)

	// Auth pass-through routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", handlers.SignUpHandler(deps.AuthClient))
		authGroup.POST("/signin", handlers.SignInHandler(deps.AuthClient))
	}

	// Job description routes
	e.POST("/job-descriptions", handlers.CreateJobDescriptionHandler(deps.Records), requireAuth)
	e.GET("/job-descriptions", handlers.ListJobDescriptionsHandler(deps.Records), requireAuth)
	e.GET("/job-descriptions/stats", handlers.JobDescriptionStatsHandler(deps.Records), requireAuth)

	// Document parse route
	parseMiddleware := []echo.MiddlewareFunc{requireAuth}
	if deps.UploadRL != nil {
		parseMiddleware = append(parseMiddleware, deps.UploadRL.Middleware())
	}
	e.POST("/parse-job-file", handlers.ParseJobFileHandler(deps.Config, deps.Extractor, deps.Documents), parseMiddleware...)

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "Hireboard Recruitment API",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
