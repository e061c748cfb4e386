package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"hireboard-api/internal/api/handlers"
	"hireboard-api/internal/api/middleware"
	"hireboard-api/internal/api/routes"
	"hireboard-api/internal/auth"
	"hireboard-api/internal/config"
	"hireboard-api/internal/converter"
	"hireboard-api/internal/logging"
	"hireboard-api/internal/store"
	"hireboard-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting Hireboard Recruitment API")

	ctx := context.Background()

	// Connect to the record store
	records, err := store.NewPostgresStore(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to connect to record store", map[string]interface{}{"error": err.Error()})
	}
	defer records.Close()

	// Session provider: hosted auth, optionally fronted by a Redis cache
	authClient := auth.NewSupabaseClient(cfg)
	var sessions auth.SessionProvider = authClient

	// Optional dependencies report through the readiness probe
	readinessChecks := make(map[string]handlers.ReadinessCheck)

	if cfg.Redis.Enabled {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			logger.Warn("Invalid Redis URL, session caching disabled", map[string]interface{}{"error": err.Error()})
		} else {
			if cfg.Redis.Password != "" {
				opts.Password = cfg.Redis.Password
			}
			opts.DB = cfg.Redis.DB
			opts.DialTimeout = cfg.Redis.Timeout

			redisClient := redis.NewClient(opts)
			pingCtx, cancel := context.WithTimeout(ctx, cfg.Redis.Timeout)
			if err := redisClient.Ping(pingCtx).Err(); err != nil {
				logger.Warn("Redis unreachable, session caching disabled", map[string]interface{}{"error": err.Error()})
				redisClient.Close()
			} else {
				sessions = auth.NewCachedSessionProvider(authClient, redisClient, cfg.Auth.SessionCacheTTL)
				readinessChecks["redis"] = func(ctx context.Context) error {
					return redisClient.Ping(ctx).Err()
				}
				defer redisClient.Close()
			}
			cancel()
		}
	}

	// Optional document storage
	var documents handlers.DocumentStore
	if cfg.SpacesConfigured() {
		spaces, err := utils.NewSpacesClient(cfg)
		if err != nil {
			logger.Warn("Document storage unavailable", map[string]interface{}{"error": err.Error()})
		} else {
			documents = spaces
			readinessChecks["spaces"] = func(ctx context.Context) error {
				if !spaces.IsHealthy() {
					return fmt.Errorf("bucket %s unreachable", cfg.DigitalOcean.Spaces.BucketName)
				}
				return nil
			}
		}
	}

	// Per-identity parse rate limiter
	uploadRL := middleware.NewUploadRateLimiter(cfg.Uploads.RateLimit, cfg.Uploads.RateBurst)
	defer uploadRL.Stop()

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	routes.SetupRoutes(e, routes.Dependencies{
		Config:     cfg,
		Sessions:   sessions,
		AuthClient: authClient,
		Records:    records,
		Extractor:  converter.NewDocxExtractor(),
		Documents:  documents,
		UploadRL:   uploadRL,

		ReadinessChecks: readinessChecks,
	})

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Server shutdown complete")
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.WithField("address", address).Info("Server starting")

	if err := e.Start(address); err != nil {
		logger.Error("Server stopped", map[string]interface{}{"error": err.Error()})
	}
}
