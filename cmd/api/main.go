// @title           Watchlist API
// @version         1.0
// @description     Custom field management for bookmarked videos
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/watchlist

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "watchlist-api/docs" // Swagger docs import

	"watchlist-api/internal/config"
	"watchlist-api/internal/database"
	"watchlist-api/internal/job"
	"watchlist-api/internal/metrics"
	"watchlist-api/internal/repository"
	"watchlist-api/internal/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Watchlist API",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
	)

	// Initialize database; a failed first attempt retries in the background
	// so the pod survives a database that comes up late
	dbConfig := database.Config{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	db, err := database.New(dbConfig)
	if err != nil {
		logger.Warn("Failed to connect to database on startup, will retry in background",
			zap.Error(err))
		database.NewAsync(dbConfig, 5*time.Second, logger)
	} else {
		logger.Info("Database connected successfully")

		if err := database.SafeAutoMigrateWithRetry(db, logger, 3); err != nil {
			logger.Warn("Failed to run database migrations", zap.Error(err))
		} else {
			logger.Info("Database migrations completed")
		}
	}

	// Initialize metrics
	m := metrics.NewWithLogger(logger)
	logger.Info("Metrics initialized")

	var statsDone chan struct{}
	var businessCollector *metrics.BusinessMetricsCollector
	if db != nil {
		database.RegisterMetricsCallbacks(db, m)
		statsDone = database.StartDBStatsCollector(db, m)
		businessCollector = metrics.NewBusinessMetricsCollector(db, m, logger)
		businessCollector.Start()
	}

	// Redis is optional; analytics reports are computed fresh without it
	redisClient, err := database.NewRedis(cfg.Redis, logger)
	if err != nil {
		logger.Warn("Failed to connect to Redis, analytics caching disabled", zap.Error(err))
		redisClient = nil
	}

	// Setup router with all dependencies
	r := router.Setup(router.Config{
		DB:                 db,
		Redis:              redisClient,
		Logger:             logger,
		BasePath:           cfg.Server.BasePath,
		Metrics:            m,
		CacheTTL:           cfg.Redis.CacheTTL,
		CORSAllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	// Schedule the orphan field cleanup
	var scheduler *cron.Cron
	if db != nil && cfg.Cleanup.Schedule != "" {
		fieldRepo := repository.NewFieldRepository(db)
		txManager := repository.NewTxManager(db)
		cleanupJob := job.NewCleanupJob(fieldRepo, txManager, m, cfg.Cleanup.MinAge, logger)

		scheduler = cron.New()
		if _, err := scheduler.AddJob(cfg.Cleanup.Schedule, cleanupJob); err != nil {
			logger.Warn("Failed to schedule cleanup job", zap.Error(err))
		} else {
			scheduler.Start()
			logger.Info("Cleanup job scheduled", zap.String("schedule", cfg.Cleanup.Schedule))
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Watchlist API started successfully",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%s%s/swagger/index.html", cfg.Server.Port, cfg.Server.BasePath)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	if scheduler != nil {
		scheduler.Stop()
	}
	if businessCollector != nil {
		businessCollector.Stop()
	}
	if statsDone != nil {
		close(statsDone)
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
