package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chordal/inference/internal/classify"
	"github.com/chordal/inference/internal/config"
	"github.com/chordal/inference/internal/handlers"
	"github.com/chordal/inference/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger with stdout sync
	zapConfig := zap.NewProductionConfig()
	zapConfig.OutputPaths = []string{"stdout"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}
	logger, err := zapConfig.Build()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("classify-api starting...",
		zap.String("version", handlers.ServiceVersion),
		zap.String("environment", os.Getenv("GO_ENV")),
	)

	// Load configuration
	cfg := config.Load()

	// Select the analysis engine. The contract layer never hard-wires the
	// randomized stand-in; a model-backed engine plugs in the same way.
	engine, err := classify.ForConfig(cfg, logger)
	if err != nil {
		logger.Fatal("failed to select analysis engine", zap.Error(err))
	}
	logger.Info("analysis engine selected", zap.String("engine", cfg.Engine))

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Metrics())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check handlers
	healthHandler := handlers.NewHealthHandler(cfg.Engine)

	analyzeHandler, err := handlers.NewAnalyzeHandler(engine, cfg.ScratchDir, cfg.ModelPath, logger)
	if err != nil {
		logger.Fatal("failed to initialize analyze handler", zap.Error(err))
	}

	api := router.Group("/api")
	{
		health := api.Group("/health")
		{
			health.GET("", healthHandler.Health)
			health.GET("/info", healthHandler.Info)
		}

		// Analysis routes - rate limited, these are the expensive ones
		music := api.Group("/music")
		music.Use(middleware.RateLimitMiddleware(middleware.AnalyzeRateLimiter))
		{
			music.POST("/analyze", analyzeHandler.AnalyzeJSON)
			music.POST("/analyze/upload", analyzeHandler.AnalyzeUpload)
			music.POST("/analyze/preprocessed", analyzeHandler.AnalyzePreprocessed)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited gracefully")
}
