package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phambaophuc/image-watermark/internal/config"
	"github.com/phambaophuc/image-watermark/internal/http/handlers"
	"github.com/phambaophuc/image-watermark/internal/http/routes"
	"github.com/phambaophuc/image-watermark/internal/services/cache"
	"github.com/phambaophuc/image-watermark/internal/services/processor"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize services
	imageProcessor := processor.NewImageProcessor(cfg.Watermark, logger)

	var resultCache handlers.ResultCache
	cacheService := cache.NewCacheService(cfg)
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	if status := cacheService.HealthCheck(pingCtx); status["redis"] == "healthy" {
		resultCache = cacheService
	} else {
		logger.Warn("Redis unavailable, continuing without result cache",
			zap.String("addr", cfg.Redis.Addr),
			zap.String("status", status["redis"]),
		)
		_ = cacheService.Close()
		cacheService = nil
	}
	cancelPing()

	// Initialize handlers
	watermarkHandler := handlers.NewWatermarkHandler(imageProcessor, resultCache, logger, cfg)

	router := routes.NewRouter(watermarkHandler, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Handler:      router.SetupRoutes(),
	}

	// Start server
	go func() {
		logger.Info("Starting server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if cacheService != nil {
		if err := cacheService.Close(); err != nil {
			logger.Warn("Failed to close Redis client", zap.Error(err))
		}
	}

	logger.Info("Server exited")
}
