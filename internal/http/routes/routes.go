package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-watermark/internal/http/handlers"
	"github.com/phambaophuc/image-watermark/internal/http/middleware"
	"go.uber.org/zap"
)

type Router struct {
	watermarkHandler *handlers.WatermarkHandler
	logger           *zap.Logger
}

func NewRouter(
	watermarkHandler *handlers.WatermarkHandler,
	logger *zap.Logger,
) *Router {
	return &Router{
		watermarkHandler: watermarkHandler,
		logger:           logger,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.ErrorHandler(r.logger))
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())

	// API version 1
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", r.watermarkHandler.HealthCheck)
		v1.GET("/stats", r.watermarkHandler.GetStats)
		v1.POST("/watermark", middleware.ValidateContentType(), r.watermarkHandler.Watermark)
	}

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"message": "Image watermarking is running",
		})
	})

	return router
}
