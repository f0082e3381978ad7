package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-watermark/internal/config"
	"github.com/phambaophuc/image-watermark/internal/models"
	"github.com/phambaophuc/image-watermark/internal/services/cache"
	"github.com/phambaophuc/image-watermark/internal/services/processor"
	"go.uber.org/zap"
)

const (
	imageParamKey = "image"
	maxCacheAge   = 3600
)

// ResultCache memoizes encoded watermark results.
type ResultCache interface {
	Get(ctx context.Context, cacheKey string) ([]byte, error)
	Set(ctx context.Context, cacheKey string, data []byte) error
	GetCacheStats(ctx context.Context) (map[string]interface{}, error)
	HealthCheck(ctx context.Context) map[string]string
}

var _ ResultCache = (*cache.CacheService)(nil)

type WatermarkHandler struct {
	processor *processor.ImageProcessor
	cache     ResultCache
	logger    *zap.Logger
	config    *config.Config
}

// NewWatermarkHandler wires the handler. cache may be nil, in which case
// every request is processed.
func NewWatermarkHandler(
	processor *processor.ImageProcessor,
	cache ResultCache,
	logger *zap.Logger,
	config *config.Config,
) *WatermarkHandler {
	return &WatermarkHandler{
		processor: processor,
		cache:     cache,
		logger:    logger,
		config:    config,
	}
}

func (h *WatermarkHandler) Watermark(c *gin.Context) {
	var req models.WatermarkRequest
	if err := c.ShouldBind(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	data, err := h.readSource(c, &req)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.processor.ValidateImage(data, h.config.Storage.MaxFileSize, h.config.Storage.AllowedTypes); err != nil {
		h.respondProcessingError(c, "Invalid image", err)
		return
	}

	cfg, format, err := h.processor.BuildConfig(&req)
	if err != nil {
		h.respondProcessingError(c, "Invalid watermark settings", err)
		return
	}

	cacheKey := cache.GenerateCacheKey(data, cfg, format)
	if cached, found := h.tryGetFromCache(c, cacheKey); found {
		h.respondWithImage(c, cached, format, true)
		return
	}

	result, err := h.processor.ProcessImage(data, cfg, format)
	if err != nil {
		h.respondProcessingError(c, "Failed to watermark image", err)
		return
	}

	h.setCacheData(c, cacheKey, result.Data)
	h.respondWithImage(c, result.Data, format, false)
}

func (h *WatermarkHandler) HealthCheck(c *gin.Context) {
	services := map[string]string{"redis": "not configured"}
	if h.cache != nil {
		services = h.cache.HealthCheck(c.Request.Context())
	}
	overall := h.calculateOverallHealth(services)

	statusCode := http.StatusOK
	if overall == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, models.APIResponse{
		Success: overall == "healthy",
		Data: models.HealthCheck{
			Status:    overall,
			Timestamp: time.Now(),
			Services:  services,
		},
	})
}

func (h *WatermarkHandler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"timestamp": time.Now(),
	}

	if h.cache != nil {
		cacheStats, err := h.cache.GetCacheStats(c.Request.Context())
		if err != nil {
			h.logger.Error("Failed to get cache stats", zap.Error(err))
		} else {
			stats["cache"] = cacheStats
		}
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    stats,
	})
}
