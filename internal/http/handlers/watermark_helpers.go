package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-watermark/internal/http/middleware"
	"github.com/phambaophuc/image-watermark/internal/models"
	"github.com/phambaophuc/image-watermark/internal/services/processor"
	"github.com/phambaophuc/image-watermark/pkg/utils"
	"github.com/phambaophuc/image-watermark/pkg/watermark"
	"go.uber.org/zap"
)

// === REQUEST PARSING ===

// readSource returns the uploaded file, or downloads image_url when no file
// was sent.
func (h *WatermarkHandler) readSource(c *gin.Context, req *models.WatermarkRequest) ([]byte, error) {
	maxSize := h.config.Storage.MaxFileSize

	header, err := c.FormFile(imageParamKey)
	if err == nil {
		if header.Size > maxSize {
			return nil, fmt.Errorf("file size %d exceeds maximum allowed size %d", header.Size, maxSize)
		}
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open upload: %v", err)
		}
		defer file.Close()

		return io.ReadAll(io.LimitReader(file, maxSize+1))
	}

	if req.ImageURL == "" {
		return nil, errors.New("no image provided: send an image file or image_url")
	}

	data, _, err := utils.DownloadImage(c.Request.Context(), req.ImageURL, maxSize)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// === RESPONSE HANDLING ===

func (h *WatermarkHandler) respondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, models.APIResponse{
		Success: false,
		Error:   message,
	})
}

func (h *WatermarkHandler) respondProcessingError(c *gin.Context, message string, err error) {
	statusCode := statusFor(err)
	if statusCode >= http.StatusInternalServerError {
		h.logger.Error(message,
			zap.String("request_id", c.GetString(middleware.RequestIDKey)),
			zap.Error(err),
		)
	}
	h.respondError(c, statusCode, fmt.Sprintf("%s: %v", message, err))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, watermark.ErrInvalidArgument), errors.Is(err, watermark.ErrImageDecode):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *WatermarkHandler) respondWithImage(c *gin.Context, data []byte, format imaging.Format, cached bool) {
	cacheStatus := "MISS"
	if cached {
		cacheStatus = "HIT"
	}

	filename := utils.GenerateFilename(c.GetString(middleware.RequestIDKey), formatExt(format))
	c.Header("X-Cache", cacheStatus)
	c.Header("Cache-Control", "public, max-age="+strconv.Itoa(maxCacheAge))
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	c.Data(http.StatusOK, processor.ContentType(format), data)
}

func formatExt(format imaging.Format) string {
	switch format {
	case imaging.JPEG:
		return "jpg"
	case imaging.TIFF:
		return "tiff"
	}
	return processor.ContentType(format)[len("image/"):]
}

// === CACHE OPERATIONS ===

func (h *WatermarkHandler) tryGetFromCache(c *gin.Context, cacheKey string) ([]byte, bool) {
	if h.cache == nil {
		return nil, false
	}

	cachedData, err := h.cache.Get(c.Request.Context(), cacheKey)
	if err != nil {
		h.logger.Warn("Cache lookup failed", zap.String("cache_key", cacheKey), zap.Error(err))
		return nil, false
	}
	if cachedData == nil {
		return nil, false
	}

	h.logger.Info("Cache hit", zap.String("cache_key", cacheKey))
	return cachedData, true
}

func (h *WatermarkHandler) setCacheData(c *gin.Context, cacheKey string, data []byte) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Set(c.Request.Context(), cacheKey, data); err != nil {
		h.logger.Warn("Failed to cache data", zap.String("cache_key", cacheKey), zap.Error(err))
	}
}

// === UTILITY METHODS ===

func (h *WatermarkHandler) calculateOverallHealth(services map[string]string) string {
	for _, status := range services {
		if status != "healthy" && status != "not configured" {
			return "unhealthy"
		}
	}
	return "healthy"
}
