package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Logger(logger *zap.Logger) gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(params gin.LogFormatterParams) string {
		fields := []zap.Field{
			zap.String("method", params.Method),
			zap.String("path", params.Path),
			zap.Int("status", params.StatusCode),
			zap.Duration("latency", params.Latency),
			zap.String("client_ip", params.ClientIP),
			zap.Int("body_size", params.BodySize),
			zap.String("user_agent", params.Request.UserAgent()),
		}
		if id, ok := params.Keys[RequestIDKey].(string); ok {
			fields = append(fields, zap.String("request_id", id))
		}
		if params.ErrorMessage != "" {
			fields = append(fields, zap.String("error", params.ErrorMessage))
		}

		logger.Info("HTTP Request", fields...)
		return ""
	})
}
