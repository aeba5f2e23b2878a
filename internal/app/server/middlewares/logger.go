package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"

	"tourshop/internal/app/pkg/logger"
)

// Logger 请求日志中间件
func Logger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if c.Writer.Status() >= 500 {
			log.ErrorContext(c.Request.Context(), "HTTP request", fields...)
			return
		}
		log.InfoContext(c.Request.Context(), "HTTP request", fields...)
	}
}
