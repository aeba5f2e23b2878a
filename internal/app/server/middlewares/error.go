package middlewares

import (
	"github.com/gin-gonic/gin"

	"tourshop/internal/app/pkg/errorx"
	"tourshop/internal/app/pkg/ginx"
	"tourshop/internal/app/pkg/logger"
)

// ErrorHandler 统一错误处理中间件
// 捕获 panic 并返回 500；handler 通过 c.Error 挂载的错误统一记录日志，未写响应时按业务错误映射
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.ErrorContext(c.Request.Context(), "Panic recovered",
					"panic", r,
					"path", c.Request.URL.Path,
				)
				if !c.Writer.Written() {
					ginx.InternalError(c, "internal server error")
				}
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		if _, ok := errorx.As(err); ok {
			log.WarnContext(c.Request.Context(), "Request rejected", "path", c.Request.URL.Path, "error", err)
		} else {
			log.ErrorContext(c.Request.Context(), "Request failed", "path", c.Request.URL.Path, "error", err)
		}
		if !c.Writer.Written() {
			ginx.FromError(c, err)
		}
	}
}
