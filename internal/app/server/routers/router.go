package routers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tourshop/internal/app/pkg/jwtx"
	"tourshop/internal/app/pkg/logger"
	"tourshop/internal/app/server/handlers/auth"
	"tourshop/internal/app/server/handlers/order"
	"tourshop/internal/app/server/middlewares"
)

// SetupRoutes 配置所有路由，使用 Route Group 分类
func SetupRoutes(
	orderHandler *order.OrderHandler,
	authHandler *auth.AuthHandler,
	issuer *jwtx.Issuer,
	log logger.Logger,
) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = 8 << 20

	r.Use(middlewares.RequestID())
	r.Use(middlewares.Logger(log))
	r.Use(middlewares.CORS())
	r.Use(middlewares.ErrorHandler(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "tourshop",
			"message": "Service is running",
		})
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/login", authHandler.Login)

		// 凭证公开 URL（写入订单 details.comprobanteUrl）
		v1.GET("/receipts/:name", orderHandler.DownloadReceipt)

		authed := v1.Group("", middlewares.AuthGuard(issuer))

		orders := authed.Group("/orders")
		{
			orders.POST("", orderHandler.Create)
			orders.GET("", middlewares.AdminOnly(), orderHandler.List)
			orders.GET("/mine", orderHandler.Mine)
			orders.GET("/:ref", orderHandler.Get)
			orders.PUT("/:ref/status", middlewares.AdminOnly(), orderHandler.ChangeStatus)
			orders.POST("/:ref/receipt", orderHandler.UploadReceipt)
		}

		authed.GET("/users/:id/orders", middlewares.AdminOnly(), orderHandler.ByUser)
		authed.GET("/admin/statement", middlewares.AdminOnly(), orderHandler.Statement)
	}

	return r
}
