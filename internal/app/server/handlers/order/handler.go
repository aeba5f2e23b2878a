package order

import (
	"github.com/gin-gonic/gin"

	"tourshop/internal/app/domains/entity/etprimitive"
	"tourshop/internal/app/domains/services/svorder"
	"tourshop/internal/app/pkg/ginx"
)

// OrderHandler 订单 HTTP 处理器
type OrderHandler struct {
	orderService *svorder.OrderService
}

// NewOrderHandler 创建订单处理器实例
func NewOrderHandler(orderService *svorder.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// actor 读取操作者，缺失时直接返回 401
func (h *OrderHandler) actor(c *gin.Context) (etprimitive.Actor, bool) {
	actor, ok := ginx.ActorFrom(c)
	if !ok {
		ginx.Unauthenticated(c, "missing token")
	}
	return actor, ok
}

// orderRef 解析路径中的 :ref（数字为 ID，否则为订单号）
func (h *OrderHandler) orderRef(c *gin.Context) (etprimitive.OrderRef, bool) {
	ref, ok := etprimitive.ParseOrderRef(c.Param("ref"))
	if !ok {
		ginx.BadRequest(c, "invalid order reference")
	}
	return ref, ok
}

// fail 交给 ErrorHandler 统一记录并输出
func (h *OrderHandler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
}
