package order

import (
	"github.com/gin-gonic/gin"

	"tourshop/internal/app/domains/apimodel/request"
	"tourshop/internal/app/domains/apimodel/response"
	"tourshop/internal/app/pkg/ginx"
)

// Create godoc
// @Summary      创建订单
// @Description  创建旅游订单，状态为 pendiente。目录商品使用目录价格；
// @Description  客户端 total 仅作参考，不一致或通知入队失败时在 meta.warnings 中返回
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body request.CreateOrderRequest true "创建订单请求"
// @Success      201 {object} ginx.Response{data=response.OrderResponse} "创建成功"
// @Failure      400 {object} ginx.Response "参数错误 / InvalidLineItem / InvalidDetails"
// @Failure      403 {object} ginx.Response "Unauthorized"
// @Failure      422 {object} ginx.Response "InvalidOwner"
// @Security     BearerAuth
// @Router       /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	result, err := h.orderService.CreateOrder(c.Request.Context(), actor, req.ToCommand())
	if err != nil {
		h.fail(c, err)
		return
	}

	ginx.Created(c, response.FromOrderEntity(result.Order), result.Warnings)
}
