package order

import (
	"github.com/gin-gonic/gin"

	"tourshop/internal/app/domains/apimodel/response"
	"tourshop/internal/app/pkg/ginx"
)

// Get godoc
// @Summary      获取订单详情
// @Description  :ref 为纯数字时按订单 ID 查询，否则按订单号查询。
// @Description  客户查询他人订单返回 404
// @Tags         orders
// @Produce      json
// @Param        ref path string true "订单ID或订单号"
// @Success      200 {object} ginx.Response{data=response.OrderResponse} "查询成功"
// @Failure      404 {object} ginx.Response "订单不存在"
// @Security     BearerAuth
// @Router       /orders/{ref} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	ref, ok := h.orderRef(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), actor, ref)
	if err != nil {
		h.fail(c, err)
		return
	}

	ginx.Success(c, response.FromOrderEntity(order))
}
