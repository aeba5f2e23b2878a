package order

import (
	"github.com/gin-gonic/gin"

	"tourshop/internal/app/domains/apimodel/request"
	"tourshop/internal/app/domains/apimodel/response"
	"tourshop/internal/app/pkg/ginx"
)

// ChangeStatus godoc
// @Summary      变更订单状态（管理员）
// @Description  允许的迁移：pendiente→verificado|anulado，verificado→completado|anulado。
// @Description  同状态视为 no-op
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        ref path string true "订单ID或订单号"
// @Param        request body request.ChangeStatusRequest true "目标状态"
// @Success      200 {object} ginx.Response{data=response.OrderResponse}
// @Failure      403 {object} ginx.Response "Unauthorized"
// @Failure      404 {object} ginx.Response "OrderNotFound"
// @Failure      409 {object} ginx.Response "InvalidTransition"
// @Security     BearerAuth
// @Router       /orders/{ref}/status [put]
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	ref, ok := h.orderRef(c)
	if !ok {
		return
	}

	var req request.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	order, err := h.orderService.ChangeStatus(c.Request.Context(), actor, ref, req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}

	ginx.Success(c, response.FromOrderEntity(order))
}
