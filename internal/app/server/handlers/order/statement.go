package order

import (
	"github.com/gin-gonic/gin"

	"tourshop/internal/app/domains/apimodel/response"
	"tourshop/internal/app/pkg/ginx"
)

// Statement 对账单（estado de cuenta，管理员）
// GET /api/v1/admin/statement
func (h *OrderHandler) Statement(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	lines, err := h.orderService.AccountStatement(c.Request.Context(), actor)
	if err != nil {
		h.fail(c, err)
		return
	}

	ginx.Success(c, response.FromStatement(lines))
}
