package order

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"tourshop/internal/app/domains/apimodel/response"
	"tourshop/internal/app/domains/entity/etorder"
	"tourshop/internal/app/domains/entity/etprimitive"
	"tourshop/internal/app/domains/repo/rporder"
	"tourshop/internal/app/pkg/ginx"
)

// List 订单列表（管理员）
// GET /api/v1/orders?status=pendiente&page=1&limit=20
func (h *OrderHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	filter := rporder.ListFilter{}
	if raw := c.Query("status"); raw != "" {
		status, valid := etorder.ParseStatus(raw)
		if !valid {
			ginx.BadRequest(c, "unknown status filter")
			return
		}
		filter.Status = status
	}
	filter.Pagination = etprimitive.Pagination{
		Page:  queryInt(c, "page"),
		Limit: queryInt(c, "limit"),
	}

	orders, page, err := h.orderService.ListOrders(c.Request.Context(), actor, filter)
	if err != nil {
		h.fail(c, err)
		return
	}

	ginx.Success(c, &response.OrderListResponse{
		Orders:     response.FromOrderEntities(orders),
		Pagination: response.FromPagination(page),
	})
}

// Mine 当前用户的订单历史
// GET /api/v1/orders/mine
func (h *OrderHandler) Mine(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	h.listByOwner(c, actor, actor.UserID)
}

// ByUser 指定用户的订单历史（管理员）
// GET /api/v1/users/:id/orders
func (h *OrderHandler) ByUser(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		ginx.BadRequest(c, "invalid user id")
		return
	}
	h.listByOwner(c, actor, userID)
}

func (h *OrderHandler) listByOwner(c *gin.Context, actor etprimitive.Actor, ownerUserID int64) {
	orders, err := h.orderService.ListOrdersByOwner(c.Request.Context(), actor, ownerUserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	ginx.Success(c, &response.OrderListResponse{Orders: response.FromOrderEntities(orders)})
}

// queryInt 解析整数查询参数，非法值按 0 处理（由分页默认值兜底）
func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}
