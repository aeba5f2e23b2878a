package request

// ChangeStatusRequest 变更订单状态请求
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required" example:"verificado"`
}
