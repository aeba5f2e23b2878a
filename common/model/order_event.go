package model

// OrderEvent 订单生命周期事件
// 由 apiserver 发布到 Redis 频道或 Kafka topic，供下游订阅
type OrderEvent struct {
	Type        string `json:"type"`         // 事件类型
	OrderID     int64  `json:"order_id"`     // 订单 ID
	OrderNumber string `json:"order_number"` // 订单号
	OwnerUserID int64  `json:"owner_user_id"`
	Status      string `json:"status"`
	Total       string `json:"total"`
	OccurredAt  int64  `json:"occurred_at"` // 事件时间戳（Unix milli）
}

// 事件类型常量
const (
	OrderEventCreated         = "order.created"
	OrderEventStatusChanged   = "order.status_changed"
	OrderEventReceiptAttached = "order.receipt_attached"
)

// OrderEventVersion 事件结构版本
const OrderEventVersion = "1"
