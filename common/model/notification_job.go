package model

// NotificationJob 邮件通知任务消息（标准化）
// 用于 apiserver → notifier 的消息传递
type NotificationJob struct {
	// 元信息
	RequestID string `json:"request_id"` // 请求 ID（全链路追踪）
	Kind      string `json:"kind"`       // 模板类型
	CreatedAt int64  `json:"created_at"` // 入队时间戳（Unix timestamp）

	// 业务数据
	To      string            `json:"to"`      // 收件人
	Context map[string]string `json:"context"` // 模板变量
}

// 通知模板类型
const (
	NotificationKindRegistration    = "registration"
	NotificationKindOrderCreated    = "order_created"
	NotificationKindOrderCreatedOps = "order_created_ops"
	NotificationKindStatusChanged   = "status_changed"
)
