package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Order 订单实体（持久化对象）
type Order struct {
	// 基础字段
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement:false"`
	OrderNumber string `gorm:"column:order_number;type:varchar(64);not null;uniqueIndex:uk_order_number"`
	OwnerUserID int64  `gorm:"column:owner_user_id;not null;index:idx_owner"`

	// 下单时的客户快照
	CustomerName  string `gorm:"column:customer_name;type:varchar(255);not null"`
	CustomerEmail string `gorm:"column:customer_email;type:varchar(255);not null;index:idx_customer_email"`

	// 状态与金额
	Status string          `gorm:"column:status;type:varchar(16);not null;default:'pendiente';index:idx_status"`
	Total  decimal.Decimal `gorm:"column:total;type:decimal(14,2);not null"`

	// 明细与类目数据
	LineItems datatypes.JSON `gorm:"column:line_items;type:json;not null"`
	Details   datatypes.JSON `gorm:"column:details;type:json"`

	// 时间戳
	PlacedAt  time.Time `gorm:"column:placed_at;not null;index:idx_placed_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// 订单状态常量
const (
	OrderStatusPendiente  = "pendiente"
	OrderStatusVerificado = "verificado"
	OrderStatusCompletado = "completado"
	OrderStatusAnulado    = "anulado"
)
