package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product 商品实体（目录只读）
type Product struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Code        string          `gorm:"column:code;type:varchar(64);uniqueIndex:uk_code;not null"`
	Description string          `gorm:"column:description;type:varchar(255);not null"`
	Category    string          `gorm:"column:category;type:varchar(32);not null;index:idx_category"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(14,2);not null"`
	Active      bool            `gorm:"column:active;not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;not null"`
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
