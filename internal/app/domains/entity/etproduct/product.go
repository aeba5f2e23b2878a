package etproduct

import (
	"github.com/shopspring/decimal"

	"tourshop/internal/app/domains/entity/etorder"
)

// Product 目录商品（订单核心只读）
type Product struct {
	ID          int64
	Code        string
	Description string
	Category    etorder.Category
	Price       decimal.Decimal
	Active      bool
}

// LineItem 按目录价格生成明细行，忽略客户端单价
func (p *Product) LineItem(quantity int) etorder.LineItem {
	return etorder.LineItem{
		ProductCode: p.Code,
		Description: p.Description,
		Quantity:    quantity,
		UnitPrice:   p.Price,
	}
}
