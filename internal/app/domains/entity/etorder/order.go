package etorder

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// 错误定义
var (
	ErrInvalidOrderID     = errors.New("order ID must be positive")
	ErrInvalidOrderNumber = errors.New("order number cannot be empty")
	ErrInvalidOwner       = errors.New("invalid owner user ID")
	ErrMissingCustomer    = errors.New("customer name and email are required")
	ErrNoLineItems        = errors.New("order must contain at least one line item")
	ErrInvalidLineItem    = errors.New("invalid line item")
	ErrNonPositiveTotal   = errors.New("order total must be positive")
	ErrInvalidDetails     = errors.New("invalid order details")
	ErrInvalidTransition  = errors.New("status transition not allowed")
	ErrInvalidReceipt     = errors.New("receipt name and url are required")
)

// Order 订单聚合根（领域对象）
type Order struct {
	ID            int64           // 订单ID（雪花ID）
	OrderNumber   string          // 订单号（UUID，创建时分配一次）
	OwnerUserID   int64           // 下单用户
	CustomerName  string          // 客户姓名快照
	CustomerEmail string          // 客户邮箱快照
	Status        Status          // 订单状态
	Total         decimal.Decimal // 订单总额 = Σ 数量 × 单价
	LineItems     []LineItem      // 明细行快照
	Details       *Details        // 类目明细与付款凭证
	PlacedAt      time.Time       // 下单时间
	UpdatedAt     time.Time       // 更新时间
}

// Customer 客户快照（值对象）
type Customer struct {
	Name  string
	Email string
}

// LineItem 订单明细行（值对象）
type LineItem struct {
	ProductCode string          `json:"productCode,omitempty"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// MoneyScale 金额小数位数
const MoneyScale = 2

// Subtotal 小计
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Validate 数量 ≥ 1，单价 > 0 且最多两位小数（与库表 decimal(14,2) 一致）
func (li LineItem) Validate() error {
	if li.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidLineItem)
	}
	if !li.UnitPrice.IsPositive() {
		return fmt.Errorf("%w: unit price must be greater than 0", ErrInvalidLineItem)
	}
	if !li.UnitPrice.Equal(li.UnitPrice.Round(MoneyScale)) {
		return fmt.Errorf("%w: unit price has more than %d decimals", ErrInvalidLineItem, MoneyScale)
	}
	if li.Description == "" && li.ProductCode == "" {
		return fmt.Errorf("%w: product code or description is required", ErrInvalidLineItem)
	}
	return nil
}

// ComputeTotal 计算明细总额
func ComputeTotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, li := range items {
		total = total.Add(li.Subtotal())
	}
	return total
}

// NewOrder 创建订单（工厂方法）
// 总额始终由明细重新计算，状态固定为 pendiente
func NewOrder(id int64, orderNumber string, ownerUserID int64, customer Customer, items []LineItem, details *Details) (*Order, error) {
	// 业务规则校验
	if id <= 0 {
		return nil, ErrInvalidOrderID
	}
	if orderNumber == "" {
		return nil, ErrInvalidOrderNumber
	}
	if ownerUserID <= 0 {
		return nil, ErrInvalidOwner
	}
	if customer.Name == "" || customer.Email == "" {
		return nil, ErrMissingCustomer
	}
	if len(items) == 0 {
		return nil, ErrNoLineItems
	}
	for i, li := range items {
		if err := li.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	if err := details.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDetails, err)
	}
	if details.Receipt != nil {
		return nil, fmt.Errorf("%w: receipt can only be attached after creation", ErrInvalidDetails)
	}

	total := ComputeTotal(items)
	if !total.IsPositive() {
		return nil, ErrNonPositiveTotal
	}

	now := time.Now()
	return &Order{
		ID:            id,
		OrderNumber:   orderNumber,
		OwnerUserID:   ownerUserID,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		Status:        StatusPendiente,
		Total:         total,
		LineItems:     items,
		Details:       details,
		PlacedAt:      now,
		UpdatedAt:     now,
	}, nil
}

// TransitionTo 状态迁移（领域行为）
func (o *Order) TransitionTo(to Status) error {
	if !CanTransition(o.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, to)
	}
	o.Status = to
	o.UpdatedAt = time.Now()
	return nil
}

// AllowedTransitions 当前状态可迁移的目标状态
func (o *Order) AllowedTransitions() []Status {
	return AllowedNext(o.Status)
}

// AttachReceipt 挂载付款凭证（领域行为）
// 覆盖之前的凭证并返回被替换的旧凭证；不修改状态
func (o *Order) AttachReceipt(r Receipt) (*Receipt, error) {
	if r.Name == "" || r.URL == "" {
		return nil, ErrInvalidReceipt
	}
	if o.Details == nil {
		o.Details = NewDetails(CategoryPaquete)
	}
	previous := o.Details.Receipt
	o.Details.Receipt = &r
	o.UpdatedAt = time.Now()
	return previous, nil
}

// BelongsTo 订单是否属于指定用户
func (o *Order) BelongsTo(userID int64) bool {
	return o.OwnerUserID == userID
}
