package mdorder

import (
	"context"

	"tourshop/internal/app/domains/entity/etorder"
	"tourshop/internal/app/domains/entity/etprimitive"
	"tourshop/internal/app/domains/entity/etproduct"
	"tourshop/internal/app/domains/entity/etuser"
	"tourshop/internal/app/domains/repo/rporder"
	"tourshop/internal/app/domains/repo/rpproduct"
	"tourshop/internal/app/domains/repo/rpuser"
)

// OrderModule 订单模块（业务编排层）
type OrderModule struct {
	orderRepo   rporder.OrderRepository
	userRepo    rpuser.UserRepository
	productRepo rpproduct.ProductRepository
}

// NewOrderModule 创建订单模块
func NewOrderModule(
	orderRepo rporder.OrderRepository,
	userRepo rpuser.UserRepository,
	productRepo rpproduct.ProductRepository,
) *OrderModule {
	return &OrderModule{
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
	}
}

// CreateOrder 创建订单（数据操作）
func (m *OrderModule) CreateOrder(ctx context.Context, order *etorder.Order) error {
	return m.orderRepo.Create(ctx, order)
}

// GetOrder 按 ID 或订单号查询订单
func (m *OrderModule) GetOrder(ctx context.Context, ref etprimitive.OrderRef) (*etorder.Order, error) {
	if ref.IsByID() {
		return m.orderRepo.GetByID(ctx, ref.ID)
	}
	return m.orderRepo.GetByNumber(ctx, ref.Number)
}

// UpdateStatus 条件更新订单状态
func (m *OrderModule) UpdateStatus(ctx context.Context, orderID int64, from, to etorder.Status) error {
	return m.orderRepo.UpdateStatus(ctx, orderID, from, to)
}

// UpdateDetails 更新订单明细（付款凭证）
func (m *OrderModule) UpdateDetails(ctx context.Context, orderID int64, details *etorder.Details) error {
	return m.orderRepo.UpdateDetails(ctx, orderID, details)
}

// ListOrders 查询订单列表
func (m *OrderModule) ListOrders(ctx context.Context, filter rporder.ListFilter) ([]*etorder.Order, int64, error) {
	return m.orderRepo.List(ctx, filter)
}

// ListOrdersByOwner 查询指定用户的订单
func (m *OrderModule) ListOrdersByOwner(ctx context.Context, ownerUserID int64) ([]*etorder.Order, error) {
	return m.orderRepo.ListByOwner(ctx, ownerUserID)
}

// ListOutstanding 查询未结清订单（pendiente + verificado）
func (m *OrderModule) ListOutstanding(ctx context.Context) ([]*etorder.Order, error) {
	return m.orderRepo.ListByStatuses(ctx, etorder.StatusPendiente, etorder.StatusVerificado)
}

// GetUser 查询下单用户
func (m *OrderModule) GetUser(ctx context.Context, userID int64) (*etuser.User, error) {
	return m.userRepo.GetByID(ctx, userID)
}

// GetProduct 按编码查询目录商品
func (m *OrderModule) GetProduct(ctx context.Context, code string) (*etproduct.Product, error) {
	return m.productRepo.GetByCode(ctx, code)
}
