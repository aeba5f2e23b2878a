package rporder

import (
	"context"
	"errors"

	"tourshop/internal/app/domains/entity/etorder"
	"tourshop/internal/app/domains/entity/etprimitive"
)

// 错误定义
var (
	// ErrNotFound 订单不存在
	ErrNotFound = errors.New("order not found")
	// ErrStatusConflict 条件更新未命中：当前状态已被并发修改
	ErrStatusConflict = errors.New("order status changed concurrently")
)

// ListFilter 订单列表过滤条件
type ListFilter struct {
	Status      etorder.Status // 为空表示不过滤
	OwnerUserID int64          // 为0表示不过滤
	Pagination  etprimitive.Pagination
}

// OrderRepository 订单仓储接口
type OrderRepository interface {
	// Create 创建订单
	Create(ctx context.Context, order *etorder.Order) error

	// GetByID 根据ID查询订单
	GetByID(ctx context.Context, id int64) (*etorder.Order, error)

	// GetByNumber 根据订单号查询订单
	GetByNumber(ctx context.Context, orderNumber string) (*etorder.Order, error)

	// UpdateStatus 条件更新状态：仅当当前状态为 from 时写入 to
	// 未命中时返回 ErrStatusConflict
	UpdateStatus(ctx context.Context, id int64, from, to etorder.Status) error

	// UpdateDetails 仅更新 details 列，不触碰状态
	UpdateDetails(ctx context.Context, id int64, details *etorder.Details) error

	// List 分页查询订单列表，按下单时间倒序
	List(ctx context.Context, filter ListFilter) ([]*etorder.Order, int64, error)

	// ListByOwner 查询指定用户的全部订单
	ListByOwner(ctx context.Context, ownerUserID int64) ([]*etorder.Order, error)

	// ListByStatuses 查询处于指定状态的全部订单（对账用）
	ListByStatuses(ctx context.Context, statuses ...etorder.Status) ([]*etorder.Order, error)
}
