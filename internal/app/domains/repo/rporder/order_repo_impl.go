package rporder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"tourshop/common/entity"
	"tourshop/internal/app/domains/entity/etorder"
)

// OrderRepositoryImpl 订单仓储实现（GORM）
type OrderRepositoryImpl struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储实例
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &OrderRepositoryImpl{db: db}
}

// Create 创建订单，将领域对象转换为 GORM 模型后存储
func (r *OrderRepositoryImpl) Create(ctx context.Context, order *etorder.Order) error {
	po, err := r.toGormModel(order)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(po).Error
}

// GetByID 根据ID查询订单
func (r *OrderRepositoryImpl) GetByID(ctx context.Context, id int64) (*etorder.Order, error) {
	return r.getOne(ctx, "id = ?", id)
}

// GetByNumber 根据订单号查询订单
func (r *OrderRepositoryImpl) GetByNumber(ctx context.Context, orderNumber string) (*etorder.Order, error) {
	return r.getOne(ctx, "order_number = ?", orderNumber)
}

func (r *OrderRepositoryImpl) getOne(ctx context.Context, query string, arg interface{}) (*etorder.Order, error) {
	var po entity.Order
	err := r.db.WithContext(ctx).Where(query, arg).First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r.toDomainModel(&po)
}

// UpdateStatus 条件更新订单状态
// UPDATE orders SET status = to WHERE id = ? AND status = from
func (r *OrderRepositoryImpl) UpdateStatus(ctx context.Context, id int64, from, to etorder.Status) error {
	res := r.db.WithContext(ctx).
		Model(&entity.Order{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{
			"status":     string(to),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}

// UpdateDetails 更新订单明细（付款凭证挂载）
func (r *OrderRepositoryImpl) UpdateDetails(ctx context.Context, id int64, details *etorder.Details) error {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("marshal details failed: %w", err)
	}
	res := r.db.WithContext(ctx).
		Model(&entity.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"details":    datatypes.JSON(detailsJSON),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List 分页查询订单列表
func (r *OrderRepositoryImpl) List(ctx context.Context, filter ListFilter) ([]*etorder.Order, int64, error) {
	var total int64
	var pos []entity.Order

	page := filter.Pagination
	page.Normalize()

	query := r.db.WithContext(ctx).Model(&entity.Order{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.OwnerUserID > 0 {
		query = query.Where("owner_user_id = ?", filter.OwnerUserID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(page.Offset()).Limit(page.Limit).Order("placed_at DESC, id DESC").Find(&pos).Error; err != nil {
		return nil, 0, err
	}

	orders, err := r.toDomainModels(pos)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListByOwner 查询用户的全部订单
func (r *OrderRepositoryImpl) ListByOwner(ctx context.Context, ownerUserID int64) ([]*etorder.Order, error) {
	var pos []entity.Order
	err := r.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerUserID).
		Order("placed_at DESC, id DESC").
		Find(&pos).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainModels(pos)
}

// ListByStatuses 查询指定状态的全部订单
func (r *OrderRepositoryImpl) ListByStatuses(ctx context.Context, statuses ...etorder.Status) ([]*etorder.Order, error) {
	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}

	var pos []entity.Order
	err := r.db.WithContext(ctx).
		Where("status IN ?", values).
		Order("placed_at ASC, id ASC").
		Find(&pos).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainModels(pos)
}

func (r *OrderRepositoryImpl) toDomainModels(pos []entity.Order) ([]*etorder.Order, error) {
	orders := make([]*etorder.Order, 0, len(pos))
	for i := range pos {
		order, err := r.toDomainModel(&pos[i])
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// toGormModel 领域对象转换为 GORM 模型
func (r *OrderRepositoryImpl) toGormModel(order *etorder.Order) (*entity.Order, error) {
	itemsJSON, err := json.Marshal(order.LineItems)
	if err != nil {
		return nil, fmt.Errorf("marshal line items failed: %w", err)
	}
	detailsJSON, err := json.Marshal(order.Details)
	if err != nil {
		return nil, fmt.Errorf("marshal details failed: %w", err)
	}

	return &entity.Order{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		OwnerUserID:   order.OwnerUserID,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		Status:        string(order.Status),
		Total:         order.Total,
		LineItems:     itemsJSON,
		Details:       detailsJSON,
		PlacedAt:      order.PlacedAt,
		UpdatedAt:     order.UpdatedAt,
	}, nil
}

// toDomainModel GORM 模型转换为领域对象
func (r *OrderRepositoryImpl) toDomainModel(po *entity.Order) (*etorder.Order, error) {
	order := &etorder.Order{
		ID:            po.ID,
		OrderNumber:   po.OrderNumber,
		OwnerUserID:   po.OwnerUserID,
		CustomerName:  po.CustomerName,
		CustomerEmail: po.CustomerEmail,
		Status:        etorder.Status(po.Status),
		Total:         po.Total,
		PlacedAt:      po.PlacedAt,
		UpdatedAt:     po.UpdatedAt,
	}

	if len(po.LineItems) > 0 {
		if err := json.Unmarshal(po.LineItems, &order.LineItems); err != nil {
			return nil, fmt.Errorf("unmarshal line items failed: %w", err)
		}
	}
	if len(po.Details) > 0 && string(po.Details) != "null" {
		var details etorder.Details
		if err := json.Unmarshal(po.Details, &details); err != nil {
			return nil, fmt.Errorf("unmarshal details failed: %w", err)
		}
		order.Details = &details
	}

	return order, nil
}
