package svorder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tourshop/common/model"
	"tourshop/internal/app/domains/entity/etorder"
	"tourshop/internal/app/domains/entity/etprimitive"
	"tourshop/internal/app/domains/modules/mdevent"
	"tourshop/internal/app/domains/modules/mdnotify"
	"tourshop/internal/app/domains/modules/mdorder"
	"tourshop/internal/app/domains/modules/mdreceipt"
	"tourshop/internal/app/domains/repo/rporder"
	"tourshop/internal/app/domains/repo/rpproduct"
	"tourshop/internal/app/domains/repo/rpuser"
	"tourshop/internal/app/pkg/errorx"
	"tourshop/internal/app/pkg/idgen"
	"tourshop/internal/app/pkg/logger"
)

// OrderService 订单服务，负责订单业务编排
type OrderService struct {
	orderModule   *mdorder.OrderModule
	notifyModule  *mdnotify.NotifyModule
	eventModule   *mdevent.EventModule
	receiptModule *mdreceipt.ReceiptModule
	ids           idgen.Generator
	opsMailbox    string
	logger        logger.Logger
}

// NewOrderService 创建订单服务实例
func NewOrderService(
	orderModule *mdorder.OrderModule,
	notifyModule *mdnotify.NotifyModule,
	eventModule *mdevent.EventModule,
	receiptModule *mdreceipt.ReceiptModule,
	ids idgen.Generator,
	opsMailbox string,
	log logger.Logger,
) *OrderService {
	return &OrderService{
		orderModule:   orderModule,
		notifyModule:  notifyModule,
		eventModule:   eventModule,
		receiptModule: receiptModule,
		ids:           ids,
		opsMailbox:    opsMailbox,
		logger:        log,
	}
}

// LineItemInput 下单明细输入：productCode 与 description 二选一
type LineItemInput struct {
	ProductCode string
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// CreateOrderCommand 创建订单命令
type CreateOrderCommand struct {
	OwnerUserID   int64 // 为0时默认为操作者
	CustomerName  string
	CustomerEmail string
	Category      etorder.Category // 为空时取第一个目录商品的类目
	LineItems     []LineItemInput
	Details       *etorder.Details // 类目明细，可为空
	ClientTotal   *decimal.Decimal // 客户端计算的总额，仅作参考
}

// CreateOrderResult 创建订单结果
type CreateOrderResult struct {
	Order    *etorder.Order
	Warnings []string
}

// CreateOrder 创建订单（完整业务流程）
// 1. 校验下单用户与操作者权限
// 2. 解析明细行（目录商品使用目录价格）
// 3. 组装类目明细并创建订单实体
// 4. 落库
// 5. 通知客户与运营（失败只返回 warning）
// 6. 发布 order.created 事件
func (s *OrderService) CreateOrder(ctx context.Context, actor etprimitive.Actor, cmd *CreateOrderCommand) (*CreateOrderResult, error) {
	ownerID := cmd.OwnerUserID
	if ownerID == 0 {
		ownerID = actor.UserID
	}
	if !actor.IsAdmin() && ownerID != actor.UserID {
		return nil, errorx.ErrUnauthorized.WithMessage("clients can only create orders for themselves")
	}

	owner, err := s.orderModule.GetUser(ctx, ownerID)
	if err != nil {
		if errors.Is(err, rpuser.ErrNotFound) {
			return nil, errorx.ErrInvalidOwner.WithMessage("owner user %d does not exist", ownerID)
		}
		return nil, fmt.Errorf("load owner failed: %w", err)
	}

	items, derived, err := s.resolveLineItems(ctx, cmd.LineItems)
	if err != nil {
		return nil, err
	}

	details, err := buildDetails(cmd, derived)
	if err != nil {
		return nil, err
	}

	customer := etorder.Customer{Name: cmd.CustomerName, Email: cmd.CustomerEmail}
	if customer.Name == "" {
		customer.Name = owner.Name
	}
	if customer.Email == "" {
		customer.Email = owner.Email
	}

	order, err := etorder.NewOrder(s.ids.NextID(), uuid.New().String(), ownerID, customer, items, details)
	if err != nil {
		return nil, mapEntityError(err)
	}

	var warnings []string
	if cmd.ClientTotal != nil && !cmd.ClientTotal.Equal(order.Total) {
		s.logger.WarnContext(ctx, "Client total differs from computed total",
			"order_number", order.OrderNumber,
			"client_total", cmd.ClientTotal.String(),
			"total", order.Total.String(),
		)
		warnings = append(warnings, fmt.Sprintf("client total %s differs from computed total %s", cmd.ClientTotal.StringFixed(2), order.Total.StringFixed(2)))
	}

	if err := s.orderModule.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("save order failed: %w", err)
	}

	s.logger.InfoContext(ctx, "Order created",
		"order_id", order.ID,
		"order_number", order.OrderNumber,
		"owner_user_id", order.OwnerUserID,
		"total", order.Total.String(),
	)

	// 通知失败不回滚订单
	data := orderNotificationData(order)
	if err := s.notifyModule.Send(ctx, order.CustomerEmail, model.NotificationKindOrderCreated, data); err != nil {
		s.logger.WarnContext(ctx, "Failed to queue customer notification", "order_id", order.ID, "error", err)
		warnings = append(warnings, "customer notification could not be queued")
	}
	if err := s.notifyModule.Send(ctx, s.opsMailbox, model.NotificationKindOrderCreatedOps, data); err != nil {
		s.logger.WarnContext(ctx, "Failed to queue operations notification", "order_id", order.ID, "error", err)
		warnings = append(warnings, "operations notification could not be queued")
	}

	s.eventModule.Publish(ctx, model.OrderEventCreated, order)

	return &CreateOrderResult{Order: order, Warnings: warnings}, nil
}

// ChangeStatus 变更订单状态（仅管理员）
// 同状态迁移视为 no-op：不写库、不通知
func (s *OrderService) ChangeStatus(ctx context.Context, actor etprimitive.Actor, ref etprimitive.OrderRef, newStatus string) (*etorder.Order, error) {
	if !actor.IsAdmin() {
		return nil, errorx.ErrUnauthorized.WithMessage("only administrators can change order status")
	}

	to, ok := etorder.ParseStatus(newStatus)
	if !ok {
		return nil, errorx.ErrInvalidTransition.WithMessage("unknown status %q", newStatus)
	}

	order, err := s.loadOrder(ctx, ref)
	if err != nil {
		return nil, err
	}

	if order.Status == to {
		return order, nil
	}

	from := order.Status
	if err := order.TransitionTo(to); err != nil {
		return nil, errorx.ErrInvalidTransition.WithMessage("cannot move order from %s to %s", from, to)
	}

	if err := s.orderModule.UpdateStatus(ctx, order.ID, from, to); err != nil {
		if !errors.Is(err, rporder.ErrStatusConflict) {
			return nil, fmt.Errorf("update order status failed: %w", err)
		}
		// 并发管理员先行写入：重新读取当前状态
		current, loadErr := s.loadOrder(ctx, etprimitive.ByID(order.ID))
		if loadErr != nil {
			return nil, loadErr
		}
		if current.Status == to {
			return current, nil
		}
		return nil, errorx.ErrInvalidTransition.WithMessage("order is now %s; cannot move to %s", current.Status, to)
	}

	s.logger.InfoContext(ctx, "Order status changed",
		"order_id", order.ID,
		"from", from,
		"to", to,
		"actor", actor.UserID,
	)

	s.notifyModule.SendAsync(ctx, order.CustomerEmail, model.NotificationKindStatusChanged, orderNotificationData(order))
	s.eventModule.Publish(ctx, model.OrderEventStatusChanged, order)

	return order, nil
}

// AttachReceipt 上传付款凭证（不修改状态）
// 1. 校验文件
// 2. 存储文件
// 3. 合并到 details 并落库；落库失败时删除新文件
// 4. 删除被替换的旧文件
func (s *OrderService) AttachReceipt(ctx context.Context, actor etprimitive.Actor, ref etprimitive.OrderRef, blob []byte, filename string) (*etorder.Order, error) {
	if err := s.receiptModule.Validate(blob, filename); err != nil {
		return nil, err
	}

	order, err := s.loadOrder(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !actor.CanSee(order.OwnerUserID) {
		return nil, errorx.ErrOrderNotFound
	}

	stored, err := s.receiptModule.Store(ctx, order.ID, blob, filename)
	if err != nil {
		return nil, err
	}

	previous, err := order.AttachReceipt(*stored)
	if err != nil {
		s.discardBlob(ctx, stored.StoredAs)
		return nil, errorx.ErrInvalidReceipt.Wrap(err)
	}

	if err := s.orderModule.UpdateDetails(ctx, order.ID, order.Details); err != nil {
		s.discardBlob(ctx, stored.StoredAs)
		if errors.Is(err, rporder.ErrNotFound) {
			return nil, errorx.ErrOrderNotFound
		}
		return nil, fmt.Errorf("save receipt failed: %w", err)
	}

	if previous != nil && previous.StoredAs != "" && previous.StoredAs != stored.StoredAs {
		s.discardBlob(ctx, previous.StoredAs)
	}

	s.logger.InfoContext(ctx, "Receipt attached",
		"order_id", order.ID,
		"receipt", stored.StoredAs,
	)

	s.eventModule.Publish(ctx, model.OrderEventReceiptAttached, order)

	return order, nil
}

// OpenReceipt 读取凭证文件
func (s *OrderService) OpenReceipt(ctx context.Context, name string) (io.ReadCloser, error) {
	return s.receiptModule.Open(ctx, name)
}

// GetOrder 查询订单；客户查询他人订单视为不存在
func (s *OrderService) GetOrder(ctx context.Context, actor etprimitive.Actor, ref etprimitive.OrderRef) (*etorder.Order, error) {
	order, err := s.loadOrder(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !actor.CanSee(order.OwnerUserID) {
		return nil, errorx.ErrOrderNotFound
	}
	return order, nil
}

// ListOrders 查询订单列表（仅管理员）
func (s *OrderService) ListOrders(ctx context.Context, actor etprimitive.Actor, filter rporder.ListFilter) ([]*etorder.Order, etprimitive.Pagination, error) {
	if !actor.IsAdmin() {
		return nil, etprimitive.Pagination{}, errorx.ErrUnauthorized.WithMessage("only administrators can list all orders")
	}

	filter.Pagination.Normalize()
	orders, total, err := s.orderModule.ListOrders(ctx, filter)
	if err != nil {
		return nil, etprimitive.Pagination{}, fmt.Errorf("list orders failed: %w", err)
	}

	page := filter.Pagination
	page.Total = total
	return orders, page, nil
}

// ListOrdersByOwner 查询用户订单历史；客户只能查看自己的订单
func (s *OrderService) ListOrdersByOwner(ctx context.Context, actor etprimitive.Actor, ownerUserID int64) ([]*etorder.Order, error) {
	if !actor.CanSee(ownerUserID) {
		return nil, errorx.ErrUnauthorized.WithMessage("clients can only list their own orders")
	}

	orders, err := s.orderModule.ListOrdersByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("list owner orders failed: %w", err)
	}
	return orders, nil
}

func (s *OrderService) loadOrder(ctx context.Context, ref etprimitive.OrderRef) (*etorder.Order, error) {
	order, err := s.orderModule.GetOrder(ctx, ref)
	if err != nil {
		if errors.Is(err, rporder.ErrNotFound) {
			return nil, errorx.ErrOrderNotFound
		}
		return nil, fmt.Errorf("load order %s failed: %w", ref, err)
	}
	return order, nil
}

// resolveLineItems 解析明细行，返回第一个目录商品的类目
func (s *OrderService) resolveLineItems(ctx context.Context, inputs []LineItemInput) ([]etorder.LineItem, etorder.Category, error) {
	if len(inputs) == 0 {
		return nil, "", errorx.ErrInvalidLineItem.WithMessage("order must contain at least one line item")
	}

	var category etorder.Category
	items := make([]etorder.LineItem, 0, len(inputs))
	for i, in := range inputs {
		if in.Quantity < 1 {
			return nil, "", errorx.ErrInvalidLineItem.WithMessage("line %d: quantity must be at least 1", i+1)
		}

		if in.ProductCode == "" {
			li := etorder.LineItem{Description: in.Description, Quantity: in.Quantity, UnitPrice: in.UnitPrice}
			if err := li.Validate(); err != nil {
				return nil, "", errorx.ErrInvalidLineItem.WithMessage("line %d: %v", i+1, err)
			}
			items = append(items, li)
			continue
		}

		product, err := s.orderModule.GetProduct(ctx, in.ProductCode)
		if err != nil {
			if errors.Is(err, rpproduct.ErrNotFound) {
				return nil, "", errorx.ErrInvalidLineItem.WithMessage("line %d: product %s does not exist", i+1, in.ProductCode)
			}
			return nil, "", fmt.Errorf("load product %s failed: %w", in.ProductCode, err)
		}
		if !product.Active {
			return nil, "", errorx.ErrInvalidLineItem.WithMessage("line %d: product %s is not available", i+1, in.ProductCode)
		}
		if category == "" {
			category = product.Category
		}
		items = append(items, product.LineItem(in.Quantity))
	}
	return items, category, nil
}

// buildDetails 组装类目明细：显式类目优先，其次 details 自带类目，最后取目录商品类目
func buildDetails(cmd *CreateOrderCommand, derived etorder.Category) (*etorder.Details, error) {
	details := cmd.Details
	if details == nil {
		details = &etorder.Details{}
	}
	details.Version = etorder.DetailsVersion

	switch {
	case cmd.Category != "":
		details.Category = cmd.Category
	case details.Category != "":
	case derived != "":
		details.Category = derived
	default:
		return nil, errorx.ErrInvalidDetails.WithMessage("category is required when no catalog product is ordered")
	}

	if err := details.Validate(); err != nil {
		return nil, errorx.ErrInvalidDetails.WithMessage("%v", err)
	}
	return details, nil
}

func mapEntityError(err error) error {
	switch {
	case errors.Is(err, etorder.ErrNoLineItems),
		errors.Is(err, etorder.ErrInvalidLineItem),
		errors.Is(err, etorder.ErrNonPositiveTotal):
		return errorx.ErrInvalidLineItem.WithMessage("%v", err)
	case errors.Is(err, etorder.ErrInvalidDetails):
		return errorx.ErrInvalidDetails.WithMessage("%v", err)
	case errors.Is(err, etorder.ErrInvalidOwner),
		errors.Is(err, etorder.ErrMissingCustomer):
		return errorx.ErrInvalidOwner.WithMessage("%v", err)
	}
	return fmt.Errorf("create order entity failed: %w", err)
}

func orderNotificationData(order *etorder.Order) map[string]string {
	data := map[string]string{
		"order_id":       fmt.Sprintf("%d", order.ID),
		"order_number":   order.OrderNumber,
		"customer_name":  order.CustomerName,
		"customer_email": order.CustomerEmail,
		"status":         string(order.Status),
		"total":          order.Total.StringFixed(2),
		"placed_at":      order.PlacedAt.Format(time.RFC3339),
		"items":          fmt.Sprintf("%d", len(order.LineItems)),
	}
	if order.Details != nil {
		data["category"] = string(order.Details.Category)
	}
	return data
}

// discardBlob 尽力删除凭证文件，失败只记录日志
func (s *OrderService) discardBlob(ctx context.Context, name string) {
	if err := s.receiptModule.Delete(context.WithoutCancel(ctx), name); err != nil {
		s.logger.WarnContext(ctx, "Failed to delete receipt blob", "name", name, "error", err)
	}
}
