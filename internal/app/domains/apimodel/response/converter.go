package response

import (
	"github.com/shopspring/decimal"

	"tourshop/internal/app/domains/entity/etorder"
	"tourshop/internal/app/domains/entity/etprimitive"
	"tourshop/internal/app/domains/entity/etuser"
	"tourshop/internal/app/domains/services/svorder"
	"tourshop/internal/app/domains/services/svuser"
)

// FromOrderEntity 从领域对象转换为响应 DTO
func FromOrderEntity(order *etorder.Order) *OrderResponse {
	next := order.AllowedTransitions()
	allowed := make([]string, 0, len(next))
	for _, s := range next {
		allowed = append(allowed, string(s))
	}

	items := make([]*LineItemResponse, 0, len(order.LineItems))
	for _, li := range order.LineItems {
		items = append(items, &LineItemResponse{
			ProductCode: li.ProductCode,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice.StringFixed(2),
			Subtotal:    li.Subtotal().StringFixed(2),
		})
	}

	return &OrderResponse{
		ID:                 order.ID,
		OrderNumber:        order.OrderNumber,
		OwnerUserID:        order.OwnerUserID,
		CustomerName:       order.CustomerName,
		CustomerEmail:      order.CustomerEmail,
		Status:             string(order.Status),
		AllowedTransitions: allowed,
		Total:              order.Total.StringFixed(2),
		LineItems:          items,
		Details:            fromDetailsEntity(order.Details),
		PlacedAt:           order.PlacedAt,
		UpdatedAt:          order.UpdatedAt,
	}
}

// FromOrderEntities 批量转换
func FromOrderEntities(orders []*etorder.Order) []*OrderResponse {
	out := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrderEntity(o))
	}
	return out
}

func fromDetailsEntity(d *etorder.Details) *DetailsResponse {
	if d == nil {
		return nil
	}
	resp := &DetailsResponse{
		Version:  d.Version,
		Category: string(d.Category),
	}
	// 只赋值非空变体，避免 typed nil 被序列化为 null
	if d.Flight != nil {
		resp.Vuelo = d.Flight
	}
	if d.Hotel != nil {
		resp.Hotel = d.Hotel
	}
	if d.Package != nil {
		resp.Paquete = d.Package
	}
	if d.Generic != nil {
		resp.General = d.Generic
	}
	if d.Receipt != nil {
		resp.Receipt = &ReceiptResponse{
			Name:       d.Receipt.Name,
			URL:        d.Receipt.URL,
			UploadedAt: d.Receipt.UploadedAt,
		}
	}
	return resp
}

// FromPagination 转换分页信息
func FromPagination(p etprimitive.Pagination) *PaginationResponse {
	return &PaginationResponse{Page: p.Page, Limit: p.Limit, Total: p.Total}
}

// FromStatement 转换对账单
func FromStatement(lines []*svorder.StatementLine) *StatementResponse {
	resp := &StatementResponse{Lines: make([]*StatementLineResponse, 0, len(lines))}
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Outstanding)
		resp.Lines = append(resp.Lines, &StatementLineResponse{
			CustomerEmail: l.CustomerEmail,
			CustomerName:  l.CustomerName,
			Orders:        l.Orders,
			Pending:       l.Pending.StringFixed(2),
			Verified:      l.Verified.StringFixed(2),
			Outstanding:   l.Outstanding.StringFixed(2),
		})
	}
	resp.Outstanding = total.StringFixed(2)
	return resp
}

// FromUserEntity 从领域对象转换为响应 DTO
func FromUserEntity(user *etuser.User) *UserResponse {
	return &UserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       string(user.Role),
		Department: user.Department,
	}
}

// FromLoginResult 转换登录结果
func FromLoginResult(res *svuser.LoginResult) *LoginResponse {
	return &LoginResponse{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		User:      FromUserEntity(res.User),
	}
}
