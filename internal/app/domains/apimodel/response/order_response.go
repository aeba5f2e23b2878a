package response

import "time"

// OrderResponse 订单响应（DTO）
type OrderResponse struct {
	ID                 int64               `json:"id"`
	OrderNumber        string              `json:"order_number"`
	OwnerUserID        int64               `json:"owner_user_id"`
	CustomerName       string              `json:"customer_name"`
	CustomerEmail      string              `json:"customer_email"`
	Status             string              `json:"status"`
	AllowedTransitions []string            `json:"allowed_transitions"`
	Total              string              `json:"total"`
	LineItems          []*LineItemResponse `json:"line_items"`
	Details            *DetailsResponse    `json:"details,omitempty"`
	PlacedAt           time.Time           `json:"placed_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// LineItemResponse 明细行（DTO）
type LineItemResponse struct {
	ProductCode string `json:"product_code,omitempty"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Subtotal    string `json:"subtotal"`
}

// DetailsResponse 类目明细（DTO），变体字段沿用存储文档的键名
type DetailsResponse struct {
	Version  int              `json:"version"`
	Category string           `json:"category"`
	Vuelo    interface{}      `json:"vuelo,omitempty"`
	Hotel    interface{}      `json:"hotel,omitempty"`
	Paquete  interface{}      `json:"paquete,omitempty"`
	General  interface{}      `json:"general,omitempty"`
	Receipt  *ReceiptResponse `json:"receipt,omitempty"`
}

// ReceiptResponse 付款凭证（DTO）
type ReceiptResponse struct {
	Name       string     `json:"comprobanteNombre"`
	URL        string     `json:"comprobanteUrl"`
	UploadedAt *time.Time `json:"uploaded_at,omitempty"`
}

// OrderListResponse 订单列表响应
type OrderListResponse struct {
	Orders     []*OrderResponse    `json:"orders"`
	Pagination *PaginationResponse `json:"pagination,omitempty"`
}

// PaginationResponse 分页信息
type PaginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}
