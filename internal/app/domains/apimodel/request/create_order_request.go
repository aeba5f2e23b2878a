package request

import "github.com/shopspring/decimal"

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	OwnerUserID   int64            `json:"owner_user_id" example:"2"`
	CustomerName  string           `json:"customer_name" example:"Ana Pérez"`
	CustomerEmail string           `json:"customer_email" binding:"omitempty,email" example:"ana@example.com"`
	Category      string           `json:"category" binding:"omitempty,oneof=vuelo hotel paquete auto excursion" example:"vuelo"`
	LineItems     []*LineItem      `json:"line_items" binding:"required,dive"`
	Details       *Details         `json:"details"`
	Total         *decimal.Decimal `json:"total" example:"170000"`
}

// LineItem 明细行：product_code 与 description 二选一
type LineItem struct {
	ProductCode string          `json:"product_code" example:"VUE-001"`
	Description string          `json:"description" example:"Vuelo BUE-MDZ"`
	Quantity    int             `json:"quantity" example:"2"`
	UnitPrice   decimal.Decimal `json:"unit_price" example:"85000"`
}

// Details 类目明细，最多填写一个变体
type Details struct {
	Vuelo   *FlightDetails  `json:"vuelo"`
	Hotel   *HotelDetails   `json:"hotel"`
	Paquete *PackageDetails `json:"paquete"`
	General *GenericDetails `json:"general"`
}

// FlightDetails 机票明细
type FlightDetails struct {
	FechaViaje   string   `json:"fechaViaje" example:"2025-12-01"`
	FechaRegreso string   `json:"fechaRegreso" example:"2025-12-08"`
	Asientos     []string `json:"asientos" example:"12A,12B"`
	Pasajeros    int      `json:"pasajeros" example:"2"`
}

// HotelDetails 酒店明细
type HotelDetails struct {
	CheckIn      string `json:"checkIn" example:"2025-03-01"`
	CheckOut     string `json:"checkOut" example:"2025-03-04"`
	Habitaciones int    `json:"habitaciones" example:"1"`
	Huespedes    int    `json:"huespedes" example:"2"`
}

// PackageDetails 套餐明细
type PackageDetails struct {
	FechaViaje string   `json:"fechaViaje" example:"2025-07-01"`
	Viajeros   int      `json:"viajeros" example:"2"`
	Asientos   []string `json:"asientos"`
}

// GenericDetails 通用明细
type GenericDetails struct {
	FechaViaje string `json:"fechaViaje"`
	Notas      string `json:"notas"`
}
