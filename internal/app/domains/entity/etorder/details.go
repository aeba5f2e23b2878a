package etorder

import (
	"errors"
	"fmt"
	"time"
)

// DetailsVersion 当前 details 文档版本
const DetailsVersion = 1

const dateLayout = "2006-01-02"

// Category 商品类目，决定 details 使用哪种变体
type Category string

const (
	CategoryVuelo     Category = "vuelo"
	CategoryHotel     Category = "hotel"
	CategoryPaquete   Category = "paquete"
	CategoryAuto      Category = "auto"
	CategoryExcursion Category = "excursion"
)

// Valid 是否为已知类目
func (c Category) Valid() bool {
	switch c {
	case CategoryVuelo, CategoryHotel, CategoryPaquete, CategoryAuto, CategoryExcursion:
		return true
	}
	return false
}

// Details 订单类目明细（按类目区分的变体）
// 同一时刻只允许设置与 Category 对应的变体；Receipt 最多一个
type Details struct {
	Version  int            `json:"version"`
	Category Category       `json:"category"`
	Flight   *FlightDetail  `json:"vuelo,omitempty"`
	Hotel    *HotelDetail   `json:"hotel,omitempty"`
	Package  *PackageDetail `json:"paquete,omitempty"`
	Generic  *GenericDetail `json:"general,omitempty"`
	*Receipt
}

// FlightDetail 机票明细
type FlightDetail struct {
	TravelDate string   `json:"fechaViaje,omitempty"`
	ReturnDate string   `json:"fechaRegreso,omitempty"`
	Seats      []string `json:"asientos,omitempty"`
	Passengers int      `json:"pasajeros,omitempty"`
}

// HotelDetail 酒店明细
type HotelDetail struct {
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Rooms    int    `json:"habitaciones,omitempty"`
	Guests   int    `json:"huespedes,omitempty"`
}

// PackageDetail 套餐明细
type PackageDetail struct {
	TravelDate string   `json:"fechaViaje,omitempty"`
	Travelers  int      `json:"viajeros,omitempty"`
	Seats      []string `json:"asientos,omitempty"`
}

// GenericDetail 通用明细（租车、短途游等）
type GenericDetail struct {
	TravelDate string `json:"fechaViaje,omitempty"`
	Notes      string `json:"notas,omitempty"`
}

// Receipt 付款凭证引用
type Receipt struct {
	Name       string     `json:"comprobanteNombre"`
	URL        string     `json:"comprobanteUrl"`
	StoredAs   string     `json:"comprobanteArchivo,omitempty"`
	UploadedAt *time.Time `json:"comprobanteFecha,omitempty"`
}

// NewDetails 创建空明细
func NewDetails(category Category) *Details {
	return &Details{Version: DetailsVersion, Category: category}
}

// Validate 校验明细：类目合法、变体与类目一致、变体字段合法
func (d *Details) Validate() error {
	if d == nil {
		return errors.New("details are required")
	}
	if !d.Category.Valid() {
		return fmt.Errorf("unknown category %q", d.Category)
	}

	set := 0
	for _, v := range []bool{d.Flight != nil, d.Hotel != nil, d.Package != nil, d.Generic != nil} {
		if v {
			set++
		}
	}
	if set > 1 {
		return errors.New("only one detail variant may be set")
	}

	switch {
	case d.Flight != nil:
		if d.Category != CategoryVuelo {
			return fmt.Errorf("flight details do not match category %q", d.Category)
		}
		return d.Flight.validate()
	case d.Hotel != nil:
		if d.Category != CategoryHotel {
			return fmt.Errorf("hotel details do not match category %q", d.Category)
		}
		return d.Hotel.validate()
	case d.Package != nil:
		if d.Category != CategoryPaquete {
			return fmt.Errorf("package details do not match category %q", d.Category)
		}
		return d.Package.validate()
	case d.Generic != nil:
		if d.Category != CategoryAuto && d.Category != CategoryExcursion {
			return fmt.Errorf("generic details do not match category %q", d.Category)
		}
		return validateDate("fechaViaje", d.Generic.TravelDate)
	}
	return nil
}

func (f *FlightDetail) validate() error {
	if err := validateDate("fechaViaje", f.TravelDate); err != nil {
		return err
	}
	if err := validateDate("fechaRegreso", f.ReturnDate); err != nil {
		return err
	}
	if f.TravelDate != "" && f.ReturnDate != "" && f.ReturnDate < f.TravelDate {
		return errors.New("fechaRegreso must not be before fechaViaje")
	}
	if err := validateSeats(f.Seats); err != nil {
		return err
	}
	if f.Passengers < 0 {
		return errors.New("pasajeros must not be negative")
	}
	if f.Passengers > 0 && len(f.Seats) > f.Passengers {
		return errors.New("more seats than passengers")
	}
	return nil
}

func (h *HotelDetail) validate() error {
	if h.CheckIn == "" || h.CheckOut == "" {
		return errors.New("checkIn and checkOut are required")
	}
	if err := validateDate("checkIn", h.CheckIn); err != nil {
		return err
	}
	if err := validateDate("checkOut", h.CheckOut); err != nil {
		return err
	}
	if h.CheckOut <= h.CheckIn {
		return errors.New("checkOut must be after checkIn")
	}
	if h.Rooms < 0 || h.Guests < 0 {
		return errors.New("habitaciones and huespedes must not be negative")
	}
	return nil
}

func (p *PackageDetail) validate() error {
	if err := validateDate("fechaViaje", p.TravelDate); err != nil {
		return err
	}
	if p.Travelers < 0 {
		return errors.New("viajeros must not be negative")
	}
	return validateSeats(p.Seats)
}

// validateDate 空值视为未填写；YYYY-MM-DD 字符串可直接按字典序比较
func validateDate(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return fmt.Errorf("%s must be a YYYY-MM-DD date", field)
	}
	return nil
}

func validateSeats(seats []string) error {
	seen := make(map[string]struct{}, len(seats))
	for _, s := range seats {
		if s == "" {
			return errors.New("seat code cannot be empty")
		}
		if _, dup := seen[s]; dup {
			return fmt.Errorf("seat %s selected twice", s)
		}
		seen[s] = struct{}{}
	}
	return nil
}
