package etorder

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var customer = Customer{Name: "Ana Pérez", Email: "ana@example.com"}

func item(qty int, price string) LineItem {
	return LineItem{Description: "Paquete Bariloche", Quantity: qty, UnitPrice: decimal.RequireFromString(price)}
}

func TestNewOrderComputesTotal(t *testing.T) {
	tests := []struct {
		name  string
		items []LineItem
		want  string
	}{
		{"single line", []LineItem{item(2, "85000")}, "170000"},
		{"several lines", []LineItem{item(1, "100.10"), item(3, "0.30")}, "101"},
		{"cents stay exact", []LineItem{item(3, "0.1")}, "0.3"},
		{"trailing zeros accepted", []LineItem{item(1, "12.500")}, "12.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := NewOrder(1, "n-1", 10, customer, tt.items, NewDetails(CategoryPaquete))
			require.NoError(t, err)
			assert.True(t, order.Total.Equal(decimal.RequireFromString(tt.want)), "got %s", order.Total)
			assert.Equal(t, StatusPendiente, order.Status)
			assert.False(t, order.PlacedAt.IsZero())
		})
	}
}

func TestNewOrderValidation(t *testing.T) {
	details := NewDetails(CategoryPaquete)
	tests := []struct {
		name    string
		build   func() (*Order, error)
		wantErr error
	}{
		{"zero id", func() (*Order, error) { return NewOrder(0, "n", 1, customer, []LineItem{item(1, "1")}, details) }, ErrInvalidOrderID},
		{"empty number", func() (*Order, error) { return NewOrder(1, "", 1, customer, []LineItem{item(1, "1")}, details) }, ErrInvalidOrderNumber},
		{"no owner", func() (*Order, error) { return NewOrder(1, "n", 0, customer, []LineItem{item(1, "1")}, details) }, ErrInvalidOwner},
		{"no customer", func() (*Order, error) { return NewOrder(1, "n", 1, Customer{}, []LineItem{item(1, "1")}, details) }, ErrMissingCustomer},
		{"no items", func() (*Order, error) { return NewOrder(1, "n", 1, customer, nil, details) }, ErrNoLineItems},
		{"zero quantity", func() (*Order, error) { return NewOrder(1, "n", 1, customer, []LineItem{item(0, "1")}, details) }, ErrInvalidLineItem},
		{"zero price", func() (*Order, error) { return NewOrder(1, "n", 1, customer, []LineItem{item(1, "0")}, details) }, ErrInvalidLineItem},
		{"negative price", func() (*Order, error) { return NewOrder(1, "n", 1, customer, []LineItem{item(1, "-5")}, details) }, ErrInvalidLineItem},
		{"sub-cent price", func() (*Order, error) { return NewOrder(1, "n", 1, customer, []LineItem{item(1, "0.004")}, details) }, ErrInvalidLineItem},
		{"three decimals", func() (*Order, error) { return NewOrder(1, "n", 1, customer, []LineItem{item(2, "10.125")}, details) }, ErrInvalidLineItem},
		{"nil details", func() (*Order, error) { return NewOrder(1, "n", 1, customer, []LineItem{item(1, "1")}, nil) }, ErrInvalidDetails},
		{"receipt at creation", func() (*Order, error) {
			d := NewDetails(CategoryPaquete)
			d.Receipt = &Receipt{Name: "x.png", URL: "u"}
			return NewOrder(1, "n", 1, customer, []LineItem{item(1, "1")}, d)
		}, ErrInvalidDetails},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := tt.build()
			assert.Nil(t, order)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAttachReceiptReplaces(t *testing.T) {
	order, err := NewOrder(1, "n", 1, customer, []LineItem{item(1, "10")}, NewDetails(CategoryPaquete))
	require.NoError(t, err)
	order.Status = StatusVerificado

	prev, err := order.AttachReceipt(Receipt{Name: "recibo1.png", URL: "http://h/r/1.png"})
	require.NoError(t, err)
	assert.Nil(t, prev)

	prev, err = order.AttachReceipt(Receipt{Name: "recibo2.pdf", URL: "http://h/r/2.pdf"})
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, "recibo1.png", prev.Name)

	assert.Equal(t, "recibo2.pdf", order.Details.Receipt.Name)
	assert.Equal(t, StatusVerificado, order.Status, "receipt never touches status")

	raw, err := json.Marshal(order.Details)
	require.NoError(t, err)
	var flat map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &flat))
	assert.Equal(t, "recibo2.pdf", flat["comprobanteNombre"])
	assert.Equal(t, "http://h/r/2.pdf", flat["comprobanteUrl"])

	_, err = order.AttachReceipt(Receipt{Name: "x"})
	assert.ErrorIs(t, err, ErrInvalidReceipt)
}

func TestDetailsJSONRoundTripKeepsVariant(t *testing.T) {
	d := NewDetails(CategoryHotel)
	d.Hotel = &HotelDetail{CheckIn: "2025-03-01", CheckOut: "2025-03-04", Rooms: 1, Guests: 2}

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "comprobanteUrl")

	var back Details
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, *d, back)
	assert.Nil(t, back.Receipt)
}

func TestDetailsValidate(t *testing.T) {
	tests := []struct {
		name    string
		details *Details
		wantErr string
	}{
		{"empty variant ok", NewDetails(CategoryAuto), ""},
		{"unknown category", &Details{Version: 1, Category: "crucero"}, "unknown category"},
		{"flight ok", &Details{Version: 1, Category: CategoryVuelo, Flight: &FlightDetail{TravelDate: "2025-05-01", Seats: []string{"1A"}, Passengers: 1}}, ""},
		{"flight duplicate seat", &Details{Version: 1, Category: CategoryVuelo, Flight: &FlightDetail{Seats: []string{"1A", "1A"}}}, "selected twice"},
		{"flight more seats than passengers", &Details{Version: 1, Category: CategoryVuelo, Flight: &FlightDetail{Seats: []string{"1A", "1B"}, Passengers: 1}}, "more seats"},
		{"flight bad date", &Details{Version: 1, Category: CategoryVuelo, Flight: &FlightDetail{TravelDate: "01/05/2025"}}, "YYYY-MM-DD"},
		{"flight return before departure", &Details{Version: 1, Category: CategoryVuelo, Flight: &FlightDetail{TravelDate: "2025-05-10", ReturnDate: "2025-05-01"}}, "fechaRegreso"},
		{"variant mismatch", &Details{Version: 1, Category: CategoryHotel, Flight: &FlightDetail{}}, "do not match"},
		{"two variants", &Details{Version: 1, Category: CategoryVuelo, Flight: &FlightDetail{}, Hotel: &HotelDetail{}}, "only one"},
		{"hotel checkout before checkin", &Details{Version: 1, Category: CategoryHotel, Hotel: &HotelDetail{CheckIn: "2025-03-04", CheckOut: "2025-03-01"}}, "after checkIn"},
		{"hotel missing dates", &Details{Version: 1, Category: CategoryHotel, Hotel: &HotelDetail{}}, "required"},
		{"generic on excursion", &Details{Version: 1, Category: CategoryExcursion, Generic: &GenericDetail{Notes: "pickup 8am"}}, ""},
		{"generic on package", &Details{Version: 1, Category: CategoryPaquete, Generic: &GenericDetail{}}, "do not match"},
		{"package ok", &Details{Version: 1, Category: CategoryPaquete, Package: &PackageDetail{TravelDate: "2025-07-01", Travelers: 2}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.details.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
