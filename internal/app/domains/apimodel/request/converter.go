package request

import (
	"tourshop/internal/app/domains/entity/etorder"
	"tourshop/internal/app/domains/services/svorder"
)

// ToCommand 将 Request DTO 转换为创建订单命令
func (r *CreateOrderRequest) ToCommand() *svorder.CreateOrderCommand {
	return &svorder.CreateOrderCommand{
		OwnerUserID:   r.OwnerUserID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		Category:      etorder.Category(r.Category),
		LineItems:     toLineItemInputs(r.LineItems),
		Details:       toDetailsEntity(r.Details),
		ClientTotal:   r.Total,
	}
}

func toLineItemInputs(dtos []*LineItem) []svorder.LineItemInput {
	items := make([]svorder.LineItemInput, 0, len(dtos))
	for _, dto := range dtos {
		if dto == nil {
			continue
		}
		items = append(items, svorder.LineItemInput{
			ProductCode: dto.ProductCode,
			Description: dto.Description,
			Quantity:    dto.Quantity,
			UnitPrice:   dto.UnitPrice,
		})
	}
	return items
}

// toDetailsEntity 类目由服务层决定，这里只转换变体
func toDetailsEntity(dto *Details) *etorder.Details {
	if dto == nil {
		return nil
	}
	details := &etorder.Details{}
	if dto.Vuelo != nil {
		details.Flight = &etorder.FlightDetail{
			TravelDate: dto.Vuelo.FechaViaje,
			ReturnDate: dto.Vuelo.FechaRegreso,
			Seats:      dto.Vuelo.Asientos,
			Passengers: dto.Vuelo.Pasajeros,
		}
	}
	if dto.Hotel != nil {
		details.Hotel = &etorder.HotelDetail{
			CheckIn:  dto.Hotel.CheckIn,
			CheckOut: dto.Hotel.CheckOut,
			Rooms:    dto.Hotel.Habitaciones,
			Guests:   dto.Hotel.Huespedes,
		}
	}
	if dto.Paquete != nil {
		details.Package = &etorder.PackageDetail{
			TravelDate: dto.Paquete.FechaViaje,
			Travelers:  dto.Paquete.Viajeros,
			Seats:      dto.Paquete.Asientos,
		}
	}
	if dto.General != nil {
		details.Generic = &etorder.GenericDetail{
			TravelDate: dto.General.FechaViaje,
			Notes:      dto.General.Notas,
		}
	}
	return details
}
