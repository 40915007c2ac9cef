// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed on the party references so relationship-scoped reads stay cheap.
// The version column carries the optimistic-lock counter every write is
// guarded on.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ClientID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	MerchantID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	CourierID     *uuid.UUID `gorm:"type:uuid;index"`
	Status        string     `gorm:"type:varchar(32);not null;index"`
	TotalCents    int64      `gorm:"not null"`
	Address       AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	CreatedAt     time.Time  `gorm:"not null"`
	PickedUpAt    *time.Time
	DeliveredAt   *time.Time
	ClientCode    string  `gorm:"type:varchar(16);not null"`
	MerchantCode  string  `gorm:"type:varchar(16);not null"`
	ProblemReason *string `gorm:"type:varchar(32)"`
	TraceMerchant []TracePointDTO `gorm:"type:jsonb;serializer:json"`
	TraceClient   []TracePointDTO `gorm:"type:jsonb;serializer:json"`
	Version       int64 `gorm:"not null"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents the embedded delivery address within the order table.
type AddressDTO struct {
	Street     string  `gorm:"type:varchar(255);not null"`
	City       string  `gorm:"type:varchar(255);not null"`
	PostalCode string  `gorm:"type:varchar(16);not null"`
	Lat        float64 `gorm:"not null"`
	Lng        float64 `gorm:"not null"`
}

// TracePointDTO is one point of a route trace leg, stored as a jsonb array
// element. Traces are append-only; the whole array is rewritten on update.
type TracePointDTO struct {
	Lat float64   `json:"lat"`
	Lng float64   `json:"lng"`
	At  time.Time `json:"at"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	var problemReason *string
	if reason := aggregate.ProblemReason(); reason != nil {
		raw := reason.String()
		problemReason = &raw
	}

	addr := aggregate.DeliveryAddress()
	return OrderDTO{
		ID:         aggregate.ID().Bytes(),
		ClientID:   aggregate.ClientID().Bytes(),
		MerchantID: aggregate.MerchantID().Bytes(),
		CourierID:  courierID,
		Status:     aggregate.Status().String(),
		TotalCents: aggregate.Total().Cents(),
		Address: AddressDTO{
			Street:     addr.Street(),
			City:       addr.City(),
			PostalCode: addr.PostalCode(),
			Lat:        addr.Point().Lat(),
			Lng:        addr.Point().Lng(),
		},
		CreatedAt:     aggregate.CreatedAt(),
		PickedUpAt:    aggregate.PickedUpAt(),
		DeliveredAt:   aggregate.DeliveredAt(),
		ClientCode:    aggregate.ClientCode(),
		MerchantCode:  aggregate.MerchantCode(),
		ProblemReason: problemReason,
		TraceMerchant: traceFromDomain(aggregate.TraceMerchant()),
		TraceClient:   traceFromDomain(aggregate.TraceClient()),
		Version:       aggregate.Version(),
	}
}

func traceFromDomain(trace []order.TracePoint) []TracePointDTO {
	dtos := make([]TracePointDTO, 0, len(trace))
	for _, tp := range trace {
		dtos = append(dtos, TracePointDTO{
			Lat: tp.Point().Lat(),
			Lng: tp.Point().Lng(),
			At:  tp.At(),
		})
	}
	return dtos
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}
	merchantID, err := kernel.UUIDFromBytes(dto.MerchantID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var problemReason *order.ProblemReason
	if dto.ProblemReason != nil {
		reason, reasonErr := order.ProblemReasonFromString(*dto.ProblemReason)
		if reasonErr != nil {
			return nil, reasonErr
		}
		problemReason = &reason
	}

	point, err := kernel.NewGeoPoint(dto.Address.Lat, dto.Address.Lng)
	if err != nil {
		return nil, err
	}
	address, err := kernel.NewAddress(dto.Address.Street, dto.Address.City, dto.Address.PostalCode, point)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.TotalCents)
	if err != nil {
		return nil, err
	}

	traceMerchant, err := traceToDomain(dto.TraceMerchant)
	if err != nil {
		return nil, err
	}
	traceClient, err := traceToDomain(dto.TraceClient)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:              id,
		ClientID:        clientID,
		MerchantID:      merchantID,
		CourierID:       courierID,
		Status:          status,
		Total:           total,
		DeliveryAddress: address,
		CreatedAt:       dto.CreatedAt,
		PickedUpAt:      dto.PickedUpAt,
		DeliveredAt:     dto.DeliveredAt,
		ClientCode:      dto.ClientCode,
		MerchantCode:    dto.MerchantCode,
		ProblemReason:   problemReason,
		TraceMerchant:   traceMerchant,
		TraceClient:     traceClient,
		Version:         dto.Version,
	})
}

func traceToDomain(dtos []TracePointDTO) ([]order.TracePoint, error) {
	trace := make([]order.TracePoint, 0, len(dtos))
	for _, dto := range dtos {
		point, err := kernel.NewGeoPoint(dto.Lat, dto.Lng)
		if err != nil {
			return nil, err
		}
		tp, err := order.NewTracePoint(point, dto.At)
		if err != nil {
			return nil, err
		}
		trace = append(trace, tp)
	}
	return trace, nil
}
