// Package courierrepo provides data transfer objects and mapping functions for courier persistence.
// This package implements the repository pattern for the courier domain aggregate, handling
// the conversion between domain entities and database representations.
package courierrepo

import (
	"time"

	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier aggregates.
// Only the latest position is stored; an accepted report overwrites the
// previous sample in place.
type CourierDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"type:varchar(255);not null"`
	Available      bool      `gorm:"not null;index"`
	LastLat        *float64
	LastLng        *float64
	LastCapturedAt *time.Time
	Version        int64 `gorm:"not null"`
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier domain aggregate to its database representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	dto := CourierDTO{
		ID:        aggregate.ID().Bytes(),
		Name:      aggregate.Name(),
		Available: aggregate.IsAvailable(),
		Version:   aggregate.Version(),
	}

	if pos := aggregate.LastPosition(); pos != nil {
		lat := pos.Point().Lat()
		lng := pos.Point().Lng()
		at := pos.CapturedAt()
		dto.LastLat = &lat
		dto.LastLng = &lng
		dto.LastCapturedAt = &at
	}

	return dto
}

// toDomain converts a database DTO to a courier domain aggregate using RestoreCourier.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var lastPosition *courier.PositionSample
	if dto.LastLat != nil && dto.LastLng != nil && dto.LastCapturedAt != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.LastLat, *dto.LastLng)
		if pointErr != nil {
			return nil, pointErr
		}
		sample, sampleErr := courier.NewPositionSample(point, *dto.LastCapturedAt)
		if sampleErr != nil {
			return nil, sampleErr
		}
		lastPosition = &sample
	}

	return courier.RestoreCourier(id, dto.Name, dto.Available, lastPosition, dto.Version)
}
