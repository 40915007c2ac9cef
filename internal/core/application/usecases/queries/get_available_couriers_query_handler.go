package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableCouriersQueryHandler retrieves and ranks available couriers.
// Rows are restored into courier aggregates so the ranking goes through the
// same CourierSelector the assignment flow uses.
type GetAvailableCouriersQueryHandler struct {
	db       *gorm.DB
	selector services.CourierSelector
}

// NewGetAvailableCouriersQueryHandler creates a handler for courier ranking queries.
func NewGetAvailableCouriersQueryHandler(db *gorm.DB) GetAvailableCouriersQueryHandler {
	return GetAvailableCouriersQueryHandler{
		db:       db,
		selector: services.NewCourierSelector(),
	}
}

// Handle executes the query and returns couriers ordered by distance from
// the origin, couriers without a position last.
func (h GetAvailableCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableCouriersQuery,
) ([]GetAvailableCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			last_lat,
			last_lng,
			last_captured_at,
			version
		FROM couriers
		WHERE available
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	couriers := make([]*courier.Courier, 0)
	for rows.Next() {
		var id uuid.UUID
		var name string
		var lastLat, lastLng *float64
		var lastCapturedAt *time.Time
		var version int64

		if err = rows.Scan(&id, &name, &lastLat, &lastLng, &lastCapturedAt, &version); err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		var lastPosition *courier.PositionSample
		if lastLat != nil && lastLng != nil && lastCapturedAt != nil {
			point, pointErr := kernel.NewGeoPoint(*lastLat, *lastLng)
			if pointErr != nil {
				return nil, pointErr
			}
			sample, sampleErr := courier.NewPositionSample(point, *lastCapturedAt)
			if sampleErr != nil {
				return nil, sampleErr
			}
			lastPosition = &sample
		}

		aggregate, restoreErr := courier.RestoreCourier(courierID, name, true, lastPosition, version)
		if restoreErr != nil {
			return nil, restoreErr
		}
		couriers = append(couriers, aggregate)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	ranked, err := h.selector.ListAvailable(query.Origin(), couriers)
	if err != nil {
		return nil, err
	}

	responses := make([]GetAvailableCouriersQueryResponse, 0, len(ranked))
	for _, c := range ranked {
		resp := GetAvailableCouriersQueryResponse{
			ID:   c.ID(),
			Name: c.Name(),
		}
		if pos := c.LastPosition(); pos != nil {
			point := pos.Point()
			at := pos.CapturedAt()
			distance, distErr := query.Origin().DistanceTo(point)
			if distErr != nil {
				return nil, distErr
			}
			resp.Position = &point
			resp.PositionAt = &at
			resp.DistanceMeters = &distance
		}
		responses = append(responses, resp)
	}

	return responses, nil
}
