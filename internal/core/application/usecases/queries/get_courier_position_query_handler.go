package queries

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetCourierPositionQueryHandler retrieves a courier's latest position.
// Fails with ObjectNotFound for an unknown courier and for a courier that
// has never reported a position.
type GetCourierPositionQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierPositionQueryHandler creates a handler for position lookups.
func NewGetCourierPositionQueryHandler(db *gorm.DB) GetCourierPositionQueryHandler {
	return GetCourierPositionQueryHandler{db: db}
}

// Handle executes the position lookup.
func (h GetCourierPositionQueryHandler) Handle(
	ctx context.Context,
	query GetCourierPositionQuery,
) (GetCourierPositionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierPositionQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT last_lat, last_lng, last_captured_at
		FROM couriers
		WHERE id = ?
	`, query.CourierID().Bytes()).Rows()
	if err != nil {
		return GetCourierPositionQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetCourierPositionQueryResponse{}, err
		}
		return GetCourierPositionQueryResponse{},
			errs.NewObjectNotFoundError("courier_id", query.CourierID().String())
	}

	var row struct {
		LastLat        *float64
		LastLng        *float64
		LastCapturedAt *time.Time
	}
	if err = rows.Scan(&row.LastLat, &row.LastLng, &row.LastCapturedAt); err != nil {
		return GetCourierPositionQueryResponse{}, err
	}

	if row.LastLat == nil || row.LastLng == nil || row.LastCapturedAt == nil {
		return GetCourierPositionQueryResponse{},
			errs.NewObjectNotFoundErrorWithCause("courier position", query.CourierID().String(),
				errors.New("courier has not reported a position"))
	}

	point, err := kernel.NewGeoPoint(*row.LastLat, *row.LastLng)
	if err != nil {
		return GetCourierPositionQueryResponse{}, err
	}

	return GetCourierPositionQueryResponse{
		CourierID:  query.CourierID(),
		Position:   point,
		CapturedAt: *row.LastCapturedAt,
	}, nil
}
