package order

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// TracePoint is one recorded courier position on an order's route trace.
// Traces are append-only and serve as the movement audit trail for each
// delivery leg.
type TracePoint struct {
	point kernel.GeoPoint
	at    time.Time
}

// NewTracePoint creates a trace point from a position and capture time.
func NewTracePoint(point kernel.GeoPoint, at time.Time) (TracePoint, error) {
	if err := point.Validate(); err != nil {
		return TracePoint{}, err
	}
	if at.IsZero() {
		return TracePoint{}, errs.NewValueIsRequiredError("captured_at")
	}

	return TracePoint{point: point, at: at}, nil
}

// Point returns the recorded position.
func (t TracePoint) Point() kernel.GeoPoint {
	return t.point
}

// At returns the capture time.
func (t TracePoint) At() time.Time {
	return t.at
}

// Validate checks the trace point carries a constructed position and a
// capture time.
func (t TracePoint) Validate() error {
	if err := t.point.Validate(); err != nil {
		return err
	}
	if t.at.IsZero() {
		return errs.NewValueIsRequiredError("captured_at")
	}
	return nil
}
