package http

import "time"

// Error is the uniform error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrder is the request body for POST /api/v1/orders.
type NewOrder struct {
	MerchantID string  `json:"merchant_id"`
	TotalCents int64   `json:"total_cents"`
	Street     string  `json:"street"`
	City       string  `json:"city"`
	PostalCode string  `json:"postal_code"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
}

// OrderCreated is the response body for POST /api/v1/orders.
type OrderCreated struct {
	ID string `json:"id"`
}

// Order is one element of the GET /api/v1/orders response.
type Order struct {
	ID            string     `json:"id"`
	ClientID      string     `json:"client_id"`
	MerchantID    string     `json:"merchant_id"`
	CourierID     *string    `json:"courier_id,omitempty"`
	Status        string     `json:"status"`
	TotalCents    int64      `json:"total_cents"`
	Street        string     `json:"street"`
	City          string     `json:"city"`
	PostalCode    string     `json:"postal_code"`
	CreatedAt     time.Time  `json:"created_at"`
	PickedUpAt    *time.Time `json:"picked_up_at,omitempty"`
	DeliveredAt   *time.Time `json:"delivered_at,omitempty"`
	ProblemReason *string    `json:"problem_reason,omitempty"`
}

// Transition is the request body for POST /api/v1/orders/:id/transition.
type Transition struct {
	Status string  `json:"status"`
	Reason *string `json:"reason,omitempty"`
}

// Assignment is the request body for POST /api/v1/orders/:id/courier.
type Assignment struct {
	CourierID string `json:"courier_id"`
}

// NewCourier is the request body for POST /api/v1/couriers.
type NewCourier struct {
	Name string `json:"name"`
}

// CourierCreated is the response body for POST /api/v1/couriers.
type CourierCreated struct {
	ID string `json:"id"`
}

// Availability is the request body for POST /api/v1/couriers/:id/availability.
type Availability struct {
	Available bool `json:"available"`
}

// PositionReport is the request body for POST /api/v1/couriers/position.
type PositionReport struct {
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	CapturedAt time.Time `json:"captured_at"`
}

// CourierPosition is the response body for GET /api/v1/couriers/:id/position.
type CourierPosition struct {
	CourierID  string    `json:"courier_id"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	CapturedAt time.Time `json:"captured_at"`
}

// AvailableCourier is one element of the GET /api/v1/couriers/available
// response. Position fields are absent for couriers that have not reported
// a position yet.
type AvailableCourier struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Lat            *float64   `json:"lat,omitempty"`
	Lng            *float64   `json:"lng,omitempty"`
	PositionAt     *time.Time `json:"position_at,omitempty"`
	DistanceMeters *float64   `json:"distance_meters,omitempty"`
}
