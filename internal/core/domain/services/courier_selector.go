package services

import (
	"sort"

	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/kernel"
)

// CourierSelector is a domain service that ranks couriers for assignment to
// an order by proximity to the pickup origin (the merchant's address).
//
// Selection rules:
//   - Only available couriers are considered
//   - Candidates are ordered by straight-line distance from origin, ascending
//   - Ties are broken by courier identifier for determinism
//   - Couriers that never reported a position rank after all positioned ones
type CourierSelector struct{}

// NewCourierSelector creates a new CourierSelector instance.
func NewCourierSelector() CourierSelector {
	return CourierSelector{}
}

// ListAvailable returns the available couriers ordered by distance from
// origin. The input slice is not modified. Couriers that fail construction
// validation abort the ranking with an error.
func (s CourierSelector) ListAvailable(origin kernel.GeoPoint, couriers []*courier.Courier) ([]*courier.Courier, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}

	type candidate struct {
		courier     *courier.Courier
		distance    float64
		hasPosition bool
	}

	candidates := make([]candidate, 0, len(couriers))
	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if !c.IsAvailable() {
			continue
		}

		cand := candidate{courier: c}
		if pos := c.LastPosition(); pos != nil {
			distance, err := origin.DistanceTo(pos.Point())
			if err != nil {
				return nil, err
			}
			cand.hasPosition = true
			cand.distance = distance
		}
		candidates = append(candidates, cand)
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.hasPosition != b.hasPosition {
			return a.hasPosition
		}
		if a.hasPosition && a.distance != b.distance {
			return a.distance < b.distance
		}
		return a.courier.ID().String() < b.courier.ID().String()
	})

	ranked := make([]*courier.Courier, len(candidates))
	for i, cand := range candidates {
		ranked[i] = cand.courier
	}
	return ranked, nil
}
