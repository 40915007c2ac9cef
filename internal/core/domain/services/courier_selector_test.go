package services_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func courierAt(t *testing.T, name string, lat, lng float64) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), name)
	require.NoError(t, err)

	point, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	applied, err := c.RecordPosition(point, time.Now())
	require.NoError(t, err)
	require.True(t, applied)
	return c
}

func TestCourierSelector_ListAvailable(t *testing.T) {
	origin, err := kernel.NewGeoPoint(48.8566, 2.3522)
	require.NoError(t, err)
	selector := services.NewCourierSelector()

	t.Run("should order couriers by distance from origin ascending", func(t *testing.T) {
		near := courierAt(t, "Near", 48.8570, 2.3530)
		mid := courierAt(t, "Mid", 48.9000, 2.4000)
		far := courierAt(t, "Far", 49.5000, 3.0000)

		ranked, err := selector.ListAvailable(origin, []*courier.Courier{far, near, mid})

		require.NoError(t, err)
		require.Len(t, ranked, 3)
		assert.True(t, ranked[0].IsEqual(near))
		assert.True(t, ranked[1].IsEqual(mid))
		assert.True(t, ranked[2].IsEqual(far))
	})

	t.Run("should skip unavailable couriers", func(t *testing.T) {
		onDuty := courierAt(t, "OnDuty", 48.9000, 2.4000)
		offDuty := courierAt(t, "OffDuty", 48.8570, 2.3530)
		require.NoError(t, offDuty.SetAvailability(false))

		ranked, err := selector.ListAvailable(origin, []*courier.Courier{offDuty, onDuty})

		require.NoError(t, err)
		require.Len(t, ranked, 1)
		assert.True(t, ranked[0].IsEqual(onDuty))
	})

	t.Run("should break distance ties by courier id", func(t *testing.T) {
		a := courierAt(t, "A", 48.9000, 2.4000)
		b := courierAt(t, "B", 48.9000, 2.4000)

		ranked, err := selector.ListAvailable(origin, []*courier.Courier{a, b})
		require.NoError(t, err)
		require.Len(t, ranked, 2)
		assert.Less(t, ranked[0].ID().String(), ranked[1].ID().String())

		// Same result regardless of input order.
		reversed, err := selector.ListAvailable(origin, []*courier.Courier{b, a})
		require.NoError(t, err)
		require.Len(t, reversed, 2)
		assert.True(t, ranked[0].IsEqual(reversed[0]))
	})

	t.Run("should rank couriers without a position last", func(t *testing.T) {
		positioned := courierAt(t, "Positioned", 49.5000, 3.0000)
		fresh, err := courier.NewCourier(kernel.NewUUID(), "Fresh")
		require.NoError(t, err)

		ranked, err := selector.ListAvailable(origin, []*courier.Courier{fresh, positioned})

		require.NoError(t, err)
		require.Len(t, ranked, 2)
		assert.True(t, ranked[0].IsEqual(positioned))
		assert.True(t, ranked[1].IsEqual(fresh))
	})

	t.Run("should return empty ranking when no courier is available", func(t *testing.T) {
		offDuty := courierAt(t, "OffDuty", 48.8570, 2.3530)
		require.NoError(t, offDuty.SetAvailability(false))

		ranked, err := selector.ListAvailable(origin, []*courier.Courier{offDuty})

		require.NoError(t, err)
		assert.Empty(t, ranked)
	})

	t.Run("should fail with unconstructed courier", func(t *testing.T) {
		var zero courier.Courier

		_, err := selector.ListAvailable(origin, []*courier.Courier{&zero})
		require.ErrorIs(t, err, courier.ErrCourierIsNotConstructed)
	})
}
