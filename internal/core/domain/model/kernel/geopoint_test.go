package kernel_test

import (
	"math"
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("should create valid point", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(48.8566, 2.3522)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.InDelta(t, 48.8566, p.Lat(), 1e-9)
		assert.InDelta(t, 2.3522, p.Lng(), 1e-9)
	})

	t.Run("should accept boundary coordinates", func(t *testing.T) {
		for _, coords := range [][2]float64{
			{-90, -180},
			{90, 180},
			{0, 0},
		} {
			p, err := kernel.NewGeoPoint(coords[0], coords[1])
			require.NoError(t, err)
			require.NoError(t, p.Validate())
		}
	})

	t.Run("should fail with latitude out of range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(90.0001, 0)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "lat")
	})

	t.Run("should fail with longitude out of range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(0, -180.5)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "lng")
	})

	t.Run("should fail with NaN coordinates", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(math.NaN(), 0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = kernel.NewGeoPoint(0, math.Inf(1))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should collect both coordinate errors", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(-91, 181)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "lat")
		assert.Contains(t, err.Error(), "lng")
	})
}

func TestGeoPointValidate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var p kernel.GeoPoint

		require.Error(t, p.Validate())
		assert.Contains(t, p.Validate().Error(), "geo point must be created")
	})
}

func TestGeoPointIsEqual(t *testing.T) {
	t.Run("equal points", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(45.75, 4.85)
		p2, _ := kernel.NewGeoPoint(45.75, 4.85)

		equal, err := p1.IsEqual(p2)
		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("different points", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(45.75, 4.85)
		p2, _ := kernel.NewGeoPoint(45.76, 4.85)

		equal, err := p1.IsEqual(p2)
		require.NoError(t, err)
		assert.False(t, equal)
	})

	t.Run("comparison with zero value fails", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(45.75, 4.85)
		var p2 kernel.GeoPoint

		_, err := p1.IsEqual(p2)
		require.Error(t, err)
	})
}

func TestGeoPointDistanceTo(t *testing.T) {
	t.Run("distance to self is zero", func(t *testing.T) {
		p, _ := kernel.NewGeoPoint(48.8566, 2.3522)

		d, err := p.DistanceTo(p)
		require.NoError(t, err)
		assert.InDelta(t, 0, d, 1e-6)
	})

	t.Run("Paris to Lyon is roughly 392 km", func(t *testing.T) {
		paris, _ := kernel.NewGeoPoint(48.8566, 2.3522)
		lyon, _ := kernel.NewGeoPoint(45.7640, 4.8357)

		d, err := paris.DistanceTo(lyon)
		require.NoError(t, err)
		assert.InDelta(t, 392000, d, 5000)
	})

	t.Run("distance is symmetric", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(48.8566, 2.3522)
		p2, _ := kernel.NewGeoPoint(45.7640, 4.8357)

		d1, err := p1.DistanceTo(p2)
		require.NoError(t, err)
		d2, err := p2.DistanceTo(p1)
		require.NoError(t, err)

		assert.InDelta(t, d1, d2, 1e-6)
	})

	t.Run("distance from zero value fails", func(t *testing.T) {
		var p1 kernel.GeoPoint
		p2, _ := kernel.NewGeoPoint(45.75, 4.85)

		_, err := p1.DistanceTo(p2)
		require.Error(t, err)
	})
}
