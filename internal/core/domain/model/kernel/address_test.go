package kernel_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	validPoint, _ := kernel.NewGeoPoint(48.8566, 2.3522)

	t.Run("should create valid address", func(t *testing.T) {
		a, err := kernel.NewAddress("10 Rue de Rivoli", "Paris", "75001", validPoint)

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.Equal(t, "10 Rue de Rivoli", a.Street())
		assert.Equal(t, "Paris", a.City())
		assert.Equal(t, "75001", a.PostalCode())
		assert.Equal(t, validPoint, a.Point())
		assert.Equal(t, "10 Rue de Rivoli, 75001 Paris", a.String())
	})

	t.Run("should fail with empty street", func(t *testing.T) {
		_, err := kernel.NewAddress("", "Paris", "75001", validPoint)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "street")
	})

	t.Run("should fail with empty city", func(t *testing.T) {
		_, err := kernel.NewAddress("10 Rue de Rivoli", "", "75001", validPoint)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "city")
	})

	t.Run("should fail with empty postal code", func(t *testing.T) {
		_, err := kernel.NewAddress("10 Rue de Rivoli", "Paris", "", validPoint)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "postal_code")
	})

	t.Run("should fail with unconstructed point", func(t *testing.T) {
		var zeroPoint kernel.GeoPoint

		_, err := kernel.NewAddress("10 Rue de Rivoli", "Paris", "75001", zeroPoint)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "geo point must be created")
	})

	t.Run("should collect multiple errors", func(t *testing.T) {
		var zeroPoint kernel.GeoPoint

		_, err := kernel.NewAddress("", "", "", zeroPoint)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "street")
		assert.Contains(t, err.Error(), "city")
		assert.Contains(t, err.Error(), "postal_code")
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var a kernel.Address
		require.Error(t, a.Validate())
	})
}
