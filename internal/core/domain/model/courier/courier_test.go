package courier_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPoint(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return p
}

func TestNewCourier(t *testing.T) {
	t.Run("creates available courier without position", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "Jean Dupont")

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.True(t, c.IsAvailable())
		assert.Nil(t, c.LastPosition())
		assert.Equal(t, int64(0), c.Version())
	})

	t.Run("fails without name", func(t *testing.T) {
		_, err := courier.NewCourier(kernel.NewUUID(), "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("fails with unconstructed id", func(t *testing.T) {
		var id kernel.UUID
		_, err := courier.NewCourier(id, "Jean Dupont")
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var c courier.Courier
		require.ErrorIs(t, c.Validate(), courier.ErrCourierIsNotConstructed)
	})
}

func TestCourierRecordPosition(t *testing.T) {
	t.Run("applies first sample", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "Jean Dupont")
		require.NoError(t, err)
		at := time.Now()

		applied, err := c.RecordPosition(testPoint(t, 48.8566, 2.3522), at)

		require.NoError(t, err)
		assert.True(t, applied)
		require.NotNil(t, c.LastPosition())
		assert.Equal(t, at, c.LastPosition().CapturedAt())
	})

	t.Run("newer sample supersedes previous", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "Jean Dupont")
		require.NoError(t, err)
		base := time.Now()

		_, err = c.RecordPosition(testPoint(t, 48.8566, 2.3522), base)
		require.NoError(t, err)

		applied, err := c.RecordPosition(testPoint(t, 48.8600, 2.3600), base.Add(time.Second))
		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, base.Add(time.Second), c.LastPosition().CapturedAt())
	})

	t.Run("discards stale sample without error", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "Jean Dupont")
		require.NoError(t, err)
		base := time.Now()
		current := testPoint(t, 48.8566, 2.3522)

		_, err = c.RecordPosition(current, base)
		require.NoError(t, err)

		applied, err := c.RecordPosition(testPoint(t, 48.0, 2.0), base.Add(-time.Minute))
		require.NoError(t, err)
		assert.False(t, applied)
		unchanged, err := c.LastPosition().Point().IsEqual(current)
		require.NoError(t, err)
		assert.True(t, unchanged)
		assert.Equal(t, base, c.LastPosition().CapturedAt())
	})

	t.Run("discards sample with equal capture time", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "Jean Dupont")
		require.NoError(t, err)
		at := time.Now()

		_, err = c.RecordPosition(testPoint(t, 48.8566, 2.3522), at)
		require.NoError(t, err)

		applied, err := c.RecordPosition(testPoint(t, 48.0, 2.0), at)
		require.NoError(t, err)
		assert.False(t, applied)
	})

	t.Run("fails while unavailable and keeps stored position", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "Jean Dupont")
		require.NoError(t, err)
		base := time.Now()
		current := testPoint(t, 48.8566, 2.3522)

		_, err = c.RecordPosition(current, base)
		require.NoError(t, err)
		require.NoError(t, c.SetAvailability(false))

		applied, err := c.RecordPosition(testPoint(t, 48.9, 2.4), base.Add(time.Second))
		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.False(t, applied)
		unchanged, err := c.LastPosition().Point().IsEqual(current)
		require.NoError(t, err)
		assert.True(t, unchanged)
	})

	t.Run("fails with zero capture time", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "Jean Dupont")
		require.NoError(t, err)

		_, err = c.RecordPosition(testPoint(t, 48.8566, 2.3522), time.Time{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestCourierAvailability(t *testing.T) {
	t.Run("last position stays readable after going off duty", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "Jean Dupont")
		require.NoError(t, err)

		_, err = c.RecordPosition(testPoint(t, 48.8566, 2.3522), time.Now())
		require.NoError(t, err)
		require.NoError(t, c.SetAvailability(false))

		assert.False(t, c.IsAvailable())
		assert.NotNil(t, c.LastPosition())
	})

	t.Run("reports resume after coming back on duty", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "Jean Dupont")
		require.NoError(t, err)
		require.NoError(t, c.SetAvailability(false))
		require.NoError(t, c.SetAvailability(true))

		applied, err := c.RecordPosition(testPoint(t, 48.8566, 2.3522), time.Now())
		require.NoError(t, err)
		assert.True(t, applied)
	})
}

func TestRestoreCourier(t *testing.T) {
	t.Run("restores persisted state verbatim", func(t *testing.T) {
		sample, err := courier.NewPositionSample(testPoint(t, 48.8566, 2.3522), time.Now().UTC())
		require.NoError(t, err)

		c, err := courier.RestoreCourier(kernel.NewUUID(), "Jean Dupont", false, &sample, 3)

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.False(t, c.IsAvailable())
		assert.Equal(t, int64(3), c.Version())
		require.NotNil(t, c.LastPosition())
		samePoint, err := c.LastPosition().Point().IsEqual(sample.Point())
		require.NoError(t, err)
		assert.True(t, samePoint)
	})

	t.Run("fails without name", func(t *testing.T) {
		_, err := courier.RestoreCourier(kernel.NewUUID(), "", true, nil, 0)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
