package kernel_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should create valid amount", func(t *testing.T) {
		m, err := kernel.NewMoney(5897)

		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.Equal(t, int64(5897), m.Cents())
		assert.Equal(t, "58.97", m.String())
	})

	t.Run("should fail with zero amount", func(t *testing.T) {
		_, err := kernel.NewMoney(0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "total")
	})

	t.Run("should fail with negative amount", func(t *testing.T) {
		_, err := kernel.NewMoney(-100)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "-100 is not greater than 0")
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var m kernel.Money
		require.Error(t, m.Validate())
	})
}

func TestMoneyIsEqual(t *testing.T) {
	t.Run("equal amounts", func(t *testing.T) {
		m1, _ := kernel.NewMoney(1250)
		m2, _ := kernel.NewMoney(1250)

		assert.True(t, m1.IsEqual(m2))
	})

	t.Run("different amounts", func(t *testing.T) {
		m1, _ := kernel.NewMoney(1250)
		m2, _ := kernel.NewMoney(1350)

		assert.False(t, m1.IsEqual(m2))
	})
}
