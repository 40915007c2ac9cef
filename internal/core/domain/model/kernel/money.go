package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed is returned when attempting to use an
// improperly initialized Money value.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney constructor")

// Money is an immutable monetary amount stored in cents. An order's total is
// fixed at creation and never recomputed, so Money exposes no arithmetic.
type Money struct { //nolint:recvcheck //using for validation
	cents int64
	guard guard.ConstructorGuard
}

// NewMoney creates a Money value from an amount in cents.
// The amount must be strictly positive.
func NewMoney(cents int64) (Money, error) {
	m := Money{
		guard: guard.NewConstructorGuard(),
	}

	if err := m.setCents(cents); err != nil {
		return Money{}, err
	}

	return m, nil
}

// Validate checks that the Money value was created through its constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 {
	return m.cents
}

// String implements fmt.Stringer, rendering the amount in decimal units.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}

// IsEqual compares two amounts.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

func (m *Money) setCents(cents int64) error {
	if cents <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("%d is not greater than 0", cents))
	}
	m.cents = cents
	return nil
}
