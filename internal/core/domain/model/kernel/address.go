package kernel

import (
	"errors"
	"fmt"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when attempting to use an
// improperly initialized Address.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address is an immutable delivery address: street, city, postal code,
// and the geocoded point used for courier proximity.
type Address struct { //nolint:recvcheck //using for validation
	street     string
	city       string
	postalCode string
	point      GeoPoint
	guard      guard.ConstructorGuard
}

// NewAddress creates a validated Address. Street, city, and postal code are
// required; the point must be a properly constructed GeoPoint.
func NewAddress(street, city, postalCode string, point GeoPoint) (Address, error) {
	a := Address{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setStreet(street),
		a.setCity(city),
		a.setPostalCode(postalCode),
		a.setPoint(point),
	); err != nil {
		return Address{}, err
	}

	return a, nil
}

// Validate checks that the Address was created through its constructor.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Street returns the street line.
func (a Address) Street() string {
	return a.street
}

// City returns the city name.
func (a Address) City() string {
	return a.city
}

// PostalCode returns the postal code.
func (a Address) PostalCode() string {
	return a.postalCode
}

// Point returns the geocoded coordinates of the address.
func (a Address) Point() GeoPoint {
	return a.point
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return fmt.Sprintf("%s, %s %s", a.street, a.postalCode, a.city)
}

func (a *Address) setStreet(street string) error {
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	a.street = street
	return nil
}

func (a *Address) setCity(city string) error {
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}

func (a *Address) setPostalCode(postalCode string) error {
	if postalCode == "" {
		return errs.NewValueIsRequiredError("postal_code")
	}
	a.postalCode = postalCode
	return nil
}

func (a *Address) setPoint(point GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	a.point = point
	return nil
}
