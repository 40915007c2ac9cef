package kernel

import (
	"errors"
	"fmt"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// Role identifies the kind of party performing an operation.
// Every core call receives an explicit Actor; there is no ambient
// request-scoped user state anywhere in the system.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleClient is the ordering party.
	RoleClient

	// RoleMerchant is the party preparing the order.
	RoleMerchant

	// RoleCourier is the delivery-performing party.
	RoleCourier

	// RoleAdmin is the operator role with cross-party visibility.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleClient:   "client",
		RoleMerchant: "merchant",
		RoleCourier:  "courier",
		RoleAdmin:    "admin",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleClient:   "client",
		RoleMerchant: "merchant",
		RoleCourier:  "courier",
		RoleAdmin:    "admin",
	}
}

// RoleFromString parses a role name ("client", "merchant", "courier",
// "admin") into a Role. Returns an error for any other input.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is one of the four valid roles.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the lowercase role name, or "unknown" for invalid values.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// ErrActorIsNotConstructed is returned when attempting to use an
// improperly initialized Actor.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError(
	"actor must be created via NewActor constructor")

// Actor is the validated identity performing a core operation: a party
// reference plus its role. Authentication happens outside the core; the
// boundary supplies an already-verified Actor to every call.
type Actor struct { //nolint:recvcheck //using for validation
	id    UUID
	role  Role
	guard guard.ConstructorGuard
}

// NewActor creates an Actor from a party reference and role.
func NewActor(id UUID, role Role) (Actor, error) {
	a := Actor{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(a.setID(id), a.setRole(role)); err != nil {
		return Actor{}, err
	}

	return a, nil
}

// Validate checks that the Actor was created through its constructor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// ID returns the party reference.
func (a Actor) ID() UUID {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// String implements fmt.Stringer.
func (a Actor) String() string {
	return fmt.Sprintf("%s(%s)", a.role, a.id)
}

func (a *Actor) setID(id UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Actor) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}
