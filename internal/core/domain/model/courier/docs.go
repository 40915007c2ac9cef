// Package courier provides domain entities and business logic for courier
// management in the delivery marketplace. It implements the Courier aggregate
// root with availability control and live position tracking.
//
// The package includes:
//   - Courier: the aggregate root managing identity, availability, and the
//     latest known position
//   - PositionSample: the last reported position with its capture time
//
// Key business rules:
//   - Couriers must have a valid unique identifier and a non-empty name
//   - Position reports are accepted only while the courier is available
//   - The latest position is last-write-wins by capture time; samples older
//     than the stored one are discarded
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package courier
