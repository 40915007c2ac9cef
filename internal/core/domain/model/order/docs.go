// Package order provides domain entities and business logic for order
// lifecycle management in the delivery marketplace. It implements the Order
// aggregate root with role-gated state transitions.
//
// The package includes:
//   - Order: the aggregate root owning status, assignment, codes, and traces
//   - Status: a state machine that enforces valid lifecycle transitions
//   - ProblemReason: the closed taxonomy of delivery incident causes
//   - DomainEvent implementations emitted on every successful transition
//
// Key business rules:
//   - Status follows the defined workflow from pending through delivery;
//     delivered, refused, cancelled, and problem are terminal
//   - Every transition is gated by a single role-capability table plus a
//     relationship check against the acting party
//   - The courier reference is immutable once set; reassignment is rejected
//   - Pickup and delivery timestamps are stamped exactly once
//   - Route traces are append-only audit trails per delivery leg
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
