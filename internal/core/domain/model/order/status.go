package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// Transitions are restricted to the edges below; every write re-checks the
// source state so racing transitions resolve to one winner and one Conflict.
//
// State transitions:
//
//	pending ──┬──> in_preparation ──> ready_for_pickup ──> picked_up ──> in_delivery ──> delivered
//	          ├──> refused                                                   │
//	          └──> cancelled                                                 └──> problem
//	(every non-terminal state may also move to problem via an incident report)
//
// delivered, refused, cancelled, and problem are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status: created by the client, awaiting
	// the merchant's decision.
	StatusPending

	// StatusRefused means the merchant declined the order. Terminal.
	StatusRefused

	// StatusInPreparation means the merchant accepted and is preparing the
	// order. Courier assignment happens in this state.
	StatusInPreparation

	// StatusReadyForPickup means the order awaits its assigned courier at
	// the merchant.
	StatusReadyForPickup

	// StatusPickedUp means the assigned courier holds the order.
	StatusPickedUp

	// StatusInDelivery means the courier is en route to the client.
	StatusInDelivery

	// StatusDelivered means the order reached the client. Terminal.
	StatusDelivered

	// StatusCancelled means the client withdrew the order before the
	// merchant acted. Terminal.
	StatusCancelled

	// StatusProblem flags a delivery incident reported from any active
	// state. Terminal.
	StatusProblem
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "unknown",
		StatusPending:        "pending",
		StatusRefused:        "refused",
		StatusInPreparation:  "in_preparation",
		StatusReadyForPickup: "ready_for_pickup",
		StatusPickedUp:       "picked_up",
		StatusInDelivery:     "in_delivery",
		StatusDelivered:      "delivered",
		StatusCancelled:      "cancelled",
		StatusProblem:        "problem",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:        "pending",
		StatusRefused:        "refused",
		StatusInPreparation:  "in_preparation",
		StatusReadyForPickup: "ready_for_pickup",
		StatusPickedUp:       "picked_up",
		StatusInDelivery:     "in_delivery",
		StatusDelivered:      "delivered",
		StatusCancelled:      "cancelled",
		StatusProblem:        "problem",
	}
}

// nextStatuses is the complete transition table. Any (source, target) pair
// absent from this table is an illegal transition.
func nextStatuses() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:        {StatusInPreparation, StatusRefused, StatusCancelled, StatusProblem},
		StatusInPreparation:  {StatusReadyForPickup, StatusProblem},
		StatusReadyForPickup: {StatusPickedUp, StatusProblem},
		StatusPickedUp:       {StatusInDelivery, StatusProblem},
		StatusInDelivery:     {StatusDelivered, StatusProblem},
	}
}

// StatusFromString parses a status name into a Status.
// Returns an error for any name outside the valid set.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the nine valid statuses.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case status name, or "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no outgoing transitions.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusDelivered, StatusRefused, StatusCancelled, StatusProblem:
		return true
	default:
		return false
	}
}

// IsActiveDelivery reports whether the assigned courier is currently moving
// the order. Position samples append to a route trace only in these states.
func (s Status) IsActiveDelivery() bool {
	return s == StatusPickedUp || s == StatusInDelivery
}

// CanTransitionTo reports whether the (s, target) edge exists in the
// transition table.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range nextStatuses()[s] {
		if next == target {
			return true
		}
	}
	return false
}
