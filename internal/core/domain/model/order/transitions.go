package order

import "marketplace/internal/core/domain/model/kernel"

// edge is a (source, target) pair in the status transition table.
type edge struct {
	from Status
	to   Status
}

// transitionRoles is the single role-capability table for the state machine.
// Each legal edge maps to the set of roles allowed to drive it; the table is
// consulted exactly once per transition instead of re-checking roles ad hoc
// at every call site.
//
// Relationship gating (the acting client must be the order's client, the
// acting courier its assigned courier, and so on) happens separately in
// Order.TransitionTo; this table only answers "may this role ever drive
// this edge".
func transitionRoles() map[edge][]kernel.Role {
	problemReporters := []kernel.Role{
		kernel.RoleClient, kernel.RoleMerchant, kernel.RoleCourier, kernel.RoleAdmin,
	}

	return map[edge][]kernel.Role{
		{StatusPending, StatusInPreparation}: {kernel.RoleMerchant},
		{StatusPending, StatusRefused}:       {kernel.RoleMerchant},
		{StatusPending, StatusCancelled}:     {kernel.RoleClient},

		{StatusInPreparation, StatusReadyForPickup}: {kernel.RoleMerchant, kernel.RoleAdmin},

		{StatusReadyForPickup, StatusPickedUp}: {kernel.RoleCourier},
		{StatusPickedUp, StatusInDelivery}:     {kernel.RoleCourier},
		{StatusInDelivery, StatusDelivered}:    {kernel.RoleCourier},

		{StatusPending, StatusProblem}:        problemReporters,
		{StatusInPreparation, StatusProblem}:  problemReporters,
		{StatusReadyForPickup, StatusProblem}: problemReporters,
		{StatusPickedUp, StatusProblem}:       problemReporters,
		{StatusInDelivery, StatusProblem}:     problemReporters,
	}
}

// roleMayTransition reports whether the role is allowed to drive the
// (from, to) edge according to the capability table.
func roleMayTransition(role kernel.Role, from, to Status) bool {
	for _, allowed := range transitionRoles()[edge{from, to}] {
		if allowed == role {
			return true
		}
	}
	return false
}
