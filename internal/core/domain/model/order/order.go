package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are properly
// validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Order is the aggregate root for a delivery transaction linking a client, a
// merchant, and (once assigned) a courier. It owns every status write: the
// status field changes only through TransitionTo, and the courier reference
// only through AssignCourier.
//
// Invariants:
//   - status transitions follow the table in status.go; no direct mutation
//   - client and merchant references are immutable after creation
//   - the courier reference is nil until assignment and immutable once set
//   - total is fixed at creation and never recomputed
//   - picked_up_at and delivered_at are written exactly once, by their
//     transitions, and picked_up_at <= delivered_at when both are set
//   - route traces are append-only
type Order struct {
	id         kernel.UUID
	clientID   kernel.UUID
	merchantID kernel.UUID
	courierID  *kernel.UUID

	status Status
	total  kernel.Money

	deliveryAddress kernel.Address

	createdAt   time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time

	clientCode   string
	merchantCode string

	problemReason *ProblemReason

	traceMerchant []TracePoint
	traceClient   []TracePoint

	// version counts committed writes; repositories use it for
	// compare-and-set updates.
	version int64

	pendingEvents []DomainEvent

	isConstructed bool
}

// NewOrder creates a pending order for a client/merchant pair. The total and
// delivery address are fixed for the life of the order, and both handoff
// confirmation codes are generated here.
func NewOrder(
	id kernel.UUID,
	clientID kernel.UUID,
	merchantID kernel.UUID,
	total kernel.Money,
	deliveryAddress kernel.Address,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		createdAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setClientID(clientID),
		o.setMerchantID(merchantID),
		o.setTotal(total),
		o.setDeliveryAddress(deliveryAddress),
	); err != nil {
		return nil, err
	}

	clientCode, err := newConfirmationCode()
	if err != nil {
		return nil, err
	}
	merchantCode, err := newConfirmationCode()
	if err != nil {
		return nil, err
	}
	o.clientCode = clientCode
	o.merchantCode = merchantCode

	return o, nil
}

// RestoreOrderParams carries the persisted state of an order back into the
// domain model.
type RestoreOrderParams struct {
	ID              kernel.UUID
	ClientID        kernel.UUID
	MerchantID      kernel.UUID
	CourierID       *kernel.UUID
	Status          Status
	Total           kernel.Money
	DeliveryAddress kernel.Address
	CreatedAt       time.Time
	PickedUpAt      *time.Time
	DeliveredAt     *time.Time
	ClientCode      string
	MerchantCode    string
	ProblemReason   *ProblemReason
	TraceMerchant   []TracePoint
	TraceClient     []TracePoint
	Version         int64
}

// RestoreOrder reconstructs an order aggregate from persistence. Unlike
// NewOrder it accepts any valid status and preserves timestamps, codes,
// traces, and the version counter exactly as stored.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	o := &Order{
		courierID:     p.CourierID,
		createdAt:     p.CreatedAt,
		pickedUpAt:    p.PickedUpAt,
		deliveredAt:   p.DeliveredAt,
		clientCode:    p.ClientCode,
		merchantCode:  p.MerchantCode,
		problemReason: p.ProblemReason,
		traceMerchant: p.TraceMerchant,
		traceClient:   p.TraceClient,
		version:       p.Version,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setClientID(p.ClientID),
		o.setMerchantID(p.MerchantID),
		o.setTotal(p.Total),
		o.setDeliveryAddress(p.DeliveryAddress),
		o.setStatus(p.Status),
	); err != nil {
		return nil, err
	}

	if p.CourierID != nil {
		if err := p.CourierID.Validate(); err != nil {
			return nil, err
		}
	}
	if p.ClientCode == "" || p.MerchantCode == "" {
		return nil, errs.NewValueIsRequiredError("confirmation codes")
	}

	return o, nil
}

// Validate ensures the Order was properly constructed through NewOrder or
// RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ClientID returns the ordering party's reference.
func (o *Order) ClientID() kernel.UUID {
	return o.clientID
}

// MerchantID returns the preparing party's reference.
func (o *Order) MerchantID() kernel.UUID {
	return o.merchantID
}

// CourierID returns the assigned courier's reference, or nil before
// assignment.
func (o *Order) CourierID() *kernel.UUID {
	return o.courierID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Total returns the order total fixed at creation.
func (o *Order) Total() kernel.Money {
	return o.total
}

// DeliveryAddress returns the delivery destination.
func (o *Order) DeliveryAddress() kernel.Address {
	return o.deliveryAddress
}

// CreatedAt returns the creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// PickedUpAt returns the pickup time, or nil before pickup.
func (o *Order) PickedUpAt() *time.Time {
	return o.pickedUpAt
}

// DeliveredAt returns the delivery time, or nil before delivery.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// ClientCode returns the client-side handoff confirmation code.
func (o *Order) ClientCode() string {
	return o.clientCode
}

// MerchantCode returns the merchant-side handoff confirmation code.
func (o *Order) MerchantCode() string {
	return o.merchantCode
}

// ProblemReason returns the incident reason, or nil if no incident was
// reported.
func (o *Order) ProblemReason() *ProblemReason {
	return o.problemReason
}

// TraceMerchant returns the merchant-leg route trace (courier holding the
// order before handing over to the delivery leg).
func (o *Order) TraceMerchant() []TracePoint {
	return o.traceMerchant
}

// TraceClient returns the client-leg route trace.
func (o *Order) TraceClient() []TracePoint {
	return o.traceClient
}

// Version returns the optimistic-lock counter the repositories key their
// compare-and-set writes on.
func (o *Order) Version() int64 {
	return o.version
}

// VerifyClientCode compares a presented code verbatim against the client
// handoff code.
func (o *Order) VerifyClientCode(code string) bool {
	return code != "" && code == o.clientCode
}

// VerifyMerchantCode compares a presented code verbatim against the merchant
// handoff code.
func (o *Order) VerifyMerchantCode(code string) bool {
	return code != "" && code == o.merchantCode
}

// IsParty reports whether the actor has a relationship to this order:
// its client, its merchant, its assigned courier, or an admin.
func (o *Order) IsParty(actor kernel.Actor) bool {
	switch actor.Role() {
	case kernel.RoleAdmin:
		return true
	case kernel.RoleClient:
		return o.clientID.IsEqual(actor.ID())
	case kernel.RoleMerchant:
		return o.merchantID.IsEqual(actor.ID())
	case kernel.RoleCourier:
		return o.courierID != nil && o.courierID.IsEqual(actor.ID())
	default:
		return false
	}
}

// TransitionTo applies a status transition on behalf of an actor.
//
// Checks run in a fixed sequence and each failure keeps the order untouched:
//  1. the (current, target) edge must exist in the transition table,
//     otherwise Conflict carrying the current and required status
//  2. the actor's role must be allowed on the edge, and the actor must be
//     the order's own party, otherwise Forbidden
//  3. edge preconditions: ready_for_pickup requires an assigned courier
//     (PreconditionFailed), problem requires a reason from the taxonomy,
//     delivered refuses a second completion (Conflict)
//
// On success the status changes, timestamp fields are stamped exactly once,
// and a StatusChanged event is queued for publication after commit.
func (o *Order) TransitionTo(actor kernel.Actor, target Status, reason *ProblemReason, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	if !o.status.CanTransitionTo(target) {
		return errs.NewConflictError("order status", o.status.String(), o.requiredSourceFor(target))
	}

	operation := fmt.Sprintf("transition to %s", target)
	if !roleMayTransition(actor.Role(), o.status, target) {
		return errs.NewForbiddenError(operation, actor.String())
	}
	if !o.IsParty(actor) {
		return errs.NewForbiddenError(operation, actor.String())
	}

	switch target {
	case StatusReadyForPickup:
		if o.courierID == nil {
			return errs.NewPreconditionFailedError(operation, "courier assignment")
		}
	case StatusDelivered:
		if o.deliveredAt != nil {
			return errs.NewConflictError("order delivered_at", o.deliveredAt.Format(time.RFC3339), "unset")
		}
	case StatusProblem:
		if reason == nil {
			return errs.NewValueIsRequiredError("problem_reason")
		}
		if err := reason.Validate(); err != nil {
			return err
		}
	}

	from := o.status
	o.status = target

	at := now.UTC()
	switch target {
	case StatusPickedUp:
		o.pickedUpAt = &at
	case StatusDelivered:
		o.deliveredAt = &at
	case StatusProblem:
		o.problemReason = reason
	}

	o.pendingEvents = append(o.pendingEvents, StatusChanged{
		OrderID: o.id,
		From:    from,
		To:      target,
		Actor:   actor,
		Reason:  reason,
		At:      at,
	})

	return nil
}

// AssignCourier sets the courier reference while the order is in
// preparation. The status itself does not change; moving to
// ready_for_pickup is a separate explicit transition.
//
// Fails with Conflict if the order is not in preparation or a courier is
// already set (the reference is immutable once written), and with Forbidden
// unless the actor is the order's merchant or an admin.
func (o *Order) AssignCourier(actor kernel.Actor, courierID kernel.UUID, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := courierID.Validate(); err != nil {
		return err
	}

	if actor.Role() != kernel.RoleMerchant && actor.Role() != kernel.RoleAdmin {
		return errs.NewForbiddenError("assign courier", actor.String())
	}
	if !o.IsParty(actor) {
		return errs.NewForbiddenError("assign courier", actor.String())
	}

	if o.status != StatusInPreparation {
		return errs.NewConflictError("order status", o.status.String(), StatusInPreparation.String())
	}
	if o.courierID != nil {
		return errs.NewConflictError("order courier", o.courierID.String(), "unset")
	}

	o.courierID = &courierID
	o.pendingEvents = append(o.pendingEvents, CourierAssigned{
		OrderID:   o.id,
		CourierID: courierID,
		Actor:     actor,
		At:        now.UTC(),
	})

	return nil
}

// RecordRoutePoint appends a courier position to the route trace of the
// current delivery leg: the merchant leg while the order is picked_up, the
// client leg while it is in_delivery. Traces are append-only.
//
// Fails with Conflict when the order is not in an active delivery state.
func (o *Order) RecordRoutePoint(point kernel.GeoPoint, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}

	tp, err := NewTracePoint(point, at)
	if err != nil {
		return err
	}

	switch o.status {
	case StatusPickedUp:
		o.traceMerchant = append(o.traceMerchant, tp)
	case StatusInDelivery:
		o.traceClient = append(o.traceClient, tp)
	default:
		return errs.NewConflictError("order status", o.status.String(), "picked_up or in_delivery")
	}

	return nil
}

// PendingEvents returns the domain events queued since the aggregate was
// loaded.
func (o *Order) PendingEvents() []DomainEvent {
	return o.pendingEvents
}

// ClearPendingEvents drops queued events after they have been published.
func (o *Order) ClearPendingEvents() {
	o.pendingEvents = nil
}

// requiredSourceFor names the source status a target transition expects,
// used to build Conflict details a caller can relay to the human actor.
func (o *Order) requiredSourceFor(target Status) string {
	var sources []string
	for from, targets := range nextStatuses() {
		for _, to := range targets {
			if to == target {
				sources = append(sources, from.String())
			}
		}
	}
	if len(sources) == 0 {
		return "none"
	}
	if len(sources) == 1 {
		return sources[0]
	}
	return "one of its allowed source statuses"
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("client_ref", err)
	}
	o.clientID = id
	return nil
}

func (o *Order) setMerchantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("merchant_ref", err)
	}
	o.merchantID = id
	return nil
}

func (o *Order) setTotal(total kernel.Money) error {
	if err := total.Validate(); err != nil {
		return err
	}
	o.total = total
	return nil
}

func (o *Order) setDeliveryAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
