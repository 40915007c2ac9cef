// Package http is the inbound REST and SSE boundary. Authentication happens
// upstream; the adapter trusts the X-Actor-Id and X-Actor-Role headers and
// converts them into the validated actor every core operation requires.
package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"marketplace/internal/adapters/out/broadcast"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// OrderFinder loads an order aggregate for subscription gating and for
// echoing the post-write state back to callers.
type OrderFinder interface {
	Get(ctx context.Context, orderID kernel.UUID) (*order.Order, error)
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	transitionOrderHandler commands.TransitionOrderCommandHandler
	assignCourierHandler   commands.AssignCourierCommandHandler
	reportPositionHandler  commands.ReportPositionCommandHandler
	createCourierHandler   commands.CreateCourierCommandHandler
	setAvailabilityHandler commands.SetCourierAvailabilityCommandHandler

	// Query handlers
	getOrdersForPartyHandler    queries.GetOrdersForPartyQueryHandler
	getAvailableCouriersHandler queries.GetAvailableCouriersQueryHandler
	getCourierPositionHandler   queries.GetCourierPositionQueryHandler

	// Live channel
	hub    *broadcast.Hub
	orders OrderFinder
}

// NewServer creates the HTTP server with the required handlers and the
// broadcast hub backing the event stream.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	assignCourierHandler commands.AssignCourierCommandHandler,
	reportPositionHandler commands.ReportPositionCommandHandler,
	createCourierHandler commands.CreateCourierCommandHandler,
	setAvailabilityHandler commands.SetCourierAvailabilityCommandHandler,
	getOrdersForPartyHandler queries.GetOrdersForPartyQueryHandler,
	getAvailableCouriersHandler queries.GetAvailableCouriersQueryHandler,
	getCourierPositionHandler queries.GetCourierPositionQueryHandler,
	hub *broadcast.Hub,
	orders OrderFinder,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		transitionOrderHandler:      transitionOrderHandler,
		assignCourierHandler:        assignCourierHandler,
		reportPositionHandler:       reportPositionHandler,
		createCourierHandler:        createCourierHandler,
		setAvailabilityHandler:      setAvailabilityHandler,
		getOrdersForPartyHandler:    getOrdersForPartyHandler,
		getAvailableCouriersHandler: getAvailableCouriersHandler,
		getCourierPositionHandler:   getCourierPositionHandler,
		hub:                         hub,
		orders:                      orders,
	}
}

// RegisterRoutes mounts the API under /api/v1 plus the health probe.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders", s.GetOrders)
	v1.POST("/orders/:id/transition", s.TransitionOrder)
	v1.POST("/orders/:id/courier", s.AssignCourier)
	v1.GET("/orders/:id/events", s.StreamOrderEvents)
	v1.POST("/couriers", s.CreateCourier)
	v1.GET("/couriers/available", s.GetAvailableCouriers)
	v1.POST("/couriers/position", s.ReportPosition)
	v1.GET("/couriers/:id/position", s.GetCourierPosition)
	v1.POST("/couriers/:id/availability", s.SetCourierAvailability)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /api/v1/orders - places a new order for the
// calling client.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return errorJSON(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	merchantID, err := kernel.UUIDFromString(body.MerchantID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, actor, merchantID, body.TotalCents,
		body.Street, body.City, body.PostalCode, body.Lat, body.Lng,
	)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, OrderCreated{ID: orderID.String()})
}

// GetOrders handles GET /api/v1/orders - lists the orders the calling actor
// is a party to. Admins see everything.
func (s *Server) GetOrders(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	query, err := queries.NewGetOrdersForPartyQuery(actor)
	if err != nil {
		return errorJSON(ctx, err)
	}

	orders, err := s.getOrdersForPartyHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	response := make([]Order, len(orders))
	for i, o := range orders {
		item := Order{
			ID:          o.ID.String(),
			ClientID:    o.ClientID.String(),
			MerchantID:  o.MerchantID.String(),
			Status:      o.Status.String(),
			TotalCents:  o.TotalCents,
			Street:      o.Street,
			City:        o.City,
			PostalCode:  o.PostalCode,
			CreatedAt:   o.CreatedAt,
			PickedUpAt:  o.PickedUpAt,
			DeliveredAt: o.DeliveredAt,
		}
		if o.CourierID != nil {
			courierID := o.CourierID.String()
			item.CourierID = &courierID
		}
		if o.ProblemReason != nil {
			reason := o.ProblemReason.String()
			item.ProblemReason = &reason
		}
		response[i] = item
	}

	return ctx.JSON(http.StatusOK, response)
}

// TransitionOrder handles POST /api/v1/orders/:id/transition - moves an
// order to the requested status on behalf of the calling actor.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	var body Transition
	if err := ctx.Bind(&body); err != nil {
		return errorJSON(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	target, err := order.StatusFromString(body.Status)
	if err != nil {
		return errorJSON(ctx, err)
	}

	var reason *order.ProblemReason
	if body.Reason != nil {
		parsed, reasonErr := order.ProblemReasonFromString(*body.Reason)
		if reasonErr != nil {
			return errorJSON(ctx, reasonErr)
		}
		reason = &parsed
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, actor, target, reason)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return s.respondWithOrder(ctx, orderID)
}

// AssignCourier handles POST /api/v1/orders/:id/courier - assigns a courier
// to an accepted order.
func (s *Server) AssignCourier(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	var body Assignment
	if err := ctx.Bind(&body); err != nil {
		return errorJSON(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	courierID, err := kernel.UUIDFromString(body.CourierID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewAssignCourierCommand(orderID, actor, courierID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.assignCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return s.respondWithOrder(ctx, orderID)
}

// respondWithOrder re-reads an order after a successful write and returns
// its current shape so the caller sees the state the write produced.
func (s *Server) respondWithOrder(ctx echo.Context, orderID kernel.UUID) error {
	aggregate, err := s.orders.Get(ctx.Request().Context(), orderID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	item := Order{
		ID:          aggregate.ID().String(),
		ClientID:    aggregate.ClientID().String(),
		MerchantID:  aggregate.MerchantID().String(),
		Status:      aggregate.Status().String(),
		TotalCents:  aggregate.Total().Cents(),
		Street:      aggregate.DeliveryAddress().Street(),
		City:        aggregate.DeliveryAddress().City(),
		PostalCode:  aggregate.DeliveryAddress().PostalCode(),
		CreatedAt:   aggregate.CreatedAt(),
		PickedUpAt:  aggregate.PickedUpAt(),
		DeliveredAt: aggregate.DeliveredAt(),
	}
	if aggregate.CourierID() != nil {
		courierID := aggregate.CourierID().String()
		item.CourierID = &courierID
	}
	if aggregate.ProblemReason() != nil {
		reason := aggregate.ProblemReason().String()
		item.ProblemReason = &reason
	}

	return ctx.JSON(http.StatusOK, item)
}

// CreateCourier handles POST /api/v1/couriers - registers a courier.
// Registration is an operator action.
func (s *Server) CreateCourier(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}
	if actor.Role() != kernel.RoleAdmin {
		return errorJSON(ctx, errs.NewForbiddenError("create courier", actor.String()))
	}

	var body NewCourier
	if err := ctx.Bind(&body); err != nil {
		return errorJSON(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	courierID := kernel.NewUUID()
	cmd, err := commands.NewCreateCourierCommand(courierID, body.Name)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.createCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CourierCreated{ID: courierID.String()})
}

// SetCourierAvailability handles POST /api/v1/couriers/:id/availability -
// puts a courier on or off duty.
func (s *Server) SetCourierAvailability(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	var body Availability
	if err := ctx.Bind(&body); err != nil {
		return errorJSON(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewSetCourierAvailabilityCommand(courierID, actor, body.Available)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.setAvailabilityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReportPosition handles POST /api/v1/couriers/position - ingests one
// position sample from the calling courier.
func (s *Server) ReportPosition(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	var body PositionReport
	if err := ctx.Bind(&body); err != nil {
		return errorJSON(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewReportPositionCommand(actor, body.Lat, body.Lng, body.CapturedAt)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.reportPositionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	// Accepted regardless of whether the sample superseded the stored one.
	return ctx.NoContent(http.StatusAccepted)
}

// GetCourierPosition handles GET /api/v1/couriers/:id/position.
func (s *Server) GetCourierPosition(ctx echo.Context) error {
	if _, err := actorFromRequest(ctx); err != nil {
		return errorJSON(ctx, err)
	}

	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	query, err := queries.NewGetCourierPositionQuery(courierID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	position, err := s.getCourierPositionHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CourierPosition{
		CourierID:  position.CourierID.String(),
		Lat:        position.Position.Lat(),
		Lng:        position.Position.Lng(),
		CapturedAt: position.CapturedAt,
	})
}

// GetAvailableCouriers handles GET /api/v1/couriers/available - lists
// on-duty couriers ordered by distance from the lat/lng query parameters.
func (s *Server) GetAvailableCouriers(ctx echo.Context) error {
	if _, err := actorFromRequest(ctx); err != nil {
		return errorJSON(ctx, err)
	}

	lat, err := strconv.ParseFloat(ctx.QueryParam("lat"), 64)
	if err != nil {
		return errorJSON(ctx, errs.NewValueIsInvalidErrorWithCause("lat", err))
	}
	lng, err := strconv.ParseFloat(ctx.QueryParam("lng"), 64)
	if err != nil {
		return errorJSON(ctx, errs.NewValueIsInvalidErrorWithCause("lng", err))
	}

	origin, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return errorJSON(ctx, err)
	}

	query, err := queries.NewGetAvailableCouriersQuery(origin)
	if err != nil {
		return errorJSON(ctx, err)
	}

	couriers, err := s.getAvailableCouriersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	response := make([]AvailableCourier, len(couriers))
	for i, c := range couriers {
		item := AvailableCourier{
			ID:             c.ID.String(),
			Name:           c.Name,
			PositionAt:     c.PositionAt,
			DistanceMeters: c.DistanceMeters,
		}
		if c.Position != nil {
			lat, lng := c.Position.Lat(), c.Position.Lng()
			item.Lat = &lat
			item.Lng = &lng
		}
		response[i] = item
	}

	return ctx.JSON(http.StatusOK, response)
}

// actorFromRequest builds the calling actor from the identity headers.
func actorFromRequest(ctx echo.Context) (kernel.Actor, error) {
	id, err := kernel.UUIDFromString(ctx.Request().Header.Get("X-Actor-Id"))
	if err != nil {
		return kernel.Actor{}, errs.NewValueIsInvalidErrorWithCause("X-Actor-Id", err)
	}

	role, err := kernel.RoleFromString(ctx.Request().Header.Get("X-Actor-Role"))
	if err != nil {
		return kernel.Actor{}, errs.NewValueIsInvalidErrorWithCause("X-Actor-Role", err)
	}

	return kernel.NewActor(id, role)
}

// errorJSON maps core error kinds onto HTTP status codes.
func errorJSON(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrPreconditionFailed):
		code = http.StatusPreconditionFailed
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrVersionIsInvalid):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}
