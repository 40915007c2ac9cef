package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// StreamOrderEvents handles GET /api/v1/orders/:id/events - streams the
// order's live events over SSE until the order reaches a terminal status or
// the client disconnects. There is no replay; a reconnecting client must
// re-fetch current state via GET /orders.
func (s *Server) StreamOrderEvents(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	aggregate, err := s.orders.Get(ctx.Request().Context(), orderID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	sub, err := s.hub.Subscribe(actor, aggregate)
	if err != nil {
		return errorJSON(ctx, err)
	}
	defer s.hub.Drop(sub.ID())

	response := ctx.Response()
	response.Header().Set(echo.HeaderContentType, "text/event-stream")
	response.Header().Set(echo.HeaderCacheControl, "no-cache")
	response.Header().Set(echo.HeaderConnection, "keep-alive")
	response.WriteHeader(http.StatusOK)
	response.Flush()

	done := ctx.Request().Context().Done()
	for {
		select {
		case <-done:
			return nil
		case event, ok := <-sub.Events():
			if !ok {
				// Roster closed: terminal transition or pruning.
				return nil
			}
			if err := writeSSE(response, event); err != nil {
				return nil
			}
		}
	}
}

func writeSSE(response *echo.Response, event order.DomainEvent) error {
	data, err := json.Marshal(eventPayload(event))
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(response, "event: %s\ndata: %s\n\n", event.EventName(), data); err != nil {
		return err
	}
	response.Flush()
	return nil
}

// eventPayload flattens a domain event into its wire shape.
func eventPayload(event order.DomainEvent) any {
	switch e := event.(type) {
	case order.StatusChanged:
		payload := struct {
			OrderID string    `json:"order_id"`
			From    string    `json:"from"`
			To      string    `json:"to"`
			Actor   string    `json:"actor"`
			Reason  *string   `json:"reason,omitempty"`
			At      time.Time `json:"at"`
		}{
			OrderID: e.OrderID.String(),
			From:    e.From.String(),
			To:      e.To.String(),
			Actor:   e.Actor.String(),
			At:      e.At,
		}
		if e.Reason != nil {
			reason := e.Reason.String()
			payload.Reason = &reason
		}
		return payload

	case order.CourierAssigned:
		return struct {
			OrderID   string    `json:"order_id"`
			CourierID string    `json:"courier_id"`
			At        time.Time `json:"at"`
		}{e.OrderID.String(), e.CourierID.String(), e.At}

	case order.CourierPositionUpdated:
		return struct {
			OrderID   string    `json:"order_id"`
			CourierID string    `json:"courier_id"`
			Lat       float64   `json:"lat"`
			Lng       float64   `json:"lng"`
			At        time.Time `json:"at"`
		}{e.OrderID.String(), e.CourierID.String(), e.Position.Lat(), e.Position.Lng(), e.At}

	case order.AwaitingAssignmentReminder:
		return struct {
			OrderID string    `json:"order_id"`
			Since   time.Time `json:"since"`
			At      time.Time `json:"at"`
		}{e.OrderID.String(), e.Since, e.At}

	default:
		return struct {
			OrderID string `json:"order_id"`
		}{event.EventOrderID().String()}
	}
}
