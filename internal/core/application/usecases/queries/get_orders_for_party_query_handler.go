package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersForPartyQueryHandler retrieves a party's orders from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetOrdersForPartyQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersForPartyQueryHandler creates a handler for party order queries.
func NewGetOrdersForPartyQueryHandler(db *gorm.DB) GetOrdersForPartyQueryHandler {
	return GetOrdersForPartyQueryHandler{db: db}
}

// Handle executes the query. Non-admin actors only see orders they are a
// party to; results are sorted newest first.
func (h GetOrdersForPartyQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersForPartyQuery,
) ([]GetOrdersForPartyQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	const baseQuery = `
		SELECT
			id,
			client_id,
			merchant_id,
			courier_id,
			status,
			total_cents,
			address_street,
			address_city,
			address_postal_code,
			created_at,
			picked_up_at,
			delivered_at,
			problem_reason
		FROM orders
	`

	actor := query.Actor()
	tx := h.db.WithContext(ctx)

	var rowsQuery string
	var args []any
	if actor.Role() == kernel.RoleAdmin {
		rowsQuery = baseQuery + ` ORDER BY created_at DESC`
	} else {
		rowsQuery = baseQuery + `
			WHERE client_id = @party OR merchant_id = @party OR courier_id = @party
			ORDER BY created_at DESC`
		args = append(args, map[string]any{"party": actor.ID().Bytes()})
	}

	rows, err := tx.Raw(rowsQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersForPartyQueryResponse, 0)
	for rows.Next() {
		var resp GetOrdersForPartyQueryResponse
		var id, clientID, merchantID uuid.UUID
		var courierID *uuid.UUID
		var status string
		var problemReason *string
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&clientID,
			&merchantID,
			&courierID,
			&status,
			&resp.TotalCents,
			&resp.Street,
			&resp.City,
			&resp.PostalCode,
			&createdAt,
			&resp.PickedUpAt,
			&resp.DeliveredAt,
			&problemReason,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.ClientID, err = kernel.UUIDFromBytes(clientID[:]); err != nil {
			return nil, err
		}
		if resp.MerchantID, err = kernel.UUIDFromBytes(merchantID[:]); err != nil {
			return nil, err
		}
		if courierID != nil {
			cID, idErr := kernel.UUIDFromBytes((*courierID)[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.CourierID = &cID
		}

		if resp.Status, err = order.StatusFromString(status); err != nil {
			return nil, err
		}
		if problemReason != nil {
			reason, reasonErr := order.ProblemReasonFromString(*problemReason)
			if reasonErr != nil {
				return nil, reasonErr
			}
			resp.ProblemReason = &reason
		}
		resp.CreatedAt = createdAt

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
