package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersAwaitingAssignmentQueryHandler retrieves unassigned orders in
// preparation, oldest first so the longest-waiting merchant is nudged first.
type GetOrdersAwaitingAssignmentQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersAwaitingAssignmentQueryHandler creates a handler for the reminder feed.
func NewGetOrdersAwaitingAssignmentQueryHandler(db *gorm.DB) GetOrdersAwaitingAssignmentQueryHandler {
	return GetOrdersAwaitingAssignmentQueryHandler{db: db}
}

// Handle executes the query.
func (h GetOrdersAwaitingAssignmentQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersAwaitingAssignmentQuery,
) ([]GetOrdersAwaitingAssignmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, merchant_id, created_at
		FROM orders
		WHERE status = ? AND courier_id IS NULL
		ORDER BY created_at
	`, order.StatusInPreparation.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersAwaitingAssignmentQueryResponse, 0)
	for rows.Next() {
		var resp GetOrdersAwaitingAssignmentQueryResponse
		var id, merchantID uuid.UUID

		if err = rows.Scan(&id, &merchantID, &resp.CreatedAt); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.MerchantID, err = kernel.UUIDFromBytes(merchantID[:]); err != nil {
			return nil, err
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
