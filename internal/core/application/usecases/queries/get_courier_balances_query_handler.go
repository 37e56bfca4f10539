package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
)

// GetCourierBalancesQueryHandler computes a courier's open balance from
// their unsettled transactions. Uses direct SQL for optimal read
// performance in the CQRS pattern; one pass over the rows yields both
// the per-order lines and the totals.
type GetCourierBalancesQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierBalancesQueryHandler creates a handler for balance queries.
// Requires a GORM database connection for query execution.
func NewGetCourierBalancesQueryHandler(db *gorm.DB) GetCourierBalancesQueryHandler {
	return GetCourierBalancesQueryHandler{db: db}
}

// Handle executes the balance query. A courier with no unsettled
// transactions gets a zero balance with no lines, not an error.
func (h GetCourierBalancesQueryHandler) Handle(
	ctx context.Context,
	query GetCourierBalancesQuery,
) (GetCourierBalancesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierBalancesQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT order_id, order_amount, shipping_amount
		FROM courier_transactions
		WHERE courier_id = ? AND status = ?
		ORDER BY id
	`, query.CourierID().Bytes(), courier.Unsettled).Rows()
	if err != nil {
		return GetCourierBalancesQueryResponse{}, err
	}
	defer rows.Close()

	resp := GetCourierBalancesQueryResponse{
		CourierID:     query.CourierID(),
		OrderTotal:    decimal.Zero,
		ShippingTotal: decimal.Zero,
		Net:           decimal.Zero,
		Lines:         make([]CourierBalanceLine, 0),
	}

	for rows.Next() {
		var id uuid.UUID
		var orderAmount, shippingAmount decimal.Decimal

		if err = rows.Scan(&id, &orderAmount, &shippingAmount); err != nil {
			return GetCourierBalancesQueryResponse{}, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetCourierBalancesQueryResponse{}, idErr
		}

		net := orderAmount.Sub(shippingAmount)
		resp.OrderTotal = resp.OrderTotal.Add(orderAmount)
		resp.ShippingTotal = resp.ShippingTotal.Add(shippingAmount)
		resp.Net = resp.Net.Add(net)
		resp.TransactionCount++
		resp.Lines = append(resp.Lines, CourierBalanceLine{OrderID: orderID, Net: net})
	}

	if err = rows.Err(); err != nil {
		return GetCourierBalancesQueryResponse{}, err
	}

	return resp, nil
}
