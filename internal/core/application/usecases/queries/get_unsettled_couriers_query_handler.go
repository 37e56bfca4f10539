package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
)

// GetUnsettledCouriersQueryHandler retrieves all couriers with open
// balances, grouped and summed in the database.
type GetUnsettledCouriersQueryHandler struct {
	db *gorm.DB
}

// NewGetUnsettledCouriersQueryHandler creates a handler for the open-courier query.
// Requires a GORM database connection for query execution.
func NewGetUnsettledCouriersQueryHandler(db *gorm.DB) GetUnsettledCouriersQueryHandler {
	return GetUnsettledCouriersQueryHandler{db: db}
}

// Handle executes the query. Couriers are sorted by identifier for
// consistent output.
func (h GetUnsettledCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetUnsettledCouriersQuery,
) ([]GetUnsettledCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	couriers := make([]GetUnsettledCouriersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			courier_id,
			COALESCE(SUM(order_amount - shipping_amount), 0),
			COUNT(*)
		FROM courier_transactions
		WHERE status = ?
		GROUP BY courier_id
		ORDER BY courier_id
	`, courier.Unsettled).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetUnsettledCouriersQueryResponse
		var id uuid.UUID
		var net decimal.Decimal
		var count int

		if err = rows.Scan(&id, &net, &count); err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		resp.CourierID = courierID
		resp.Net = net
		resp.TransactionCount = count
		couriers = append(couriers, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return couriers, nil
}
