// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"github.com/shopspring/decimal"

	"fulfillment/internal/core/domain/model/kernel"
)

var ErrGetCourierBalancesQueryIsNotConstructed = errors.New(
	"GetCourierBalancesQuery must be created via NewGetCourierBalancesQuery constructor",
)

// GetCourierBalancesQuery retrieves the open balance of one courier:
// the totals of their unsettled transactions and the net amount a
// settlement run would clear.
type GetCourierBalancesQuery struct {
	courierID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewGetCourierBalancesQuery creates a query for a courier's open balance.
func NewGetCourierBalancesQuery(courierID kernel.UUID) (GetCourierBalancesQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetCourierBalancesQuery{}, err
	}

	return GetCourierBalancesQuery{
		courierID: courierID,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierBalancesQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierBalancesQueryIsNotConstructed)
}

// CourierID returns the courier whose balance is requested.
func (q GetCourierBalancesQuery) CourierID() kernel.UUID {
	return q.courierID
}

// GetCourierBalancesQueryResponse is the courier balance read model.
// Net is signed: positive means the courier owes the branch. Lines
// break the balance down per unsettled order, oldest first.
type GetCourierBalancesQueryResponse struct {
	CourierID        kernel.UUID
	OrderTotal       decimal.Decimal
	ShippingTotal    decimal.Decimal
	Net              decimal.Decimal
	TransactionCount int
	Lines            []CourierBalanceLine
}

// CourierBalanceLine is one unsettled order's share of the balance.
type CourierBalanceLine struct {
	OrderID kernel.UUID
	Net     decimal.Decimal
}
