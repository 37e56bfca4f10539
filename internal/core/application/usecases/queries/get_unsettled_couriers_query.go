package queries

import (
	"errors"

	"github.com/shopspring/decimal"

	"fulfillment/internal/core/domain/model/kernel"
)

var ErrGetUnsettledCouriersQueryIsNotConstructed = errors.New(
	"GetUnsettledCouriersQuery must be created via NewGetUnsettledCouriersQuery constructor",
)

// GetUnsettledCouriersQuery lists every courier that currently carries
// unsettled transactions. The periodic settlement job uses it to decide
// which couriers to run.
type GetUnsettledCouriersQuery struct {
	guard kernel.ConstructorGuard
}

// NewGetUnsettledCouriersQuery creates a query for couriers with open balances.
// This is a parameterless query.
func NewGetUnsettledCouriersQuery() GetUnsettledCouriersQuery {
	return GetUnsettledCouriersQuery{guard: kernel.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetUnsettledCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetUnsettledCouriersQueryIsNotConstructed)
}

// GetUnsettledCouriersQueryResponse is one courier's open position.
type GetUnsettledCouriersQueryResponse struct {
	CourierID        kernel.UUID
	Net              decimal.Decimal
	TransactionCount int
}
