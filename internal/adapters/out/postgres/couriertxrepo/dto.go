// Package couriertxrepo provides data transfer objects and mapping functions
// for courier transaction persistence.
package couriertxrepo

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
)

// TransactionDTO represents the database structure for courier ledger rows.
// The unique index on order_id enforces at most one transaction per order.
type TransactionDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID       `gorm:"type:uuid;uniqueIndex"`
	CourierID      uuid.UUID       `gorm:"type:uuid;index"`
	CompanyID      uuid.UUID       `gorm:"type:uuid"`
	OrderAmount    decimal.Decimal `gorm:"type:numeric"`
	ShippingAmount decimal.Decimal `gorm:"type:numeric"`
	Status         int             `gorm:"index"`
}

// TableName specifies the database table name for courier transactions.
func (TransactionDTO) TableName() string {
	return "courier_transactions"
}

// fromDomain converts a courier transaction to its database representation.
func fromDomain(tx *courier.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:             tx.ID().Bytes(),
		OrderID:        tx.OrderID().Bytes(),
		CourierID:      tx.CourierID().Bytes(),
		CompanyID:      tx.CompanyID().Bytes(),
		OrderAmount:    tx.OrderAmount().Amount(),
		ShippingAmount: tx.ShippingAmount().Amount(),
		Status:         int(tx.Status()),
	}
}

// toDomain converts a database DTO to a courier transaction using RestoreTransaction.
func toDomain(dto TransactionDTO) (*courier.Transaction, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}
	companyID, err := kernel.UUIDFromBytes(dto.CompanyID[:])
	if err != nil {
		return nil, err
	}

	orderAmount, err := kernel.NewMoney(dto.OrderAmount)
	if err != nil {
		return nil, err
	}
	shippingAmount, err := kernel.NewMoney(dto.ShippingAmount)
	if err != nil {
		return nil, err
	}

	return courier.RestoreTransaction(
		id, orderID, courierID, companyID,
		orderAmount, shippingAmount, courier.Status(dto.Status),
	)
}
